package model

import "time"

const (
	SchoolStatusActive   = "active"
	SchoolStatusInactive = "inactive"
)

type School struct {
	ID              string     `db:"id" json:"id"`
	Name            string     `db:"name" json:"name"`
	PrimaryColor    *string    `db:"primary_color" json:"primary_color,omitempty"`
	DomainWhitelist StringList `db:"domain_whitelist" json:"domain_whitelist"`
	Status          string     `db:"status" json:"status"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}
