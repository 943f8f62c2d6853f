package model

import "time"

// Consent is one append-only acceptance event. Rows are never updated or
// deleted; the profile caches the latest versions.
type Consent struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"user_id"`
	TOSVersion     string    `db:"tos_version" json:"tos_version"`
	PrivacyVersion string    `db:"privacy_version" json:"privacy_version"`
	ConsentedAt    time.Time `db:"consented_at" json:"consented_at"`
	IPAddress      *string   `db:"ip_address" json:"ip_address,omitempty"`
	UserAgent      *string   `db:"user_agent" json:"user_agent,omitempty"`
}

// ConsentEntry is a consent row joined with the user's email for the admin
// consent log.
type ConsentEntry struct {
	Consent
	Email string `db:"email" json:"email"`
}
