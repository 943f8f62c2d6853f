package model

import "time"

// Profile is the per-user application record: role, school affiliation, and
// the cached latest-accepted legal versions the consent gate compares
// against. The user_consents table stays append-only; these fields are the
// fast path.
type Profile struct {
	ID                   string     `db:"id" json:"id"`
	UserID               string     `db:"user_id" json:"user_id"`
	Email                string     `db:"email" json:"email"`
	Role                 string     `db:"role" json:"role"`
	SchoolID             *string    `db:"school_id" json:"school_id,omitempty"`
	VerifiedAt           *time.Time `db:"verified_at" json:"verified_at,omitempty"`
	LatestTOSVersion     *string    `db:"latest_tos_version" json:"latest_tos_version,omitempty"`
	LatestPrivacyVersion *string    `db:"latest_privacy_version" json:"latest_privacy_version,omitempty"`
	LatestConsentedAt    *time.Time `db:"latest_consented_at" json:"latest_consented_at,omitempty"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time  `db:"updated_at" json:"updated_at"`
}
