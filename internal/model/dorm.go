package model

import "time"

// DormProfile is the central content unit: one student's post about one
// dorm room. Created as an unpublished draft; visible to other users only
// once Published is true. Contact fields are opt-in and stripped from
// public reads unless ContactEnabled.
type DormProfile struct {
	ID                 string     `db:"id" json:"id"`
	UserID             string     `db:"user_id" json:"user_id,omitempty"`
	SchoolID           string     `db:"school_id" json:"school_id"`
	DormName           string     `db:"dorm_name" json:"dorm_name"`
	RoomNumber         *string    `db:"room_number" json:"room_number,omitempty"`
	Notes              *string    `db:"notes" json:"notes,omitempty"`
	PhotosEmpty        StringList `db:"photos_empty" json:"photos_empty"`
	PhotosDecorated    StringList `db:"photos_decorated" json:"photos_decorated"`
	Published          bool       `db:"published" json:"published"`
	ContactEnabled     bool       `db:"contact_enabled" json:"contact_enabled"`
	ContactEmail       *string    `db:"contact_email" json:"contact_email,omitempty"`
	ContactFirstName   *string    `db:"contact_first_name" json:"contact_first_name,omitempty"`
	ContactLastInitial *string    `db:"contact_last_initial" json:"contact_last_initial,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}

// Redacted returns a copy safe for readers other than the owner: the
// owner's identity is never exposed, contact details only when opted in.
func (d DormProfile) Redacted() DormProfile {
	out := d
	out.UserID = ""
	if !d.ContactEnabled {
		out.ContactEmail = nil
		out.ContactFirstName = nil
		out.ContactLastInitial = nil
	}
	return out
}
