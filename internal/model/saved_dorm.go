package model

import "time"

type SavedDorm struct {
	ID            string    `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"user_id"`
	DormProfileID string    `db:"dorm_profile_id" json:"dorm_profile_id"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// SavedDormEntry is the saved-list row joined with its dorm summary.
type SavedDormEntry struct {
	ID          string     `db:"id" json:"id"`
	SavedAt     time.Time  `db:"saved_at" json:"saved_at"`
	DormID      string     `db:"dorm_id" json:"dorm_id"`
	SchoolID    string     `db:"school_id" json:"school_id"`
	DormName    string     `db:"dorm_name" json:"dorm_name"`
	RoomNumber  *string    `db:"room_number" json:"room_number,omitempty"`
	Published   bool       `db:"published" json:"published"`
	PhotosEmpty StringList `db:"photos_empty" json:"photos_empty"`
}
