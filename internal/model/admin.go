package model

import "time"

// AdminStats is the one-query aggregate behind the admin dashboard.
type AdminStats struct {
	TotalUsers   int `db:"total_users" json:"total_users"`
	TotalSchools int `db:"total_schools" json:"total_schools"`
	TotalDorms   int `db:"total_dorms" json:"total_dorms"`
	TotalPosts   int `db:"total_posts" json:"total_posts"`
}

// AdminProfileEntry is a profile joined with its school name.
type AdminProfileEntry struct {
	ID         string     `db:"id" json:"id"`
	UserID     string     `db:"user_id" json:"user_id"`
	Email      string     `db:"email" json:"email"`
	Role       string     `db:"role" json:"role"`
	SchoolName *string    `db:"school_name" json:"school_name,omitempty"`
	VerifiedAt *time.Time `db:"verified_at" json:"verified_at,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}

// AdminDormEntry is a dorm profile joined with school name and submitter
// email for the recent-submissions table.
type AdminDormEntry struct {
	ID             string    `db:"id" json:"id"`
	DormName       string    `db:"dorm_name" json:"dorm_name"`
	RoomNumber     *string   `db:"room_number" json:"room_number,omitempty"`
	Published      bool      `db:"published" json:"published"`
	SchoolName     string    `db:"school_name" json:"school_name"`
	SubmitterEmail string    `db:"submitter_email" json:"submitter_email"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
