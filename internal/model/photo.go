package model

import "time"

const (
	PhotoTypeEmpty    = "empty"
	PhotoTypeDesigned = "designed"
	PhotoTypeDetail   = "detail"
)

type Photo struct {
	ID           string     `db:"id" json:"id"`
	UserID       string     `db:"user_id" json:"user_id"`
	RoomID       string     `db:"room_id" json:"room_id"`
	PhotoType    string     `db:"photo_type" json:"photo_type"`
	StorageURL   string     `db:"storage_url" json:"storage_url"`
	ThumbnailURL *string    `db:"thumbnail_url" json:"thumbnail_url,omitempty"`
	Caption      *string    `db:"caption" json:"caption,omitempty"`
	FacesBlurred bool       `db:"faces_blurred" json:"faces_blurred"`
	TakenAt      *time.Time `db:"taken_at" json:"taken_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
