package model

import "time"

// Room carries physical attributes as free-text/number fields; the source
// data is student-submitted and not normalized.
type Room struct {
	ID         string    `db:"id" json:"id"`
	BuildingID string    `db:"building_id" json:"building_id"`
	RoomNumber string    `db:"room_number" json:"room_number"`
	Floor      *int      `db:"floor" json:"floor,omitempty"`
	BedType    *string   `db:"bed_type" json:"bed_type,omitempty"`
	Dimensions *string   `db:"dimensions" json:"dimensions,omitempty"`
	RoomType   *string   `db:"room_type" json:"room_type,omitempty"`
	Notes      *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
