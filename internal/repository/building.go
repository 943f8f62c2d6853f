package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/dormscout/dormscout/internal/model"
)

var (
	ErrBuildingNotFound = errors.New("building not found")
	ErrRoomNotFound     = errors.New("room not found")
)

type BuildingRepository interface {
	ByID(id string) (*model.Building, error)
	BySchool(schoolID string) ([]*model.Building, error)
}

type buildingRepository struct {
	db *sqlx.DB
}

func NewBuildingRepository(db *sqlx.DB) BuildingRepository {
	return &buildingRepository{db: db}
}

func (r *buildingRepository) ByID(id string) (*model.Building, error) {
	var building model.Building
	err := r.db.Get(&building, `SELECT * FROM buildings WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrBuildingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &building, nil
}

func (r *buildingRepository) BySchool(schoolID string) ([]*model.Building, error) {
	var buildings []*model.Building
	err := r.db.Select(&buildings, `
		SELECT * FROM buildings WHERE school_id = $1 ORDER BY name
	`, schoolID)
	if err != nil {
		return nil, err
	}
	return buildings, nil
}

type RoomRepository interface {
	ByID(id string) (*model.Room, error)
	ByBuilding(buildingID string) ([]*model.Room, error)
}

type roomRepository struct {
	db *sqlx.DB
}

func NewRoomRepository(db *sqlx.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) ByID(id string) (*model.Room, error) {
	var room model.Room
	err := r.db.Get(&room, `SELECT * FROM rooms WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) ByBuilding(buildingID string) ([]*model.Room, error) {
	var rooms []*model.Room
	err := r.db.Select(&rooms, `
		SELECT * FROM rooms WHERE building_id = $1 ORDER BY room_number
	`, buildingID)
	if err != nil {
		return nil, err
	}
	return rooms, nil
}
