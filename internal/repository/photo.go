package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dormscout/dormscout/internal/model"
)

var (
	ErrPhotoNotFound = errors.New("photo not found")
)

type PhotoRepository interface {
	Create(photo *model.Photo) error
	ByID(id string) (*model.Photo, error)
	ByRoom(roomID string) ([]*model.Photo, error)
	Delete(userID, photoID string) error
}

type photoRepository struct {
	db *sqlx.DB
}

func NewPhotoRepository(db *sqlx.DB) PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) Create(photo *model.Photo) error {
	if photo.ID == "" {
		photo.ID = uuid.New().String()
	}
	now := time.Now()
	if photo.CreatedAt.IsZero() {
		photo.CreatedAt = now
	}
	if photo.UpdatedAt.IsZero() {
		photo.UpdatedAt = now
	}

	_, err := r.db.Exec(`
		INSERT INTO photos (id, user_id, room_id, photo_type, storage_url,
			thumbnail_url, caption, faces_blurred, taken_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, photo.ID, photo.UserID, photo.RoomID, photo.PhotoType, photo.StorageURL,
		photo.ThumbnailURL, photo.Caption, photo.FacesBlurred, photo.TakenAt,
		photo.CreatedAt, photo.UpdatedAt)
	return err
}

func (r *photoRepository) ByID(id string) (*model.Photo, error) {
	var photo model.Photo
	err := r.db.Get(&photo, `SELECT * FROM photos WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrPhotoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

func (r *photoRepository) ByRoom(roomID string) ([]*model.Photo, error) {
	var photos []*model.Photo
	err := r.db.Select(&photos, `
		SELECT * FROM photos WHERE room_id = $1 ORDER BY created_at DESC
	`, roomID)
	if err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *photoRepository) Delete(userID, photoID string) error {
	result, err := r.db.Exec(`DELETE FROM photos WHERE id = $1 AND user_id = $2`, photoID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPhotoNotFound
	}

	return nil
}
