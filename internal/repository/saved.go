package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dormscout/dormscout/internal/model"
)

type SavedDormRepository interface {
	// Save bookmarks a dorm for a user. Saving twice is a no-op; the
	// (user_id, dorm_profile_id) unique constraint is the race guard.
	Save(userID, dormProfileID string) error
	Unsave(userID, dormProfileID string) error
	List(userID string) ([]*model.SavedDormEntry, error)
	IsSaved(userID, dormProfileID string) (bool, error)
}

type savedDormRepository struct {
	db *sqlx.DB
}

func NewSavedDormRepository(db *sqlx.DB) SavedDormRepository {
	return &savedDormRepository{db: db}
}

func (r *savedDormRepository) Save(userID, dormProfileID string) error {
	_, err := r.db.Exec(`
		INSERT INTO saved_dorms (id, user_id, dorm_profile_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT DO NOTHING
	`, uuid.New().String(), userID, dormProfileID, time.Now())
	return err
}

func (r *savedDormRepository) Unsave(userID, dormProfileID string) error {
	_, err := r.db.Exec(`
		DELETE FROM saved_dorms WHERE user_id = $1 AND dorm_profile_id = $2
	`, userID, dormProfileID)
	return err
}

func (r *savedDormRepository) List(userID string) ([]*model.SavedDormEntry, error) {
	var entries []*model.SavedDormEntry
	err := r.db.Select(&entries, `
		SELECT s.id AS id, s.created_at AS saved_at,
			d.id AS dorm_id, d.school_id AS school_id, d.dorm_name AS dorm_name,
			d.room_number AS room_number, d.published AS published,
			d.photos_empty AS photos_empty
		FROM saved_dorms s
		JOIN dorm_profiles d ON d.id = s.dorm_profile_id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *savedDormRepository) IsSaved(userID, dormProfileID string) (bool, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM saved_dorms WHERE user_id = $1 AND dorm_profile_id = $2
	`, userID, dormProfileID).Scan(&count)
	return count > 0, err
}
