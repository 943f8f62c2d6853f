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
	ErrDormNotFound = errors.New("dorm profile not found")
)

type DormRepository interface {
	Create(dorm *model.DormProfile) error
	// ByID returns the row regardless of published state; visibility is the
	// service's decision.
	ByID(id string) (*model.DormProfile, error)
	// Search returns published profiles for a school, matched across
	// dorm_name, room_number and notes. An empty term returns all published
	// profiles for the school.
	Search(schoolID, term string) ([]*model.DormProfile, error)
	ByUser(userID string) ([]*model.DormProfile, error)
	// Update writes the editable fields, scoped to the owning user.
	Update(userID string, dorm *model.DormProfile) error
	SetPublished(userID, dormID string, published bool) error
	Delete(userID, dormID string) (*model.DormProfile, error)
}

type dormRepository struct {
	db *sqlx.DB
}

func NewDormRepository(db *sqlx.DB) DormRepository {
	return &dormRepository{db: db}
}

func (r *dormRepository) Create(dorm *model.DormProfile) error {
	if dorm.ID == "" {
		dorm.ID = uuid.New().String()
	}
	now := time.Now()
	if dorm.CreatedAt.IsZero() {
		dorm.CreatedAt = now
	}
	if dorm.UpdatedAt.IsZero() {
		dorm.UpdatedAt = now
	}

	query := `
		INSERT INTO dorm_profiles (id, user_id, school_id, dorm_name, room_number, notes,
			photos_empty, photos_decorated, published, contact_enabled,
			contact_email, contact_first_name, contact_last_initial,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.Exec(query,
		dorm.ID,
		dorm.UserID,
		dorm.SchoolID,
		dorm.DormName,
		dorm.RoomNumber,
		dorm.Notes,
		dorm.PhotosEmpty,
		dorm.PhotosDecorated,
		dorm.Published,
		dorm.ContactEnabled,
		dorm.ContactEmail,
		dorm.ContactFirstName,
		dorm.ContactLastInitial,
		dorm.CreatedAt,
		dorm.UpdatedAt,
	)

	return err
}

func (r *dormRepository) ByID(id string) (*model.DormProfile, error) {
	var dorm model.DormProfile
	err := r.db.Get(&dorm, `SELECT * FROM dorm_profiles WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrDormNotFound
	}
	if err != nil {
		return nil, err
	}
	return &dorm, nil
}

func (r *dormRepository) Search(schoolID, term string) ([]*model.DormProfile, error) {
	var dorms []*model.DormProfile

	pattern := "%" + term + "%"
	err := r.db.Select(&dorms, `
		SELECT * FROM dorm_profiles
		WHERE school_id = $1 AND published = $2
		AND (LOWER(dorm_name) LIKE LOWER($3)
			OR LOWER(COALESCE(room_number, '')) LIKE LOWER($3)
			OR LOWER(COALESCE(notes, '')) LIKE LOWER($3))
		ORDER BY created_at DESC
	`, schoolID, true, pattern)
	if err != nil {
		return nil, err
	}

	return dorms, nil
}

func (r *dormRepository) ByUser(userID string) ([]*model.DormProfile, error) {
	var dorms []*model.DormProfile
	err := r.db.Select(&dorms, `
		SELECT * FROM dorm_profiles WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return dorms, nil
}

func (r *dormRepository) Update(userID string, dorm *model.DormProfile) error {
	query := `
		UPDATE dorm_profiles
		SET school_id = $1, dorm_name = $2, room_number = $3, notes = $4,
			photos_empty = $5, photos_decorated = $6, contact_enabled = $7,
			contact_email = $8, contact_first_name = $9, contact_last_initial = $10,
			updated_at = $11
		WHERE id = $12 AND user_id = $13
	`
	result, err := r.db.Exec(query,
		dorm.SchoolID,
		dorm.DormName,
		dorm.RoomNumber,
		dorm.Notes,
		dorm.PhotosEmpty,
		dorm.PhotosDecorated,
		dorm.ContactEnabled,
		dorm.ContactEmail,
		dorm.ContactFirstName,
		dorm.ContactLastInitial,
		time.Now(),
		dorm.ID,
		userID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrDormNotFound
	}

	return nil
}

func (r *dormRepository) SetPublished(userID, dormID string, published bool) error {
	result, err := r.db.Exec(`
		UPDATE dorm_profiles
		SET published = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
	`, published, time.Now(), dormID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrDormNotFound
	}

	return nil
}

// Delete removes an owned profile and returns the deleted row so the
// caller can clean up its stored photos.
func (r *dormRepository) Delete(userID, dormID string) (*model.DormProfile, error) {
	dorm, err := r.ByID(dormID)
	if err != nil {
		return nil, err
	}
	if dorm.UserID != userID {
		return nil, ErrDormNotFound
	}

	result, err := r.db.Exec(`DELETE FROM dorm_profiles WHERE id = $1 AND user_id = $2`, dormID, userID)
	if err != nil {
		return nil, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrDormNotFound
	}

	return dorm, nil
}
