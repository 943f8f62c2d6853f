package repository

import (
	"github.com/jmoiron/sqlx"

	"github.com/dormscout/dormscout/internal/model"
)

type AdminRepository interface {
	Stats() (*model.AdminStats, error)
	// Profiles returns the newest profiles joined with their school names.
	Profiles(limit int) ([]model.AdminProfileEntry, error)
	// RecentDorms returns the newest dorm submissions joined with school
	// name and submitter email.
	RecentDorms(limit int) ([]model.AdminDormEntry, error)
}

type adminRepository struct {
	db *sqlx.DB
}

func NewAdminRepository(db *sqlx.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Stats() (*model.AdminStats, error) {
	var stats model.AdminStats
	err := r.db.Get(&stats, `
		SELECT
			(SELECT COUNT(*) FROM users) AS total_users,
			(SELECT COUNT(*) FROM schools WHERE status = 'active') AS total_schools,
			(SELECT COUNT(*) FROM dorm_profiles) AS total_dorms,
			(SELECT COUNT(*) FROM posts) AS total_posts
	`)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *adminRepository) Profiles(limit int) ([]model.AdminProfileEntry, error) {
	entries := []model.AdminProfileEntry{}
	err := r.db.Select(&entries, `
		SELECT p.id, p.user_id, u.email, p.role, s.name AS school_name,
		       p.verified_at, p.created_at
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		LEFT JOIN schools s ON s.id = p.school_id
		ORDER BY p.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *adminRepository) RecentDorms(limit int) ([]model.AdminDormEntry, error) {
	entries := []model.AdminDormEntry{}
	err := r.db.Select(&entries, `
		SELECT d.id, d.dorm_name, d.room_number, d.published,
		       s.name AS school_name, u.email AS submitter_email, d.created_at
		FROM dorm_profiles d
		JOIN schools s ON s.id = d.school_id
		JOIN users u ON u.id = d.user_id
		ORDER BY d.created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return entries, nil
}
