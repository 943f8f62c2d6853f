package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/dormscout/dormscout/internal/model"
)

var (
	ErrSchoolNotFound = errors.New("school not found")
)

type SchoolRepository interface {
	ByID(id string) (*model.School, error)
	// Search returns active schools matching the name pattern, ordered by
	// name. An empty term returns all active schools.
	Search(term string) ([]*model.School, error)
	// ByDomain resolves an email domain to the school that claims it.
	ByDomain(domain string) (*model.School, error)
}

type schoolRepository struct {
	db *sqlx.DB
}

func NewSchoolRepository(db *sqlx.DB) SchoolRepository {
	return &schoolRepository{db: db}
}

func (r *schoolRepository) ByID(id string) (*model.School, error) {
	var school model.School
	err := r.db.Get(&school, `SELECT * FROM schools WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrSchoolNotFound
	}
	if err != nil {
		return nil, err
	}
	return &school, nil
}

func (r *schoolRepository) Search(term string) ([]*model.School, error) {
	var schools []*model.School

	// LOWER() LIKE keeps the match case-insensitive on both sqlite and postgres.
	err := r.db.Select(&schools, `
		SELECT * FROM schools
		WHERE status = $1 AND LOWER(name) LIKE LOWER($2)
		ORDER BY name
	`, model.SchoolStatusActive, "%"+term+"%")
	if err != nil {
		return nil, err
	}

	return schools, nil
}

func (r *schoolRepository) ByDomain(domain string) (*model.School, error) {
	var school model.School

	// domain_whitelist is a JSON array column; matching the quoted element
	// avoids a JSON function split between the sqlite and postgres drivers.
	err := r.db.Get(&school, `
		SELECT * FROM schools
		WHERE status = $1 AND domain_whitelist LIKE $2
		ORDER BY name
		LIMIT 1
	`, model.SchoolStatusActive, `%"`+domain+`"%`)
	if err == sql.ErrNoRows {
		return nil, ErrSchoolNotFound
	}
	if err != nil {
		return nil, err
	}
	return &school, nil
}
