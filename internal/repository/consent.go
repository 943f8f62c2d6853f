package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/dormscout/dormscout/internal/model"
)

type ConsentRepository interface {
	// Record appends a consent-log row and overwrites the profile's cached
	// versions in one transaction. A failure leaves both untouched.
	Record(consent *model.Consent) error
	ByUser(userID string) ([]*model.Consent, error)
	All(emailFilter string) ([]*model.ConsentEntry, error)
}

type consentRepository struct {
	db *sqlx.DB
}

func NewConsentRepository(db *sqlx.DB) ConsentRepository {
	return &consentRepository{db: db}
}

func (r *consentRepository) Record(consent *model.Consent) error {
	if consent.ID == "" {
		consent.ID = uuid.New().String()
	}
	if consent.ConsentedAt.IsZero() {
		consent.ConsentedAt = time.Now()
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO user_consents (id, user_id, tos_version, privacy_version, consented_at, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, consent.ID, consent.UserID, consent.TOSVersion, consent.PrivacyVersion,
		consent.ConsentedAt, consent.IPAddress, consent.UserAgent)
	if err != nil {
		return fmt.Errorf("failed to append consent log: %w", err)
	}

	result, err := tx.Exec(`
		UPDATE profiles
		SET latest_tos_version = $1, latest_privacy_version = $2,
			latest_consented_at = $3, updated_at = $4
		WHERE user_id = $5
	`, consent.TOSVersion, consent.PrivacyVersion, consent.ConsentedAt, time.Now(), consent.UserID)
	if err != nil {
		return fmt.Errorf("failed to update cached consent versions: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProfileNotFound
	}

	return tx.Commit()
}

func (r *consentRepository) ByUser(userID string) ([]*model.Consent, error) {
	var consents []*model.Consent
	err := r.db.Select(&consents, `
		SELECT * FROM user_consents WHERE user_id = $1 ORDER BY consented_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	return consents, nil
}

// All returns the consent log joined with user emails, newest first,
// optionally filtered by email substring.
func (r *consentRepository) All(emailFilter string) ([]*model.ConsentEntry, error) {
	var entries []*model.ConsentEntry

	query := `
		SELECT c.*, u.email AS email
		FROM user_consents c
		JOIN users u ON u.id = c.user_id
	`
	args := []any{}
	if emailFilter != "" {
		query += ` WHERE LOWER(u.email) LIKE LOWER($1)`
		args = append(args, "%"+emailFilter+"%")
	}
	query += ` ORDER BY c.consented_at DESC`

	err := r.db.Select(&entries, query, args...)
	if err != nil {
		return nil, err
	}
	return entries, nil
}
