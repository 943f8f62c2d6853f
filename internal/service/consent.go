package service

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dormscout/dormscout/internal/legal"
	"github.com/dormscout/dormscout/internal/metrics"
	"github.com/dormscout/dormscout/internal/model"
	"github.com/dormscout/dormscout/internal/repository"
)

var ErrNotAuthenticated = errors.New("not authenticated")

// ConsentService records acceptance of the current legal versions and
// answers whether a profile needs to re-consent.
type ConsentService struct {
	consentRepository repository.ConsentRepository
}

func NewConsentService(consentRepository repository.ConsentRepository) *ConsentService {
	return &ConsentService{consentRepository: consentRepository}
}

// Record appends a consent-log row for the current terms and privacy
// versions and refreshes the profile's cached versions. Always records
// the server's current versions, never client-supplied ones.
func (s *ConsentService) Record(userID, ipAddress, userAgent string) (*model.Consent, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	consent := &model.Consent{
		UserID:         userID,
		TOSVersion:     legal.TOSVersion,
		PrivacyVersion: legal.PrivacyVersion,
		ConsentedAt:    time.Now(),
	}
	if ipAddress != "" {
		consent.IPAddress = &ipAddress
	}
	if userAgent != "" {
		consent.UserAgent = &userAgent
	}

	err := s.consentRepository.Record(consent)
	if err != nil {
		return nil, fmt.Errorf("failed to record consent: %w", err)
	}

	metrics.ConsentRecordedTotal.Inc()
	slog.Info("consent recorded", "user_id", userID, "tos", consent.TOSVersion, "privacy", consent.PrivacyVersion)
	return consent, nil
}

// NeedsReconsent reports whether the profile's cached versions lag the
// current ones. A nil profile always needs consent.
func (s *ConsentService) NeedsReconsent(profile *model.Profile) bool {
	if profile == nil {
		return true
	}
	return legal.NeedsReconsent(profile.LatestTOSVersion, profile.LatestPrivacyVersion)
}

// History returns the user's consent log, newest first.
func (s *ConsentService) History(userID string) ([]*model.Consent, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	return s.consentRepository.ByUser(userID)
}
