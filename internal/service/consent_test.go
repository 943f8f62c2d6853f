package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dormscout/dormscout/internal/legal"
	"github.com/dormscout/dormscout/internal/model"
)

func TestConsentRecordUsesServerVersions(t *testing.T) {
	profiles := newFakeProfileRepo()
	require.NoError(t, profiles.Create(&model.Profile{ID: "pro-1", UserID: "user-1"}))
	repo := &fakeConsentRepo{profiles: profiles}
	svc := NewConsentService(repo)

	consent, err := svc.Record("user-1", "203.0.113.7", "test-agent")
	require.NoError(t, err)
	assert.Equal(t, legal.TOSVersion, consent.TOSVersion)
	assert.Equal(t, legal.PrivacyVersion, consent.PrivacyVersion)
	require.NotNil(t, consent.IPAddress)
	assert.Equal(t, "203.0.113.7", *consent.IPAddress)

	profile, err := profiles.ByUserID("user-1")
	require.NoError(t, err)
	require.NotNil(t, profile.LatestTOSVersion)
	assert.Equal(t, legal.TOSVersion, *profile.LatestTOSVersion)
	assert.NotNil(t, profile.LatestConsentedAt)
}

func TestConsentRecordRequiresUser(t *testing.T) {
	svc := NewConsentService(&fakeConsentRepo{profiles: newFakeProfileRepo()})

	_, err := svc.Record("", "", "")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestConsentRecordIsAppendOnly(t *testing.T) {
	profiles := newFakeProfileRepo()
	require.NoError(t, profiles.Create(&model.Profile{ID: "pro-1", UserID: "user-1"}))
	repo := &fakeConsentRepo{profiles: profiles}
	svc := NewConsentService(repo)

	_, err := svc.Record("user-1", "", "")
	require.NoError(t, err)
	_, err = svc.Record("user-1", "", "")
	require.NoError(t, err)

	// Re-consenting appends a second row instead of rewriting the first.
	assert.Len(t, repo.records, 2)
}

func TestNeedsReconsent(t *testing.T) {
	svc := NewConsentService(&fakeConsentRepo{profiles: newFakeProfileRepo()})

	current := legal.TOSVersion
	stale := "2020-06-15"
	now := time.Now()

	tests := []struct {
		name    string
		profile *model.Profile
		want    bool
	}{
		{"nil profile", nil, true},
		{"never consented", &model.Profile{}, true},
		{"current versions", &model.Profile{
			LatestTOSVersion:     &current,
			LatestPrivacyVersion: &current,
			LatestConsentedAt:    &now,
		}, false},
		{"stale tos", &model.Profile{
			LatestTOSVersion:     &stale,
			LatestPrivacyVersion: &current,
		}, true},
		{"stale privacy", &model.Profile{
			LatestTOSVersion:     &current,
			LatestPrivacyVersion: &stale,
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.NeedsReconsent(tt.profile))
		})
	}
}
