package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dormscout/dormscout/internal/model"
	"github.com/dormscout/dormscout/internal/rbac"
)

type fakeAdminRepo struct {
	stats model.AdminStats
}

func (r *fakeAdminRepo) Stats() (*model.AdminStats, error) {
	s := r.stats
	return &s, nil
}

func (r *fakeAdminRepo) Profiles(limit int) ([]model.AdminProfileEntry, error) {
	return []model.AdminProfileEntry{}, nil
}

func (r *fakeAdminRepo) RecentDorms(limit int) ([]model.AdminDormEntry, error) {
	return []model.AdminDormEntry{}, nil
}

func TestAdminStatsRequiresAdminRole(t *testing.T) {
	svc := NewAdminService(
		&fakeAdminRepo{stats: model.AdminStats{TotalUsers: 3}},
		&fakeConsentRepo{profiles: newFakeProfileRepo()},
	)

	_, err := svc.Stats(rbac.RoleUser)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Stats(rbac.RoleModerator)
	assert.ErrorIs(t, err, ErrForbidden)

	stats, err := svc.Stats(rbac.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalUsers)
}

func TestAdminDormsOpenToModerators(t *testing.T) {
	svc := NewAdminService(&fakeAdminRepo{}, &fakeConsentRepo{profiles: newFakeProfileRepo()})

	_, err := svc.RecentDorms(rbac.RoleModerator, 10)
	assert.NoError(t, err)

	_, err = svc.RecentDorms(rbac.RoleUser, 10)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAdminConsentsRequiresAdminRole(t *testing.T) {
	svc := NewAdminService(&fakeAdminRepo{}, &fakeConsentRepo{profiles: newFakeProfileRepo()})

	_, err := svc.Consents(rbac.RoleModerator, "")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Consents(rbac.RoleAdmin, "")
	assert.NoError(t, err)
}
