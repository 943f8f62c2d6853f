package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dormscout/dormscout/internal/model"
)

type fakeSavedRepo struct {
	saved map[string]map[string]bool // user id -> dorm id
}

func newFakeSavedRepo() *fakeSavedRepo {
	return &fakeSavedRepo{saved: map[string]map[string]bool{}}
}

func (r *fakeSavedRepo) Save(userID, dormProfileID string) error {
	if r.saved[userID] == nil {
		r.saved[userID] = map[string]bool{}
	}
	r.saved[userID][dormProfileID] = true
	return nil
}

func (r *fakeSavedRepo) Unsave(userID, dormProfileID string) error {
	delete(r.saved[userID], dormProfileID)
	return nil
}

func (r *fakeSavedRepo) List(userID string) ([]*model.SavedDormEntry, error) {
	var out []*model.SavedDormEntry
	for dormID := range r.saved[userID] {
		out = append(out, &model.SavedDormEntry{DormID: dormID})
	}
	return out, nil
}

func (r *fakeSavedRepo) IsSaved(userID, dormProfileID string) (bool, error) {
	return r.saved[userID][dormProfileID], nil
}

func newSavedFixture(t *testing.T) (*SavedDormService, *fakeSavedRepo, *DormService) {
	t.Helper()
	dormService, dorms, _ := newDormFixture()
	saved := newFakeSavedRepo()
	svc := NewSavedDormService(saved, dorms, dormService)
	return svc, saved, dormService
}

func TestSaveRequiresVisibleDorm(t *testing.T) {
	svc, saved, dormService := newSavedFixture(t)

	dorm, err := dormService.Create(context.Background(), validCreate(t))
	require.NoError(t, err)

	// Someone else can't bookmark a draft.
	err = svc.Save("user-2", dorm.ID)
	assert.ErrorIs(t, err, ErrDormNotFound)

	require.NoError(t, dormService.SetPublished("user-1", dorm.ID, true))
	require.NoError(t, svc.Save("user-2", dorm.ID))
	assert.True(t, saved.saved["user-2"][dorm.ID])
}

func TestSaveMissingDorm(t *testing.T) {
	svc, _, _ := newSavedFixture(t)

	err := svc.Save("user-1", "dorm-missing")
	assert.ErrorIs(t, err, ErrDormNotFound)
}

func TestUnsaveThenIsSaved(t *testing.T) {
	svc, _, dormService := newSavedFixture(t)

	dorm, err := dormService.Create(context.Background(), validCreate(t))
	require.NoError(t, err)
	require.NoError(t, dormService.SetPublished("user-1", dorm.ID, true))

	require.NoError(t, svc.Save("user-2", dorm.ID))
	is, err := svc.IsSaved("user-2", dorm.ID)
	require.NoError(t, err)
	assert.True(t, is)

	require.NoError(t, svc.Unsave("user-2", dorm.ID))
	is, err = svc.IsSaved("user-2", dorm.ID)
	require.NoError(t, err)
	assert.False(t, is)
}
