package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dormscout/dormscout/internal/ctxkeys"
	"github.com/dormscout/dormscout/internal/model"
	"github.com/dormscout/dormscout/internal/rbac"
	"github.com/dormscout/dormscout/internal/service"
)

type stubAdminRepo struct{}

func (stubAdminRepo) Stats() (*model.AdminStats, error) {
	return &model.AdminStats{TotalUsers: 7}, nil
}

func (stubAdminRepo) Profiles(limit int) ([]model.AdminProfileEntry, error) {
	return nil, nil
}

func (stubAdminRepo) RecentDorms(limit int) ([]model.AdminDormEntry, error) {
	return nil, nil
}

type stubConsentRepo struct{}

func (stubConsentRepo) Record(*model.Consent) error { return nil }

func (stubConsentRepo) ByUser(string) ([]*model.Consent, error) { return nil, nil }

func (stubConsentRepo) All(string) ([]*model.ConsentEntry, error) {
	return []*model.ConsentEntry{}, nil
}

func adminRequest(role string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	ctx := ctxkeys.WithUser(r.Context(), &model.User{ID: "user-1"})
	ctx = ctxkeys.WithProfile(ctx, &model.Profile{UserID: "user-1", Role: role})
	return r.WithContext(ctx)
}

func TestAdminStatsByRole(t *testing.T) {
	h := NewAdminHandler(service.NewAdminService(stubAdminRepo{}, stubConsentRepo{}))

	w := httptest.NewRecorder()
	h.Stats(w, adminRequest(rbac.RoleAdmin))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_users":7`)

	w = httptest.NewRecorder()
	h.Stats(w, adminRequest(rbac.RoleUser))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminConsentsModeratorForbidden(t *testing.T) {
	h := NewAdminHandler(service.NewAdminService(stubAdminRepo{}, stubConsentRepo{}))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/admin/consents", nil)
	ctx := ctxkeys.WithProfile(r.Context(), &model.Profile{Role: rbac.RoleModerator})
	h.Consents(w, r.WithContext(ctx))

	assert.Equal(t, http.StatusForbidden, w.Code)
}
