package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dormscout/dormscout/internal/ctxkeys"
	"github.com/dormscout/dormscout/internal/legal"
	"github.com/dormscout/dormscout/internal/model"
)

func consentRequest(t *testing.T, path string, profile *model.Profile) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, path, nil)
	if profile != nil {
		ctx := ctxkeys.WithUser(r.Context(), &model.User{ID: profile.UserID})
		ctx = ctxkeys.WithProfile(ctx, profile)
		r = r.WithContext(ctx)
	}
	return r
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestConsentGateBlocksStaleConsent(t *testing.T) {
	stale := "2020-06-15"
	profile := &model.Profile{
		UserID:               "user-1",
		LatestTOSVersion:     &stale,
		LatestPrivacyVersion: &stale,
	}

	w := httptest.NewRecorder()
	ConsentGate(okHandler()).ServeHTTP(w, consentRequest(t, "/api/dorms", profile))

	assert.Equal(t, http.StatusUnavailableForLegalReasons, w.Code)
	assert.Contains(t, w.Body.String(), "consent_required")
	assert.Contains(t, w.Body.String(), legal.TOSVersion)
}

func TestConsentGatePassesCurrentConsent(t *testing.T) {
	current := legal.TOSVersion
	profile := &model.Profile{
		UserID:               "user-1",
		LatestTOSVersion:     &current,
		LatestPrivacyVersion: &current,
	}

	w := httptest.NewRecorder()
	ConsentGate(okHandler()).ServeHTTP(w, consentRequest(t, "/api/dorms", profile))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestConsentGateExemptPaths(t *testing.T) {
	// A user who never consented must still be able to reach the
	// consent and legal endpoints, or they could never consent at all.
	profile := &model.Profile{UserID: "user-1"}

	for _, path := range []string{"/api/consent", "/api/legal/terms-of-service", "/api/auth/logout", "/api/health"} {
		w := httptest.NewRecorder()
		ConsentGate(okHandler()).ServeHTTP(w, consentRequest(t, path, profile))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestConsentGateIgnoresAnonymous(t *testing.T) {
	w := httptest.NewRecorder()
	ConsentGate(okHandler()).ServeHTTP(w, consentRequest(t, "/api/dorms", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
