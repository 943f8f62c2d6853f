package middleware

import (
	"net/http"
	"strings"

	"github.com/dormscout/dormscout/internal/ctxkeys"
	"github.com/dormscout/dormscout/internal/legal"
)

// consentExemptPrefixes are reachable without current consent: everything
// a user needs to read the documents and accept them, plus auth itself.
var consentExemptPrefixes = []string{
	"/api/auth/",
	"/api/legal/",
	"/api/consent",
	"/api/health",
	"/metrics",
}

// ConsentGate blocks authenticated requests whose profile has not
// accepted the current terms and privacy versions. The response is 451
// with a machine-readable error so the client can open the consent flow
// instead of guessing from a generic 403. Anonymous requests pass; they
// consent during signup.
func ConsentGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, prefix := range consentExemptPrefixes {
			if strings.HasPrefix(r.URL.Path, prefix) {
				next.ServeHTTP(w, r)
				return
			}
		}

		user := ctxkeys.User(r.Context())
		if user == nil {
			next.ServeHTTP(w, r)
			return
		}

		profile := ctxkeys.Profile(r.Context())
		var tos, privacy *string
		if profile != nil {
			tos = profile.LatestTOSVersion
			privacy = profile.LatestPrivacyVersion
		}

		if legal.NeedsReconsent(tos, privacy) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnavailableForLegalReasons)
			_, _ = w.Write([]byte(`{"error":"consent_required","tos_version":"` +
				legal.TOSVersion + `","privacy_version":"` + legal.PrivacyVersion + `"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
