// Package legal holds the published legal-document versions and the
// re-consent policy. Versions are date stamps; bumping a constant forces
// every signed-in user back through the consent gate.
package legal

const (
	TOSVersion     = "2025-01-01"
	PrivacyVersion = "2025-01-01"
)

// NeedsReconsent reports whether a user's stored consent is stale. A nil
// version means the user never consented, which trivially requires consent.
func NeedsReconsent(tosVersion, privacyVersion *string) bool {
	if tosVersion == nil || privacyVersion == nil {
		return true
	}
	return *tosVersion != TOSVersion || *privacyVersion != PrivacyVersion
}
