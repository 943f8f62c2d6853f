package legal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestNeedsReconsent(t *testing.T) {
	testCases := []struct {
		name    string
		tos     *string
		privacy *string
		want    bool
	}{
		{
			name:    "both versions current",
			tos:     strPtr(TOSVersion),
			privacy: strPtr(PrivacyVersion),
			want:    false,
		},
		{
			name:    "both versions absent",
			tos:     nil,
			privacy: nil,
			want:    true,
		},
		{
			name:    "tos absent",
			tos:     nil,
			privacy: strPtr(PrivacyVersion),
			want:    true,
		},
		{
			name:    "privacy absent",
			tos:     strPtr(TOSVersion),
			privacy: nil,
			want:    true,
		},
		{
			name:    "tos stale",
			tos:     strPtr("2024-06-01"),
			privacy: strPtr(PrivacyVersion),
			want:    true,
		},
		{
			name:    "privacy stale",
			tos:     strPtr(TOSVersion),
			privacy: strPtr("2024-06-01"),
			want:    true,
		},
		{
			name:    "both stale",
			tos:     strPtr("2024-06-01"),
			privacy: strPtr("2024-06-01"),
			want:    true,
		},
		{
			name:    "empty strings are stale",
			tos:     strPtr(""),
			privacy: strPtr(""),
			want:    true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NeedsReconsent(tc.tos, tc.privacy))
		})
	}
}
