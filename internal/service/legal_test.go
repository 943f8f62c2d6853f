package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dormscout/dormscout/internal/legal"
)

func writeLegalDoc(t *testing.T, dir, slug, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "legal"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "legal", slug+".md"), []byte(content), 0o644))
}

func TestLegalPageLoading(t *testing.T) {
	dir := t.TempDir()
	writeLegalDoc(t, dir, "terms-of-service", `---
title: Terms of Service
version: "2025-01-01"
---

# Terms

Be nice.
`)

	svc := NewLegalService(dir)
	require.NoError(t, svc.LoadPages())

	page, err := svc.Page("terms-of-service")
	require.NoError(t, err)
	assert.Equal(t, "Terms of Service", page.Title)
	assert.Equal(t, legal.TOSVersion, page.Version)
	assert.Contains(t, page.Content, "Be nice.")
	assert.NotContains(t, page.Content, "version:")
}

func TestLegalPageTitleFallsBackToSlug(t *testing.T) {
	dir := t.TempDir()
	writeLegalDoc(t, dir, "privacy-policy", "# No frontmatter here\n")

	svc := NewLegalService(dir)
	require.NoError(t, svc.LoadPages())

	page, err := svc.Page("privacy-policy")
	require.NoError(t, err)
	assert.Equal(t, "Privacy Policy", page.Title)
}

func TestLegalPageNotFound(t *testing.T) {
	dir := t.TempDir()
	writeLegalDoc(t, dir, "terms-of-service", "x\n")

	svc := NewLegalService(dir)
	require.NoError(t, svc.LoadPages())

	_, err := svc.Page("cookie-policy")
	assert.ErrorIs(t, err, ErrPageNotFound)
}

func TestLegalCurrentVersions(t *testing.T) {
	svc := NewLegalService(t.TempDir())

	versions := svc.CurrentVersions()
	assert.Equal(t, legal.TOSVersion, versions["tos_version"])
	assert.Equal(t, legal.PrivacyVersion, versions["privacy_version"])
}
