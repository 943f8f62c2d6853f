package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dormscout/dormscout/internal/config"
	"github.com/dormscout/dormscout/internal/model"
	"github.com/dormscout/dormscout/internal/repository"
)

// ---- in-memory repository fakes ----

type fakeUserRepo struct {
	users map[string]*model.User // keyed by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (r *fakeUserRepo) Create(user *model.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) ByID(id string) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeUserRepo) ByEmail(email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Update(user *model.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) Delete(id string) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeProfileRepo struct {
	profiles map[string]*model.Profile // keyed by user id
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*model.Profile{}}
}

func (r *fakeProfileRepo) Create(profile *model.Profile) error {
	clone := *profile
	r.profiles[profile.UserID] = &clone
	return nil
}

func (r *fakeProfileRepo) ByUserID(userID string) (*model.Profile, error) {
	p, ok := r.profiles[userID]
	if !ok {
		return nil, repository.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakeProfileRepo) MarkVerified(userID string, at time.Time) error {
	p, ok := r.profiles[userID]
	if !ok {
		return repository.ErrProfileNotFound
	}
	p.VerifiedAt = &at
	return nil
}

// setConsent mirrors the cached-version update the consent transaction
// performs on profiles.
func (r *fakeProfileRepo) setConsent(userID, tosVersion, privacyVersion string, at time.Time) error {
	p, ok := r.profiles[userID]
	if !ok {
		return repository.ErrProfileNotFound
	}
	p.LatestTOSVersion = &tosVersion
	p.LatestPrivacyVersion = &privacyVersion
	p.LatestConsentedAt = &at
	return nil
}

type fakeSchoolRepo struct {
	schools []*model.School
}

func (r *fakeSchoolRepo) ByID(id string) (*model.School, error) {
	for _, s := range r.schools {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, repository.ErrSchoolNotFound
}

func (r *fakeSchoolRepo) Search(term string) ([]*model.School, error) {
	var out []*model.School
	for _, s := range r.schools {
		if s.Status == model.SchoolStatusActive &&
			strings.Contains(strings.ToLower(s.Name), strings.ToLower(term)) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSchoolRepo) ByDomain(domain string) (*model.School, error) {
	for _, s := range r.schools {
		for _, d := range s.DomainWhitelist {
			if d == domain {
				return s, nil
			}
		}
	}
	return nil, repository.ErrSchoolNotFound
}

type fakeTokenRepo struct {
	tokens map[string]*model.Token // keyed by token string
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*model.Token{}}
}

func (r *fakeTokenRepo) Create(token *model.Token) error {
	clone := *token
	r.tokens[token.Token] = &clone
	return nil
}

func (r *fakeTokenRepo) ConsumeToken(token string) (*model.Token, error) {
	t, ok := r.tokens[token]
	if !ok || !t.IsValid() {
		return nil, repository.ErrTokenNotFound
	}
	now := time.Now()
	t.UsedAt = &now
	clone := *t
	return &clone, nil
}

func (r *fakeTokenRepo) DeleteByUserAndType(userID, tokenType string) error {
	for k, t := range r.tokens {
		if t.UserID == userID && t.Type == tokenType && t.UsedAt == nil {
			delete(r.tokens, k)
		}
	}
	return nil
}

type fakeConsentRepo struct {
	profiles *fakeProfileRepo
	records  []*model.Consent
}

func (r *fakeConsentRepo) Record(consent *model.Consent) error {
	if _, ok := r.profiles.profiles[consent.UserID]; !ok {
		return repository.ErrProfileNotFound
	}
	clone := *consent
	r.records = append(r.records, &clone)
	return r.profiles.setConsent(consent.UserID, consent.TOSVersion, consent.PrivacyVersion, consent.ConsentedAt)
}

func (r *fakeConsentRepo) ByUser(userID string) ([]*model.Consent, error) {
	var out []*model.Consent
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].UserID == userID {
			out = append(out, r.records[i])
		}
	}
	return out, nil
}

func (r *fakeConsentRepo) All(emailFilter string) ([]*model.ConsentEntry, error) {
	var out []*model.ConsentEntry
	for i := len(r.records) - 1; i >= 0; i-- {
		out = append(out, &model.ConsentEntry{Consent: *r.records[i]})
	}
	return out, nil
}

type fakeDormRepo struct {
	dorms     map[string]*model.DormProfile
	createErr error
}

func newFakeDormRepo() *fakeDormRepo {
	return &fakeDormRepo{dorms: map[string]*model.DormProfile{}}
}

// cloneDorm copies the row including its photo lists, the way a fresh
// database scan would.
func cloneDorm(dorm *model.DormProfile) *model.DormProfile {
	clone := *dorm
	clone.PhotosEmpty = append(model.StringList{}, dorm.PhotosEmpty...)
	clone.PhotosDecorated = append(model.StringList{}, dorm.PhotosDecorated...)
	return &clone
}

func (r *fakeDormRepo) Create(dorm *model.DormProfile) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.dorms[dorm.ID] = cloneDorm(dorm)
	return nil
}

func (r *fakeDormRepo) ByID(id string) (*model.DormProfile, error) {
	d, ok := r.dorms[id]
	if !ok {
		return nil, repository.ErrDormNotFound
	}
	return cloneDorm(d), nil
}

func (r *fakeDormRepo) Search(schoolID, term string) ([]*model.DormProfile, error) {
	var out []*model.DormProfile
	for _, d := range r.dorms {
		if d.SchoolID == schoolID && d.Published &&
			strings.Contains(strings.ToLower(d.DormName), strings.ToLower(term)) {
			out = append(out, cloneDorm(d))
		}
	}
	return out, nil
}

func (r *fakeDormRepo) ByUser(userID string) ([]*model.DormProfile, error) {
	var out []*model.DormProfile
	for _, d := range r.dorms {
		if d.UserID == userID {
			out = append(out, cloneDorm(d))
		}
	}
	return out, nil
}

func (r *fakeDormRepo) Update(userID string, dorm *model.DormProfile) error {
	d, ok := r.dorms[dorm.ID]
	if !ok || d.UserID != userID {
		return repository.ErrDormNotFound
	}
	r.dorms[dorm.ID] = cloneDorm(dorm)
	return nil
}

func (r *fakeDormRepo) SetPublished(userID, dormID string, published bool) error {
	d, ok := r.dorms[dormID]
	if !ok || d.UserID != userID {
		return repository.ErrDormNotFound
	}
	d.Published = published
	return nil
}

func (r *fakeDormRepo) Delete(userID, dormID string) (*model.DormProfile, error) {
	d, ok := r.dorms[dormID]
	if !ok || d.UserID != userID {
		return nil, repository.ErrDormNotFound
	}
	delete(r.dorms, dormID)
	return d, nil
}

// fakeStorage records saves and deletes in memory.
type fakeStorage struct {
	saved   []string
	deleted []string
	saveErr error
}

func (s *fakeStorage) Save(_ context.Context, path string, _ io.Reader) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, path)
	return nil
}

func (s *fakeStorage) Delete(_ context.Context, path string) error {
	s.deleted = append(s.deleted, path)
	return nil
}

func (s *fakeStorage) URL(path string) string {
	return "https://cdn.test/" + path
}

// ---- shared fixtures ----

func testConfig() *config.Config {
	return &config.Config{
		AppName:                "Dorm Scout",
		AppEnv:                 "development",
		AppURL:                 "http://localhost:8090",
		JWTSecret:              "test-secret",
		JWTExpiry:              time.Hour,
		TokenEmailVerifyExpiry: time.Hour,
		AllowedEmailDomains:    []string{"stateu.edu", "statecollege.edu"},
		SignupBypassEmails:     []string{"operator@example.com"},
	}
}

// pngHeader is a minimal valid PNG prefix for content-type detection.
var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

// multipartPhotos builds real multipart file headers carrying PNG bytes.
func multipartPhotos(t *testing.T, field string, count int) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for i := 0; i < count; i++ {
		part, err := writer.CreateFormFile(field, fmt.Sprintf("photo-%d.png", i))
		require.NoError(t, err)
		_, err = part.Write(pngHeader)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&buf, writer.Boundary())
	form, err := reader.ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File[field]
}
