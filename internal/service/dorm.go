package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dormscout/dormscout/internal/metrics"
	"github.com/dormscout/dormscout/internal/model"
	"github.com/dormscout/dormscout/internal/repository"
	"github.com/dormscout/dormscout/internal/storage"
	"github.com/dormscout/dormscout/internal/validation"
)

const maxPhotosPerSet = 10

var (
	ErrDormNameRequired = errors.New("dorm name is required")
	ErrSchoolRequired   = errors.New("school is required")
	ErrTooManyPhotos    = fmt.Errorf("too many photos: maximum is %d per set", maxPhotosPerSet)
	ErrDormNotFound     = errors.New("dorm profile not found")
)

type DormService struct {
	dormRepository   repository.DormRepository
	schoolRepository repository.SchoolRepository
	storage          storage.Storage
}

func NewDormService(
	dormRepository repository.DormRepository,
	schoolRepository repository.SchoolRepository,
	storage storage.Storage,
) *DormService {
	return &DormService{
		dormRepository:   dormRepository,
		schoolRepository: schoolRepository,
		storage:          storage,
	}
}

// CreateDormInput carries the multipart submission: profile fields plus
// two photo sets, room as moved in and room decorated.
type CreateDormInput struct {
	UserID             string
	SchoolID           string
	DormName           string
	RoomNumber         *string
	Notes              *string
	ContactEnabled     bool
	ContactEmail       *string
	ContactFirstName   *string
	ContactLastInitial *string
	PhotosEmpty        []*multipart.FileHeader
	PhotosDecorated    []*multipart.FileHeader
}

// Create validates the submission, uploads every photo, and then inserts
// the profile row. Photos upload before the insert so the row never
// references missing objects; if the insert fails, every uploaded photo
// is deleted again.
func (s *DormService) Create(ctx context.Context, in CreateDormInput) (*model.DormProfile, error) {
	if in.DormName == "" {
		return nil, ErrDormNameRequired
	}
	if in.SchoolID == "" {
		return nil, ErrSchoolRequired
	}
	if len(in.PhotosEmpty) > maxPhotosPerSet || len(in.PhotosDecorated) > maxPhotosPerSet {
		return nil, ErrTooManyPhotos
	}

	_, err := s.schoolRepository.ByID(in.SchoolID)
	if err != nil {
		if errors.Is(err, repository.ErrSchoolNotFound) {
			return nil, ErrSchoolRequired
		}
		return nil, fmt.Errorf("failed to check school: %w", err)
	}

	// Validate everything before the first upload so a bad file in the
	// second set doesn't leave orphans from the first.
	for _, header := range append(append([]*multipart.FileHeader{}, in.PhotosEmpty...), in.PhotosDecorated...) {
		if err := validation.ValidateFile(header, validation.ImageConstraints); err != nil {
			metrics.PhotoUploadsTotal.WithLabelValues("rejected").Inc()
			return nil, err
		}
	}

	dormID := uuid.New().String()
	var uploaded []string

	cleanup := func() {
		for _, path := range uploaded {
			if delErr := s.storage.Delete(ctx, path); delErr != nil {
				slog.Error("failed to delete photo during cleanup", "error", delErr, "path", path)
			}
		}
	}

	photosEmpty, err := s.uploadSet(ctx, dormID, "empty", in.PhotosEmpty, &uploaded)
	if err != nil {
		cleanup()
		metrics.PhotoUploadsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	photosDecorated, err := s.uploadSet(ctx, dormID, "decorated", in.PhotosDecorated, &uploaded)
	if err != nil {
		cleanup()
		metrics.PhotoUploadsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	now := time.Now()
	dorm := &model.DormProfile{
		ID:                 dormID,
		UserID:             in.UserID,
		SchoolID:           in.SchoolID,
		DormName:           in.DormName,
		RoomNumber:         in.RoomNumber,
		Notes:              in.Notes,
		PhotosEmpty:        photosEmpty,
		PhotosDecorated:    photosDecorated,
		Published:          false,
		ContactEnabled:     in.ContactEnabled,
		ContactEmail:       in.ContactEmail,
		ContactFirstName:   in.ContactFirstName,
		ContactLastInitial: in.ContactLastInitial,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err = s.dormRepository.Create(dorm)
	if err != nil {
		cleanup()
		metrics.PhotoUploadsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("failed to create dorm profile: %w", err)
	}

	metrics.PhotoUploadsTotal.WithLabelValues("success").Add(float64(len(uploaded)))
	slog.Info("dorm profile created", "dorm_id", dormID, "user_id", in.UserID, "photos", len(uploaded))
	return s.withPhotoURLs(dorm), nil
}

func (s *DormService) uploadSet(ctx context.Context, dormID, set string, headers []*multipart.FileHeader, uploaded *[]string) (model.StringList, error) {
	paths := model.StringList{}
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open photo: %w", err)
		}

		path := fmt.Sprintf("dorms/%s/%s/%s%s", dormID, set, uuid.New().String(), filepath.Ext(header.Filename))
		err = s.storage.Save(ctx, path, file)
		_ = file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to save photo: %w", err)
		}

		*uploaded = append(*uploaded, path)
		paths = append(paths, path)
	}
	return paths, nil
}

// ByID returns one dorm profile. Drafts are visible to their owner only;
// everyone else sees published profiles, redacted.
func (s *DormService) ByID(requesterID, dormID string) (*model.DormProfile, error) {
	dorm, err := s.dormRepository.ByID(dormID)
	if err != nil {
		if errors.Is(err, repository.ErrDormNotFound) {
			return nil, ErrDormNotFound
		}
		return nil, err
	}

	if dorm.UserID == requesterID && requesterID != "" {
		return s.withPhotoURLs(dorm), nil
	}

	if !dorm.Published {
		// Drafts don't exist for non-owners.
		return nil, ErrDormNotFound
	}

	redacted := dorm.Redacted()
	return s.withPhotoURLs(&redacted), nil
}

// Search returns published profiles for a school, redacted, newest first.
func (s *DormService) Search(schoolID, term string) ([]*model.DormProfile, error) {
	if schoolID == "" {
		return nil, ErrSchoolRequired
	}

	dorms, err := s.dormRepository.Search(schoolID, term)
	if err != nil {
		return nil, err
	}

	out := make([]*model.DormProfile, 0, len(dorms))
	for _, dorm := range dorms {
		redacted := dorm.Redacted()
		out = append(out, s.withPhotoURLs(&redacted))
	}
	return out, nil
}

// Mine returns all of the user's own profiles, drafts included.
func (s *DormService) Mine(userID string) ([]*model.DormProfile, error) {
	dorms, err := s.dormRepository.ByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]*model.DormProfile, 0, len(dorms))
	for _, dorm := range dorms {
		out = append(out, s.withPhotoURLs(dorm))
	}
	return out, nil
}

type UpdateDormInput struct {
	DormName           *string
	RoomNumber         *string
	Notes              *string
	ContactEnabled     *bool
	ContactEmail       *string
	ContactFirstName   *string
	ContactLastInitial *string
}

// Update edits an owned profile's text fields. Photos are immutable after
// creation; publish state changes through SetPublished.
func (s *DormService) Update(userID, dormID string, in UpdateDormInput) (*model.DormProfile, error) {
	dorm, err := s.dormRepository.ByID(dormID)
	if err != nil || dorm.UserID != userID {
		return nil, ErrDormNotFound
	}

	if in.DormName != nil {
		if *in.DormName == "" {
			return nil, ErrDormNameRequired
		}
		dorm.DormName = *in.DormName
	}
	if in.RoomNumber != nil {
		dorm.RoomNumber = in.RoomNumber
	}
	if in.Notes != nil {
		dorm.Notes = in.Notes
	}
	if in.ContactEnabled != nil {
		dorm.ContactEnabled = *in.ContactEnabled
	}
	if in.ContactEmail != nil {
		dorm.ContactEmail = in.ContactEmail
	}
	if in.ContactFirstName != nil {
		dorm.ContactFirstName = in.ContactFirstName
	}
	if in.ContactLastInitial != nil {
		dorm.ContactLastInitial = in.ContactLastInitial
	}
	dorm.UpdatedAt = time.Now()

	err = s.dormRepository.Update(userID, dorm)
	if err != nil {
		if errors.Is(err, repository.ErrDormNotFound) {
			return nil, ErrDormNotFound
		}
		return nil, err
	}

	return s.withPhotoURLs(dorm), nil
}

func (s *DormService) SetPublished(userID, dormID string, published bool) error {
	err := s.dormRepository.SetPublished(userID, dormID, published)
	if err != nil {
		if errors.Is(err, repository.ErrDormNotFound) {
			return ErrDormNotFound
		}
		return err
	}

	slog.Info("dorm publish state changed", "dorm_id", dormID, "published", published)
	return nil
}

// Delete removes an owned profile and then its photos from storage. The
// row goes first so a storage failure can't resurrect the listing.
func (s *DormService) Delete(ctx context.Context, userID, dormID string) error {
	dorm, err := s.dormRepository.Delete(userID, dormID)
	if err != nil {
		if errors.Is(err, repository.ErrDormNotFound) {
			return ErrDormNotFound
		}
		return err
	}

	for _, path := range append(dorm.PhotosEmpty, dorm.PhotosDecorated...) {
		if delErr := s.storage.Delete(ctx, path); delErr != nil {
			slog.Warn("failed to delete photo from storage", "error", delErr, "path", path)
		}
	}

	slog.Info("dorm profile deleted", "dorm_id", dormID, "user_id", userID)
	return nil
}

// withPhotoURLs returns a copy with stored object paths resolved to public
// URLs. The input keeps its raw paths so deletes still address storage.
func (s *DormService) withPhotoURLs(dorm *model.DormProfile) *model.DormProfile {
	resolved := *dorm
	resolved.PhotosEmpty = s.photoURLs(dorm.PhotosEmpty)
	resolved.PhotosDecorated = s.photoURLs(dorm.PhotosDecorated)
	return &resolved
}

func (s *DormService) photoURLs(paths model.StringList) model.StringList {
	if paths == nil {
		return nil
	}
	urls := make(model.StringList, len(paths))
	for i, path := range paths {
		urls[i] = s.storage.URL(path)
	}
	return urls
}

// PhotoURL resolves a stored path for callers that hold raw entries.
func (s *DormService) PhotoURL(path string) string {
	return s.storage.URL(path)
}
