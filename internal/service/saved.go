package service

import (
	"errors"
	"fmt"

	"github.com/dormscout/dormscout/internal/model"
	"github.com/dormscout/dormscout/internal/repository"
)

type SavedDormService struct {
	savedRepository repository.SavedDormRepository
	dormRepository  repository.DormRepository
	dormService     *DormService
}

func NewSavedDormService(
	savedRepository repository.SavedDormRepository,
	dormRepository repository.DormRepository,
	dormService *DormService,
) *SavedDormService {
	return &SavedDormService{
		savedRepository: savedRepository,
		dormRepository:  dormRepository,
		dormService:     dormService,
	}
}

// Save bookmarks a published dorm. Saving something already saved is a
// no-op so doubled taps never error.
func (s *SavedDormService) Save(userID, dormID string) error {
	dorm, err := s.dormRepository.ByID(dormID)
	if err != nil {
		if errors.Is(err, repository.ErrDormNotFound) {
			return ErrDormNotFound
		}
		return err
	}

	// Drafts are only visible to their owner, so only published profiles
	// can be bookmarked by others.
	if !dorm.Published && dorm.UserID != userID {
		return ErrDormNotFound
	}

	err = s.savedRepository.Save(userID, dormID)
	if err != nil {
		return fmt.Errorf("failed to save dorm: %w", err)
	}
	return nil
}

func (s *SavedDormService) Unsave(userID, dormID string) error {
	return s.savedRepository.Unsave(userID, dormID)
}

// List returns the user's bookmarks, newest first, with photo paths
// resolved to URLs. Unpublished dorms stay in the list flagged as such;
// the listing details stay hidden until republished.
func (s *SavedDormService) List(userID string) ([]*model.SavedDormEntry, error) {
	entries, err := s.savedRepository.List(userID)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		for i, path := range entry.PhotosEmpty {
			entry.PhotosEmpty[i] = s.dormService.PhotoURL(path)
		}
	}
	return entries, nil
}

func (s *SavedDormService) IsSaved(userID, dormID string) (bool, error) {
	return s.savedRepository.IsSaved(userID, dormID)
}
