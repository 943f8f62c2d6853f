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

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrPhotoNotFound = errors.New("photo not found")
	ErrTitleRequired = errors.New("title is required")
	ErrBadPhotoType  = errors.New("unknown photo type")
)

// PostService handles room-level posts and standalone room photos, the
// community layer over the building and room catalog.
type PostService struct {
	postRepository  repository.PostRepository
	photoRepository repository.PhotoRepository
	roomRepository  repository.RoomRepository
	storage         storage.Storage
}

func NewPostService(
	postRepository repository.PostRepository,
	photoRepository repository.PhotoRepository,
	roomRepository repository.RoomRepository,
	storage storage.Storage,
) *PostService {
	return &PostService{
		postRepository:  postRepository,
		photoRepository: photoRepository,
		roomRepository:  roomRepository,
		storage:         storage,
	}
}

type CreatePostInput struct {
	UserID  string
	RoomID  string
	Title   string
	Content string
	Tags    []string
}

func (s *PostService) Create(in CreatePostInput) (*model.Post, error) {
	if in.Title == "" {
		return nil, ErrTitleRequired
	}

	_, err := s.roomRepository.ByID(in.RoomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	now := time.Now()
	post := &model.Post{
		ID:        uuid.New().String(),
		UserID:    in.UserID,
		RoomID:    in.RoomID,
		Title:     in.Title,
		Content:   in.Content,
		Tags:      in.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.postRepository.Create(post)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return post, nil
}

func (s *PostService) ByRoom(roomID string) ([]*model.Post, error) {
	return s.postRepository.ByRoom(roomID)
}

func (s *PostService) Delete(userID, postID string) error {
	err := s.postRepository.Delete(userID, postID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}

type AddPhotoInput struct {
	UserID    string
	RoomID    string
	PhotoType string
	Caption   *string
	File      *multipart.FileHeader
}

// AddPhoto uploads one room photo and records it. Like the dorm flow the
// object goes to storage first and is deleted again if the insert fails.
func (s *PostService) AddPhoto(ctx context.Context, in AddPhotoInput) (*model.Photo, error) {
	switch in.PhotoType {
	case model.PhotoTypeEmpty, model.PhotoTypeDesigned, model.PhotoTypeDetail:
	default:
		return nil, ErrBadPhotoType
	}

	_, err := s.roomRepository.ByID(in.RoomID)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	if err := validation.ValidateFile(in.File, validation.ImageConstraints); err != nil {
		metrics.PhotoUploadsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	file, err := in.File.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open photo: %w", err)
	}
	defer func() { _ = file.Close() }()

	path := fmt.Sprintf("rooms/%s/%s/%s%s", in.RoomID, in.PhotoType, uuid.New().String(), filepath.Ext(in.File.Filename))
	err = s.storage.Save(ctx, path, file)
	if err != nil {
		metrics.PhotoUploadsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}

	now := time.Now()
	photo := &model.Photo{
		ID:         uuid.New().String(),
		UserID:     in.UserID,
		RoomID:     in.RoomID,
		PhotoType:  in.PhotoType,
		StorageURL: path,
		Caption:    in.Caption,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.photoRepository.Create(photo)
	if err != nil {
		if delErr := s.storage.Delete(ctx, path); delErr != nil {
			slog.Error("failed to delete photo during cleanup", "error", delErr, "path", path)
		}
		metrics.PhotoUploadsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("failed to create photo record: %w", err)
	}

	metrics.PhotoUploadsTotal.WithLabelValues("success").Inc()
	photo.StorageURL = s.storage.URL(path)
	return photo, nil
}

func (s *PostService) Photos(roomID string) ([]*model.Photo, error) {
	photos, err := s.photoRepository.ByRoom(roomID)
	if err != nil {
		return nil, err
	}
	for _, photo := range photos {
		photo.StorageURL = s.storage.URL(photo.StorageURL)
	}
	return photos, nil
}

func (s *PostService) DeletePhoto(ctx context.Context, userID, photoID string) error {
	photo, err := s.photoRepository.ByID(photoID)
	if err != nil {
		if errors.Is(err, repository.ErrPhotoNotFound) {
			return ErrPhotoNotFound
		}
		return err
	}

	err = s.photoRepository.Delete(userID, photoID)
	if err != nil {
		if errors.Is(err, repository.ErrPhotoNotFound) {
			return ErrPhotoNotFound
		}
		return err
	}

	if delErr := s.storage.Delete(ctx, photo.StorageURL); delErr != nil {
		slog.Warn("failed to delete photo from storage", "error", delErr, "path", photo.StorageURL)
	}
	return nil
}
