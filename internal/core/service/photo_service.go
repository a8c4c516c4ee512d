package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/campuscore/admin-portal/internal/core/domain"
	"github.com/campuscore/admin-portal/internal/core/ports"
)

const (
	maxPhotoBytes  = 5 << 20 // 5 MiB
	photoURLExpiry = 15 * time.Minute
)

var allowedPhotoTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

// PhotoService manages photo blobs and their metadata rows, and keeps the
// one-profile-photo-per-user invariant.
type PhotoService struct {
	photos ports.PhotoRepository
	users  ports.UserRepository
	blobs  ports.BlobStore
	logger zerolog.Logger
}

func NewPhotoService(photos ports.PhotoRepository, users ports.UserRepository, blobs ports.BlobStore, logger zerolog.Logger) *PhotoService {
	return &PhotoService{photos: photos, users: users, blobs: blobs, logger: logger}
}

// Upload stores the file under <userID>/<uuid><ext> and records it. The
// first photo a user receives becomes their profile photo automatically.
func (s *PhotoService) Upload(ctx context.Context, input ports.UploadPhotoInput) (*domain.Photo, error) {
	if _, ok := allowedPhotoTypes[input.ContentType]; !ok {
		return nil, domain.NewValidationError("photo", "file must be a jpeg, png or webp image")
	}
	if input.SizeBytes <= 0 || input.SizeBytes > maxPhotoBytes {
		return nil, domain.NewValidationError("photo", "file must be between 1 byte and 5 MiB")
	}

	if _, err := s.users.FindByID(ctx, input.UserID); err != nil {
		return nil, err
	}

	ext := filepath.Ext(input.OriginalFilename)
	objectName := fmt.Sprintf("%s/%s%s", input.UserID, uuid.NewString(), ext)

	if err := s.blobs.Put(ctx, objectName, input.ContentType, input.Content, input.SizeBytes); err != nil {
		return nil, fmt.Errorf("store photo blob: %w", err)
	}

	existing, err := s.photos.ListByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	photo := &domain.Photo{
		UserID:           input.UserID,
		ObjectName:       objectName,
		OriginalFilename: input.OriginalFilename,
		ContentType:      input.ContentType,
		SizeBytes:        input.SizeBytes,
		IsProfile:        len(existing) == 0,
		UploadedAt:       time.Now().UTC(),
	}

	created, err := s.photos.Create(ctx, photo)
	if err != nil {
		// The row failed; don't leave an unreferenced blob behind.
		if rmErr := s.blobs.Remove(ctx, objectName); rmErr != nil {
			s.logger.Error().Err(rmErr).Str("object", objectName).Msg("orphaned blob cleanup failed")
		}
		return nil, err
	}

	s.logger.Info().Str("user_id", input.UserID).Str("photo_id", created.ID).Msg("photo uploaded")
	return created, nil
}

// List returns the user's photos with short-lived display URLs.
func (s *PhotoService) List(ctx context.Context, userID string) ([]ports.PhotoView, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	photos, err := s.photos.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]ports.PhotoView, 0, len(photos))
	for _, p := range photos {
		url, err := s.blobs.PresignedURL(ctx, p.ObjectName, photoURLExpiry)
		if err != nil {
			return nil, fmt.Errorf("presign %s: %w", p.ObjectName, err)
		}
		views = append(views, ports.PhotoView{Photo: p, URL: url})
	}
	return views, nil
}

// SetProfile makes the given photo the user's profile photo, clearing the
// flag everywhere else.
func (s *PhotoService) SetProfile(ctx context.Context, userID, photoID string) error {
	photo, err := s.photos.FindByID(ctx, photoID)
	if err != nil {
		return err
	}
	if photo.UserID != userID {
		return domain.ErrPhotoNotFound
	}
	return s.photos.SetProfile(ctx, userID, photoID)
}

// Delete removes the blob and its row. Deleting the current profile photo
// leaves the user without one; no sibling gets promoted implicitly.
func (s *PhotoService) Delete(ctx context.Context, userID, photoID string) error {
	photo, err := s.photos.FindByID(ctx, photoID)
	if err != nil {
		return err
	}
	if photo.UserID != userID {
		return domain.ErrPhotoNotFound
	}

	if err := s.blobs.Remove(ctx, photo.ObjectName); err != nil {
		return fmt.Errorf("remove photo blob: %w", err)
	}
	if err := s.photos.Delete(ctx, photoID); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", userID).Str("photo_id", photoID).Msg("photo deleted")
	return nil
}
