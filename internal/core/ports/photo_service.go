package ports

import (
	"context"
	"io"

	"github.com/campuscore/admin-portal/internal/core/domain"
)

// UploadPhotoInput carries an uploaded file and its metadata.
type UploadPhotoInput struct {
	UserID           string
	OriginalFilename string
	ContentType      string
	SizeBytes        int64
	Content          io.Reader
}

// PhotoView pairs a photo record with a time-limited URL for display.
type PhotoView struct {
	Photo *domain.Photo
	URL   string
}

// PhotoService manages a user's photos and the single profile-photo flag.
type PhotoService interface {
	Upload(ctx context.Context, input UploadPhotoInput) (*domain.Photo, error)
	List(ctx context.Context, userID string) ([]PhotoView, error)
	SetProfile(ctx context.Context, userID, photoID string) error
	Delete(ctx context.Context, userID, photoID string) error
}
