package ports

import (
	"context"

	"github.com/campuscore/admin-portal/internal/core/domain"
)

// PhotoRepository persists photo metadata. Blob content lives in the
// BlobStore; rows only reference it by object name.
type PhotoRepository interface {
	Create(ctx context.Context, p *domain.Photo) (*domain.Photo, error)
	FindByID(ctx context.Context, id string) (*domain.Photo, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Photo, error)
	FindProfileByUser(ctx context.Context, userID string) (*domain.Photo, error)
	// SetProfile clears the profile flag on every other photo of the owner
	// and sets it on the given photo, preserving the one-profile invariant.
	SetProfile(ctx context.Context, userID, photoID string) error
	Delete(ctx context.Context, id string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}
