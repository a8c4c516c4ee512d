package ports

import (
	"context"

	"github.com/campuscore/admin-portal/internal/core/domain"
)

// SessionStore manages server-side sessions keyed by an opaque identifier.
// Sessions expire via the store's TTL; expiry is not the store caller's job.
type SessionStore interface {
	Create(ctx context.Context, userID string, role domain.Role) (*domain.Session, error)
	Get(ctx context.Context, id string) (*domain.Session, error)
	// Regenerate issues a fresh identifier for an existing session and
	// invalidates the old one (fixation defense). The payload is unchanged.
	Regenerate(ctx context.Context, id string) (*domain.Session, error)
	// Delete is idempotent; deleting an unknown identifier is a no-op.
	Delete(ctx context.Context, id string) error
}
