package ports

import (
	"context"

	"github.com/campuscore/admin-portal/internal/core/domain"
)

// ListUsersFilter carries all query parameters for listing users.
type ListUsersFilter struct {
	Search string      // optional: partial match on name, email or username
	Role   domain.Role // optional: only users holding this role
	Page   int         // 1-based
	Limit  int         // max rows per page (capped by the service)
}

// UserRepository defines persistence operations for user records. Role
// assignments live in their own repository; implementations of FindBy* and
// List are expected to hydrate Roles on the returned users.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByUsername performs an exact-match lookup, used by login.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// EmailInUse and UsernameInUse are uniqueness probes. excludeID, when
	// non-empty, skips the record being updated.
	EmailInUse(ctx context.Context, email, excludeID string) (bool, error)
	UsernameInUse(ctx context.Context, username, excludeID string) (bool, error)
	// List returns a page of users matching filter and the total count.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
	SetActive(ctx context.Context, id string, active bool) error
}
