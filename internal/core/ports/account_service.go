package ports

import (
	"context"

	"github.com/campuscore/admin-portal/internal/core/domain"
)

// CreateUserInput carries all data needed to create a user account.
// Password confirmation is checked at the transport schema level; the
// service receives the agreed password once.
type CreateUserInput struct {
	Name          string
	Email         string
	Username      string
	Phone         string
	Password      string
	Active        bool
	DepartmentID  string
	DesignationID string
	Roles         []domain.Role
}

// UpdateUserInput mirrors CreateUserInput except that an empty Password
// keeps the stored hash unchanged.
type UpdateUserInput struct {
	Name          string
	Email         string
	Username      string
	Phone         string
	Password      string
	Active        bool
	DepartmentID  string
	DesignationID string
	Roles         []domain.Role
}

// ListUsersInput carries the parameters of the admin user listing.
type ListUsersInput struct {
	Search string
	Role   domain.Role
	Page   int
	Limit  int
}

// ListUsersResult is returned by List.
type ListUsersResult struct {
	Items      []*domain.User
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// AccountService implements the admin-panel account operations.
type AccountService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, input ListUsersInput) (*ListUsersResult, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	// Delete permanently removes the target user, their role assignments and
	// their photos. Fails with domain.ErrSelfDeletion when acting on oneself.
	Delete(ctx context.Context, actingUserID, targetID string) error
	// ToggleActive flips the active flag. Fails with domain.ErrSelfToggle
	// when acting on oneself. Existing sessions of the target stay valid.
	ToggleActive(ctx context.Context, actingUserID, targetID string) (*domain.User, error)
}
