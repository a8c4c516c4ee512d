package ports

import (
	"context"

	"github.com/campuscore/admin-portal/internal/core/domain"
)

// RoleRepository persists role assignments as explicit (user_id, role)
// records addressed by plain identifiers. A (user_id, role) pair is unique.
type RoleRepository interface {
	GetRolesForUser(ctx context.Context, userID string) ([]domain.Role, error)
	// AddRoleAssignment is idempotent: assigning a role the user already
	// holds is a no-op.
	AddRoleAssignment(ctx context.Context, userID string, role domain.Role) error
	// DeleteRoleAssignment is idempotent: removing a role the user does not
	// hold is a no-op.
	DeleteRoleAssignment(ctx context.Context, userID string, role domain.Role) error
	DeleteAllForUser(ctx context.Context, userID string) error
}
