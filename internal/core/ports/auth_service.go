package ports

import (
	"context"

	"github.com/campuscore/admin-portal/internal/core/domain"
)

// LoginInput carries the credentials and the role the user chose to log in
// as. A multi-role user picks one hat per session.
type LoginInput struct {
	Username string
	Password string
	Role     domain.Role
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Session *domain.Session
	User    *domain.User
}

// AuthService implements the login state machine: Anonymous → Authenticated
// on Login, back to Anonymous on Logout.
type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	// Logout invalidates the session. Unknown identifiers are a no-op.
	Logout(ctx context.Context, sessionID string) error
	// Resolve turns a session identifier into the session and a freshly
	// loaded user, or domain.ErrUnauthenticated.
	Resolve(ctx context.Context, sessionID string) (*domain.Session, *domain.User, error)
}
