package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/campuscore/admin-portal/internal/core/domain"
	"github.com/campuscore/admin-portal/internal/core/ports"
)

// AuthService implements credential verification and session lifecycle.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	logger   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, logger: logger}
}

// Login verifies credentials, the active flag, and membership in the role
// the user chose to log in as, then establishes a session. The session
// identifier is regenerated immediately after creation so an identifier
// captured before authentication can never name an authenticated session.
func (s *AuthService) Login(ctx context.Context, input ports.LoginInput) (*ports.LoginResult, error) {
	if !input.Role.IsValid() {
		return nil, domain.ErrRoleMismatch
	}

	user, err := s.users.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Same error as a wrong password: the response must not reveal
			// whether the username exists.
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.Active {
		return nil, domain.ErrAccountInactive
	}

	if !user.HasRole(input.Role) {
		return nil, domain.ErrRoleMismatch
	}

	session, err := s.sessions.Create(ctx, user.ID, input.Role)
	if err != nil {
		return nil, err
	}
	session, err = s.sessions.Regenerate(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", string(input.Role)).Msg("login")

	return &ports.LoginResult{Session: session, User: user}, nil
}

// Logout destroys the session. Deleting an unknown identifier succeeds so a
// stale cookie cannot turn logout into an error page.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.logger.Info().Str("session_id", sessionID).Msg("logout")
	return nil
}

// Resolve loads the session and its user for the request middleware. Any
// miss (unknown identifier, expired session, vanished user) collapses to
// ErrUnauthenticated.
func (s *AuthService) Resolve(ctx context.Context, sessionID string) (*domain.Session, *domain.User, error) {
	if sessionID == "" {
		return nil, nil, domain.ErrUnauthenticated
	}
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, nil, domain.ErrUnauthenticated
		}
		return nil, nil, err
	}
	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrUnauthenticated
		}
		return nil, nil, err
	}
	return session, user, nil
}
