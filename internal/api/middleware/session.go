package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/campuscore/admin-portal/internal/core/domain"
	"github.com/campuscore/admin-portal/internal/core/ports"
)

// Context keys populated by Session and consumed by RequireRole and the
// handlers.
const (
	ContextKeyUser    = "auth_user"
	ContextKeySession = "auth_session"
)

// Session resolves the session cookie into a user and injects both the
// session and a freshly loaded user into the context. Requests without a
// valid session fail with domain.ErrUnauthenticated.
func Session(cookieName string, auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return domain.ErrUnauthenticated
			}

			session, user, err := auth.Resolve(c.Request().Context(), cookie.Value)
			if err != nil {
				return err
			}

			c.Set(ContextKeySession, session)
			c.Set(ContextKeyUser, user)
			return next(c)
		}
	}
}
