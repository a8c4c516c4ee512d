package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/campuscore/admin-portal/internal/core/domain"
)

// RequireRole enforces role-based access control. The check runs against
// the roles currently assigned to the user, not against the role selected
// at login: a user holding admin who logged in as dean still passes an
// admin gate. The login-time selection only routes dashboards.
func RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(ContextKeyUser).(*domain.User)
			if !ok {
				return domain.ErrUnauthenticated
			}
			if !user.HasAnyRole(roles...) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
