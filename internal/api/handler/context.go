package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/campuscore/admin-portal/internal/api/middleware"
	"github.com/campuscore/admin-portal/internal/core/domain"
)

// currentUser extracts the authenticated user injected by the Session
// middleware. Its presence proves the middleware ran; a miss means the
// route was wired without it.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.ContextKeyUser).(*domain.User)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

// currentSession extracts the session injected by the Session middleware.
func currentSession(c echo.Context) (*domain.Session, error) {
	session, ok := c.Get(middleware.ContextKeySession).(*domain.Session)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return session, nil
}
