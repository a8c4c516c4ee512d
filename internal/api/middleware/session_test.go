package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/campuscore/admin-portal/internal/core/domain"
	"github.com/campuscore/admin-portal/internal/core/ports"
)

type stubAuthService struct {
	resolveFn func(ctx context.Context, sessionID string) (*domain.Session, *domain.User, error)
}

func (s *stubAuthService) Login(context.Context, ports.LoginInput) (*ports.LoginResult, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuthService) Logout(context.Context, string) error {
	return errors.New("not implemented")
}

func (s *stubAuthService) Resolve(ctx context.Context, sessionID string) (*domain.Session, *domain.User, error) {
	return s.resolveFn(ctx, sessionID)
}

func TestSession_InjectsUserAndSession(t *testing.T) {
	auth := &stubAuthService{
		resolveFn: func(_ context.Context, sessionID string) (*domain.Session, *domain.User, error) {
			if sessionID != "sess-1" {
				t.Fatalf("expected cookie value sess-1, got %q", sessionID)
			}
			return &domain.Session{ID: "sess-1", UserID: "user-1", Role: domain.RoleDean},
				&domain.User{ID: "user-1", Roles: []domain.Role{domain.RoleDean}},
				nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "portal_session", Value: "sess-1"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session("portal_session", auth)
	handler := mw(func(c echo.Context) error {
		user, ok := c.Get(ContextKeyUser).(*domain.User)
		if !ok || user.ID != "user-1" {
			t.Fatalf("user not injected")
		}
		session, ok := c.Get(ContextKeySession).(*domain.Session)
		if !ok || session.ID != "sess-1" {
			t.Fatalf("session not injected")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestSession_MissingCookie(t *testing.T) {
	auth := &stubAuthService{
		resolveFn: func(context.Context, string) (*domain.Session, *domain.User, error) {
			t.Fatalf("Resolve must not be called without a cookie")
			return nil, nil, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session("portal_session", auth)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestSession_StaleCookie(t *testing.T) {
	auth := &stubAuthService{
		resolveFn: func(context.Context, string) (*domain.Session, *domain.User, error) {
			return nil, nil, domain.ErrUnauthenticated
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "portal_session", Value: "expired"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session("portal_session", auth)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
