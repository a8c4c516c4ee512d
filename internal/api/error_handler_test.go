package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/campuscore/admin-portal/internal/core/domain"
)

func invoke(t *testing.T, err error) (*httptest.ResponseRecorder, errorResponse) {
	t.Helper()
	e := echo.New()
	handler := NewHTTPErrorHandler(zerolog.Nop())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(err, c)

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return rec, resp
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized},
		{"inactive", domain.ErrAccountInactive, http.StatusForbidden},
		{"role mismatch", domain.ErrRoleMismatch, http.StatusForbidden},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"self deletion", domain.ErrSelfDeletion, http.StatusConflict},
		{"self toggle", domain.ErrSelfToggle, http.StatusConflict},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"photo not found", domain.ErrPhotoNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, resp := invoke(t, tc.err)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if resp.Error == "" {
				t.Fatalf("expected an error message")
			}
		})
	}
}

func TestHTTPErrorHandler_ValidationError(t *testing.T) {
	rec, resp := invoke(t, &domain.ValidationError{Fields: map[string]string{
		"email": "email is already in use",
	}})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if resp.Fields["email"] != "email is already in use" {
		t.Fatalf("field message lost: %v", resp.Fields)
	}
}

func TestHTTPErrorHandler_EchoError(t *testing.T) {
	rec, resp := invoke(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp.Error != "invalid payload" {
		t.Fatalf("unexpected message %q", resp.Error)
	}
}

func TestHTTPErrorHandler_UnexpectedError(t *testing.T) {
	rec, resp := invoke(t, errors.New("mongo timeout on users"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	// Internal details must never reach the client.
	if resp.Error != "internal server error" {
		t.Fatalf("leaked internal message: %q", resp.Error)
	}
}
