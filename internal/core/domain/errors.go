package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Login-time failures. ErrInvalidCredentials deliberately covers both an
// unknown username and a wrong password so the response never reveals which
// half was wrong.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrRoleMismatch       = errors.New("user does not hold the selected role")
)

// Route-gating failures.
var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("access forbidden")
)

// Self-protection failures on the admin panel.
var (
	ErrSelfDeletion = errors.New("cannot delete own account")
	ErrSelfToggle   = errors.New("cannot change own active status")
)

// Lookup failures.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrPhotoNotFound       = errors.New("photo not found")
	ErrSessionNotFound     = errors.New("session not found")
	ErrDepartmentNotFound  = errors.New("department not found")
	ErrDesignationNotFound = errors.New("designation not found")
	ErrUnknownRole         = errors.New("unknown role")
)

// ValidationError carries per-field messages so the transport layer can
// attach each message to the originating form field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}
