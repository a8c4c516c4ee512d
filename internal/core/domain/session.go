package domain

import "time"

// Session binds an opaque identifier to an authenticated user. Role is the
// role the user selected at login time; it is immutable for the lifetime of
// the session and drives dashboard routing only. Route gating re-checks
// role membership on the freshly loaded user instead.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
