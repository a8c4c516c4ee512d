package domain

import "time"

// User models an account in the portal. Roles holds every assignment the
// user currently has; a user may hold zero, one, or several roles at once.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	Phone         string    `json:"phone,omitempty"`
	PasswordHash  string    `json:"-"`
	Active        bool      `json:"active"`
	DepartmentID  string    `json:"department_id,omitempty"`
	DesignationID string    `json:"designation_id,omitempty"`
	Roles         []Role    `json:"roles"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HasRole reports whether the user currently holds the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the user holds at least one of the given roles.
func (u *User) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if u.HasRole(r) {
			return true
		}
	}
	return false
}

// PrimaryRole returns the highest-priority role the user holds. It is a
// display convenience for dashboard routing; authorization never depends on
// it. When the user holds only roles outside the known set (a defensive
// case not producible through the admin panel), the first held role is
// returned. ok is false when the user holds no roles at all.
func (u *User) PrimaryRole() (role Role, ok bool) {
	for _, r := range rolePriority {
		if u.HasRole(r) {
			return r, true
		}
	}
	if len(u.Roles) > 0 {
		return u.Roles[0], true
	}
	return "", false
}
