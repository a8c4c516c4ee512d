package domain

import "fmt"

// Role identifies a user's capability class. The set is closed: adding a
// role requires a code change here and in the dashboards that consume it.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleDirector Role = "director"
	RoleDean     Role = "dean"
	RoleFaculty  Role = "faculty"
)

// rolePriority orders roles for display purposes only. Authorization always
// goes through HasRole, never through this ordering.
var rolePriority = []Role{RoleAdmin, RoleDirector, RoleDean, RoleFaculty}

// AllRoles returns the fixed set of valid roles in priority order.
func AllRoles() []Role {
	out := make([]Role, len(rolePriority))
	copy(out, rolePriority)
	return out
}

// ParseRole validates a raw label against the closed role set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleDirector, RoleDean, RoleFaculty:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// IsValid reports whether r belongs to the closed role set.
func (r Role) IsValid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string { return string(r) }
