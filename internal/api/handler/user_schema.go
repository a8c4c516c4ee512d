package handler

import (
	"time"

	"github.com/campuscore/admin-portal/internal/core/domain"
)

// --- Request / Response types ---

type createUserRequest struct {
	Name                 string   `json:"name"                  validate:"required,max=255"`
	Email                string   `json:"email"                 validate:"required,email"`
	Username             string   `json:"username"              validate:"required,min=3,max=64"`
	Phone                string   `json:"phone"                 validate:"omitempty,max=20"`
	Password             string   `json:"password"              validate:"required,min=8"`
	PasswordConfirmation string   `json:"password_confirmation" validate:"eqfield=Password"`
	Roles                []string `json:"roles"                 validate:"required,min=1,dive,oneof=admin director dean faculty"`
	Active               bool     `json:"active"`
	DepartmentID         string   `json:"department_id"`
	DesignationID        string   `json:"designation_id"`
}

// updateUserRequest mirrors createUserRequest except that an empty password
// keeps the stored one.
type updateUserRequest struct {
	Name                 string   `json:"name"                  validate:"required,max=255"`
	Email                string   `json:"email"                 validate:"required,email"`
	Username             string   `json:"username"              validate:"required,min=3,max=64"`
	Phone                string   `json:"phone"                 validate:"omitempty,max=20"`
	Password             string   `json:"password"              validate:"omitempty,min=8"`
	PasswordConfirmation string   `json:"password_confirmation" validate:"eqfield=Password"`
	Roles                []string `json:"roles"                 validate:"required,min=1,dive,oneof=admin director dean faculty"`
	Active               bool     `json:"active"`
	DepartmentID         string   `json:"department_id"`
	DesignationID        string   `json:"designation_id"`
}

type userResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	Phone         string    `json:"phone,omitempty"`
	Active        bool      `json:"active"`
	DepartmentID  string    `json:"department_id,omitempty"`
	DesignationID string    `json:"designation_id,omitempty"`
	Roles         []string  `json:"roles"`
	PrimaryRole   string    `json:"primary_role,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listUsersResponse struct {
	Data       []userResponse     `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

func toUserResponse(u *domain.User) userResponse {
	roles := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		roles = append(roles, string(r))
	}
	resp := userResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Username:      u.Username,
		Phone:         u.Phone,
		Active:        u.Active,
		DepartmentID:  u.DepartmentID,
		DesignationID: u.DesignationID,
		Roles:         roles,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
	if primary, ok := u.PrimaryRole(); ok {
		resp.PrimaryRole = string(primary)
	}
	return resp
}

func parseRoles(labels []string) []domain.Role {
	roles := make([]domain.Role, 0, len(labels))
	for _, l := range labels {
		roles = append(roles, domain.Role(l))
	}
	return roles
}
