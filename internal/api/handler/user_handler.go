package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/campuscore/admin-portal/internal/api/metrics"
	"github.com/campuscore/admin-portal/internal/core/domain"
	"github.com/campuscore/admin-portal/internal/core/ports"
)

// UserHandler handles the admin-panel account management endpoints.
type UserHandler struct {
	accounts ports.AccountService
}

func NewUserHandler(accounts ports.AccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

// List returns a page of users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Param        page    query  int     false  "1-based page"
// @Param        limit   query  int     false  "rows per page (max 100)"
// @Param        search  query  string  false  "partial match on name, email or username"
// @Param        role    query  string  false  "only users holding this role"
// @Success      200  {object}  listUsersResponse
// @Router       /admin/panel/users [get]
func (h *UserHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.accounts.List(c.Request().Context(), ports.ListUsersInput{
		Search: c.QueryParam("search"),
		Role:   domain.Role(c.QueryParam("role")),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	data := make([]userResponse, 0, len(result.Items))
	for _, u := range result.Items {
		data = append(data, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, listUsersResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Create creates a new user account with its role assignments.
//
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "Account fields and roles"
// @Success      201   {object}  userResponse
// @Failure      422   {object}  map[string]any
// @Router       /admin/panel/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.accounts.Create(c.Request().Context(), ports.CreateUserInput{
		Name:          req.Name,
		Email:         req.Email,
		Username:      req.Username,
		Phone:         req.Phone,
		Password:      req.Password,
		Active:        req.Active,
		DepartmentID:  req.DepartmentID,
		DesignationID: req.DesignationID,
		Roles:         parseRoles(req.Roles),
	})
	if err != nil {
		return err
	}

	metrics.UsersCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Get returns a single user.
//
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Param        id  path  string  true  "user id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  map[string]string
// @Router       /admin/panel/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.accounts.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Update applies field changes and reconciles the role set.
//
// @Summary      Update user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "user id"
// @Param        body  body  updateUserRequest  true  "Account fields and roles"
// @Success      200   {object}  userResponse
// @Failure      422   {object}  map[string]any
// @Router       /admin/panel/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.accounts.Update(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Name:          req.Name,
		Email:         req.Email,
		Username:      req.Username,
		Phone:         req.Phone,
		Password:      req.Password,
		Active:        req.Active,
		DepartmentID:  req.DepartmentID,
		DesignationID: req.DesignationID,
		Roles:         parseRoles(req.Roles),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete permanently removes a user, their photos and role assignments.
//
// @Summary      Delete user
// @Tags         users
// @Param        id  path  string  true  "user id"
// @Success      204  "user deleted"
// @Failure      409  {object}  map[string]string
// @Router       /admin/panel/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	acting, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.accounts.Delete(c.Request().Context(), acting.ID, c.Param("id")); err != nil {
		return err
	}
	metrics.UsersDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}

// ToggleActive flips the target user's active flag.
//
// @Summary      Toggle active flag
// @Tags         users
// @Produce      json
// @Param        id  path  string  true  "user id"
// @Success      200  {object}  userResponse
// @Failure      409  {object}  map[string]string
// @Router       /admin/panel/users/{id}/toggle-active [patch]
func (h *UserHandler) ToggleActive(c echo.Context) error {
	acting, err := currentUser(c)
	if err != nil {
		return err
	}
	user, err := h.accounts.ToggleActive(c.Request().Context(), acting.ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
