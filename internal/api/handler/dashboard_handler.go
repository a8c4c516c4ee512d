package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuscore/admin-portal/internal/core/domain"
)

// DashboardHandler serves the per-role dashboard payloads. Each dashboard
// route is registered behind the Session middleware plus RequireRole for
// its role, so reaching the handler already proves membership.
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

type dashboardResponse struct {
	Role        string       `json:"role"`
	SessionRole string       `json:"session_role"`
	User        userResponse `json:"user"`
}

// For returns the handler for one role's dashboard.
//
// @Summary      Role dashboard
// @Tags         dashboards
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /dashboard/{role} [get]
func (h *DashboardHandler) For(role domain.Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := currentUser(c)
		if err != nil {
			return err
		}
		session, err := currentSession(c)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, dashboardResponse{
			Role:        string(role),
			SessionRole: string(session.Role),
			User:        toUserResponse(user),
		})
	}
}
