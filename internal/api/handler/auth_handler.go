package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campuscore/admin-portal/internal/api/metrics"
	"github.com/campuscore/admin-portal/internal/core/domain"
	"github.com/campuscore/admin-portal/internal/core/ports"
)

// AuthHandler handles the login selection, login and logout endpoints.
type AuthHandler struct {
	auth       ports.AuthService
	cookieName string
	cookieTTL  time.Duration
	secure     bool
}

func NewAuthHandler(auth ports.AuthService, cookieName string, cookieTTL time.Duration, secure bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookieName: cookieName, cookieTTL: cookieTTL, secure: secure}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=admin director dean faculty"`
}

type loginResponse struct {
	User      *domain.User `json:"user"`
	Role      string       `json:"role"`
	Dashboard string       `json:"dashboard"`
}

type rolesResponse struct {
	Roles []string `json:"roles"`
}

// Roles returns the fixed role labels for the login selection page.
//
// @Summary      List selectable login roles
// @Tags         auth
// @Produce      json
// @Success      200  {object}  rolesResponse
// @Router       /login/roles [get]
func (h *AuthHandler) Roles(c echo.Context) error {
	all := domain.AllRoles()
	labels := make([]string, 0, len(all))
	for _, r := range all {
		labels = append(labels, string(r))
	}
	return c.JSON(http.StatusOK, rolesResponse{Roles: labels})
}

// Login authenticates a user as the selected role and sets the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials and selected role"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.auth.Login(c.Request().Context(), ports.LoginInput{
		Username: req.Username,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		metrics.LoginFailuresTotal.WithLabelValues(loginFailureReason(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues(req.Role).Inc()
	c.SetCookie(h.sessionCookie(result.Session.ID, h.cookieTTL))

	return c.JSON(http.StatusOK, loginResponse{
		User:      result.User,
		Role:      string(result.Session.Role),
		Dashboard: "/dashboard/" + string(result.Session.Role),
	})
}

// Logout invalidates the session and clears the cookie.
//
// @Summary      Logout
// @Tags         auth
// @Success      204  "session destroyed"
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookieName); err == nil {
		if err := h.auth.Logout(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
	}
	c.SetCookie(h.sessionCookie("", -time.Hour))
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) sessionCookie(value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func loginFailureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrAccountInactive):
		return "account_inactive"
	case errors.Is(err, domain.ErrRoleMismatch):
		return "role_mismatch"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	default:
		return "internal"
	}
}
