package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/campuscore/admin-portal/internal/core/domain"
	"github.com/campuscore/admin-portal/internal/core/ports"
)

// ReferenceHandler serves the department and designation lookup data used
// to populate the account forms.
type ReferenceHandler struct {
	refs ports.ReferenceRepository
}

func NewReferenceHandler(refs ports.ReferenceRepository) *ReferenceHandler {
	return &ReferenceHandler{refs: refs}
}

type listDepartmentsResponse struct {
	Data []domain.Department `json:"data"`
}

type listDesignationsResponse struct {
	Data []domain.Designation `json:"data"`
}

// Departments lists all departments.
//
// @Summary      List departments
// @Tags         references
// @Produce      json
// @Success      200  {object}  listDepartmentsResponse
// @Router       /admin/panel/departments [get]
func (h *ReferenceHandler) Departments(c echo.Context) error {
	departments, err := h.refs.Departments(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listDepartmentsResponse{Data: departments})
}

// Designations lists all designations.
//
// @Summary      List designations
// @Tags         references
// @Produce      json
// @Success      200  {object}  listDesignationsResponse
// @Router       /admin/panel/designations [get]
func (h *ReferenceHandler) Designations(c echo.Context) error {
	designations, err := h.refs.Designations(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listDesignationsResponse{Data: designations})
}
