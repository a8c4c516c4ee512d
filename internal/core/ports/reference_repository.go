package ports

import (
	"context"

	"github.com/campuscore/admin-portal/internal/core/domain"
)

// ReferenceRepository serves the department and designation lookup tables
// used to populate account forms and validate references on submission.
type ReferenceRepository interface {
	Departments(ctx context.Context) ([]domain.Department, error)
	Designations(ctx context.Context) ([]domain.Designation, error)
	DepartmentExists(ctx context.Context, id string) (bool, error)
	DesignationExists(ctx context.Context, id string) (bool, error)
}
