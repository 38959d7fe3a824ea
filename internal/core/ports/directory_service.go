package ports

import (
	"context"

	"github.com/well2nest/hospital-system/internal/core/domain"
)

// CreateDepartmentInput carries a new hospital department.
type CreateDepartmentInput struct {
	Name         string
	Description  string
	HeadDoctorID string
}

// DirectoryService exposes the reference listings pages join against:
// doctors, patients, departments.
type DirectoryService interface {
	Doctors(ctx context.Context, sess domain.Session) ([]domain.Identity, error)
	Patients(ctx context.Context, sess domain.Session) ([]domain.Identity, error)
	Departments(ctx context.Context, sess domain.Session) ([]domain.Department, error)
	CreateDepartment(ctx context.Context, sess domain.Session, input CreateDepartmentInput) (*domain.Department, error)
}
