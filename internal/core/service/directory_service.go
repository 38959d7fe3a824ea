package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/well2nest/hospital-system/internal/core/domain"
	"github.com/well2nest/hospital-system/internal/core/ports"
)

// DirectoryService serves the reference listings other pages join against.
type DirectoryService struct {
	gateway ports.Gateway
	logger  zerolog.Logger
}

func NewDirectoryService(gateway ports.Gateway, logger zerolog.Logger) *DirectoryService {
	return &DirectoryService{gateway: gateway, logger: logger}
}

func (s *DirectoryService) Doctors(ctx context.Context, sess domain.Session) ([]domain.Identity, error) {
	if sess.IsAnonymous() {
		return nil, domain.ErrUnauthorized
	}
	return s.people(ctx, domain.CollectionDoctors, domain.RoleDoctor)
}

// Patients lists the patient directory. Restricted to staff roles: patients
// have no business browsing each other.
func (s *DirectoryService) Patients(ctx context.Context, sess domain.Session) ([]domain.Identity, error) {
	if sess.IsAnonymous() || sess.Role == domain.RolePatient {
		return nil, domain.ErrUnauthorized
	}
	return s.people(ctx, domain.CollectionPatients, domain.RolePatient)
}

func (s *DirectoryService) Departments(ctx context.Context, sess domain.Session) ([]domain.Department, error) {
	if sess.IsAnonymous() {
		return nil, domain.ErrUnauthorized
	}

	rows, err := s.gateway.Select(ctx, domain.CollectionDepartments, ports.Query{
		OrderBy: []ports.Order{{Column: "name"}},
	})
	if err != nil {
		return nil, err
	}

	departments := make([]domain.Department, 0, len(rows))
	for _, r := range rows {
		departments = append(departments, domain.DepartmentFromRow(r))
	}
	return departments, nil
}

func (s *DirectoryService) CreateDepartment(ctx context.Context, sess domain.Session, input ports.CreateDepartmentInput) (*domain.Department, error) {
	if sess.IsAnonymous() || sess.Role != domain.RoleAdmin {
		return nil, domain.ErrUnauthorized
	}

	row, err := s.gateway.Insert(ctx, domain.CollectionDepartments, domain.Row{
		"name":           input.Name,
		"description":    input.Description,
		"head_doctor_id": input.HeadDoctorID,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("department insert failed")
		return nil, err
	}

	department := domain.DepartmentFromRow(row)
	s.logger.Info().Str("department_id", department.ID).Str("name", department.Name).Msg("department created")
	return &department, nil
}

func (s *DirectoryService) people(ctx context.Context, collection string, role domain.Role) ([]domain.Identity, error) {
	rows, err := s.gateway.Select(ctx, collection, ports.Query{
		OrderBy: []ports.Order{{Column: "first_name"}},
	})
	if err != nil {
		return nil, err
	}

	identities := make([]domain.Identity, 0, len(rows))
	for _, r := range rows {
		identities = append(identities, domain.IdentityFromRow(r, role))
	}
	return identities, nil
}
