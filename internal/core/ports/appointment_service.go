package ports

import (
	"context"
	"time"

	"github.com/well2nest/hospital-system/internal/core/domain"
)

// CreateAppointmentInput carries all data needed to book an appointment.
type CreateAppointmentInput struct {
	PatientID       string
	DoctorID        string
	AppointmentDate time.Time
	Reason          string
	Notes           string
}

// AppointmentService defines use-case operations for appointments. List is
// owner-scoped: doctors and patients only see their own rows, admin sees all.
type AppointmentService interface {
	List(ctx context.Context, sess domain.Session) ([]domain.Appointment, error)
	// Create books the appointment and then raises its consultation invoice.
	// The two writes are not atomic: if the invoice insert fails the
	// appointment stays committed and the error is a
	// *domain.PartialWriteFailure carrying the appointment id.
	Create(ctx context.Context, sess domain.Session, input CreateAppointmentInput) (*domain.Appointment, error)
	UpdateStatus(ctx context.Context, sess domain.Session, id, status string) error
}
