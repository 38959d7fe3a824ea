package ports

import (
	"context"
	"time"

	"github.com/well2nest/hospital-system/internal/core/domain"
)

// CreateScheduleInput carries a new availability window for a doctor.
type CreateScheduleInput struct {
	DoctorID     string
	ScheduleDate time.Time
	StartTime    string
	EndTime      string
	IsAvailable  bool
}

// ScheduleService defines use-case operations for doctor schedules. Lists
// are doctor-scoped for the doctor role.
type ScheduleService interface {
	List(ctx context.Context, sess domain.Session) ([]domain.ScheduleEntry, error)
	Create(ctx context.Context, sess domain.Session, input CreateScheduleInput) (*domain.ScheduleEntry, error)
}
