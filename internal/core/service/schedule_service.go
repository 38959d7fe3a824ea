package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/well2nest/hospital-system/internal/core/domain"
	"github.com/well2nest/hospital-system/internal/core/ports"
)

type ScheduleService struct {
	gateway ports.Gateway
	logger  zerolog.Logger
}

func NewScheduleService(gateway ports.Gateway, logger zerolog.Logger) *ScheduleService {
	return &ScheduleService{gateway: gateway, logger: logger}
}

// List returns schedule entries visible to the session ordered by date then
// start time. Doctors see their own; admin sees everyone's.
func (s *ScheduleService) List(ctx context.Context, sess domain.Session) ([]domain.ScheduleEntry, error) {
	if sess.IsAnonymous() {
		return nil, domain.ErrUnauthorized
	}

	rows, err := s.gateway.Select(ctx, domain.CollectionDoctorSchedules, ports.Query{
		Filters: ScopeFilters(sess, domain.CollectionDoctorSchedules),
		OrderBy: []ports.Order{{Column: "schedule_date"}, {Column: "start_time"}},
	})
	if err != nil {
		return nil, err
	}

	entries := make([]domain.ScheduleEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, domain.ScheduleEntryFromRow(r))
	}
	return entries, nil
}

// Create adds an availability window. A doctor always schedules themself;
// admin may schedule any doctor.
func (s *ScheduleService) Create(ctx context.Context, sess domain.Session, input ports.CreateScheduleInput) (*domain.ScheduleEntry, error) {
	if sess.IsAnonymous() || (sess.Role != domain.RoleDoctor && sess.Role != domain.RoleAdmin) {
		return nil, domain.ErrUnauthorized
	}

	doctorID := input.DoctorID
	if sess.Role == domain.RoleDoctor {
		doctorID = sess.UserID()
	}

	row, err := s.gateway.Insert(ctx, domain.CollectionDoctorSchedules, domain.Row{
		"doctor_id":     doctorID,
		"schedule_date": input.ScheduleDate.UTC(),
		"start_time":    input.StartTime,
		"end_time":      input.EndTime,
		"is_available":  input.IsAvailable,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("schedule insert failed")
		return nil, err
	}

	entry := domain.ScheduleEntryFromRow(row)
	s.logger.Info().Str("schedule_id", entry.ID).Str("doctor_id", doctorID).Msg("schedule entry created")
	return &entry, nil
}
