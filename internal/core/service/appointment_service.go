package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/well2nest/hospital-system/internal/core/domain"
	"github.com/well2nest/hospital-system/internal/core/ports"
)

const defaultConsultationFee = 100

type AppointmentService struct {
	gateway ports.Gateway
	logger  zerolog.Logger
	now     func() time.Time
}

func NewAppointmentService(gateway ports.Gateway, logger zerolog.Logger) *AppointmentService {
	return &AppointmentService{gateway: gateway, logger: logger, now: time.Now}
}

// List returns appointments visible to the session, newest first, with
// patient and doctor display names stitched in.
func (s *AppointmentService) List(ctx context.Context, sess domain.Session) ([]domain.Appointment, error) {
	if sess.IsAnonymous() {
		return nil, domain.ErrUnauthorized
	}

	rows, err := s.gateway.Select(ctx, domain.CollectionAppointments, ports.Query{
		Filters: ScopeFilters(sess, domain.CollectionAppointments),
		OrderBy: []ports.Order{{Column: "appointment_date", Descending: true}},
	})
	if err != nil {
		return nil, err
	}

	appointments := make([]domain.Appointment, 0, len(rows))
	for _, r := range rows {
		appointments = append(appointments, domain.AppointmentFromRow(r))
	}
	s.attachNames(ctx, appointments)
	return appointments, nil
}

// Create books the appointment and then raises its invoice. The invoice
// insert happening after the appointment committed means a failing second
// step leaves the appointment behind: that partial state is reported as
// such, never hidden behind a clean error.
func (s *AppointmentService) Create(ctx context.Context, sess domain.Session, input ports.CreateAppointmentInput) (*domain.Appointment, error) {
	if sess.IsAnonymous() {
		return nil, domain.ErrUnauthorized
	}

	row, err := s.gateway.Insert(ctx, domain.CollectionAppointments, domain.Row{
		"patient_id":       input.PatientID,
		"doctor_id":        input.DoctorID,
		"appointment_date": input.AppointmentDate.UTC(),
		"reason":           input.Reason,
		"notes":            input.Notes,
		"status":           domain.AppointmentScheduled,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("appointment insert failed")
		return nil, err
	}
	appointment := domain.AppointmentFromRow(row)

	if err := s.createInvoice(ctx, appointment.ID, input.PatientID, input.DoctorID); err != nil {
		s.logger.Error().Err(err).Str("appointment_id", appointment.ID).Msg("invoice creation failed after appointment commit")
		return &appointment, &domain.PartialWriteFailure{
			Operation: "create appointment invoice",
			CreatedID: appointment.ID,
			Err:       err,
		}
	}

	s.logger.Info().Str("appointment_id", appointment.ID).Str("doctor_id", input.DoctorID).Msg("appointment created")
	return &appointment, nil
}

// UpdateStatus moves an appointment to a new status (completed, cancelled,
// no_show). Non-admin callers can only touch their own rows: the owner
// filter rides along with the id match.
func (s *AppointmentService) UpdateStatus(ctx context.Context, sess domain.Session, id, status string) error {
	if sess.IsAnonymous() {
		return domain.ErrUnauthorized
	}
	filters := ScopeFilters(sess, domain.CollectionAppointments, ports.Eq("id", id))
	return s.gateway.Update(ctx, domain.CollectionAppointments, filters, domain.Row{"status": status})
}

// createInvoice raises the consultation invoice for a freshly booked
// appointment, using the doctor's fee or the default when it can't be read.
func (s *AppointmentService) createInvoice(ctx context.Context, appointmentID, patientID, doctorID string) error {
	fee := float64(defaultConsultationFee)
	rows, err := s.gateway.Select(ctx, domain.CollectionDoctors, ports.Query{
		Filters: []ports.Filter{ports.Eq("id", doctorID)},
		Limit:   1,
	})
	if err == nil && len(rows) == 1 {
		if f := rows[0].Float("consultation_fee"); f > 0 {
			fee = f
		}
	}

	now := s.now().UTC()
	_, err = s.gateway.Insert(ctx, domain.CollectionInvoices, domain.Row{
		"patient_id":     patientID,
		"appointment_id": appointmentID,
		"invoice_number": invoiceNumber(now),
		"total_amount":   fee,
		"status":         domain.InvoicePending,
		"due_date":       now.AddDate(0, 0, 30),
		"created_at":     now,
	})
	return err
}

// invoiceNumber formats INV-<unix ms>-<short suffix>.
func invoiceNumber(at time.Time) string {
	return fmt.Sprintf("INV-%d-%s", at.UnixMilli(), uuid.NewString()[:8])
}

// attachNames resolves patient and doctor display fields for a batch of
// appointments with one lookup per referenced collection.
func (s *AppointmentService) attachNames(ctx context.Context, appointments []domain.Appointment) {
	patients := s.nameIndex(ctx, domain.CollectionPatients)
	doctors := s.nameIndex(ctx, domain.CollectionDoctors)
	for i := range appointments {
		if p, ok := patients[appointments[i].PatientID]; ok {
			appointments[i].PatientName = p.DisplayName()
		}
		if d, ok := doctors[appointments[i].DoctorID]; ok {
			appointments[i].DoctorName = d.DisplayName()
			appointments[i].Specialization = d.Specialization
		}
	}
}

// nameIndex loads id → identity for a people collection. Display-only data:
// a failed load degrades to an empty index and is just logged.
func (s *AppointmentService) nameIndex(ctx context.Context, collection string) map[string]domain.Identity {
	role := domain.RolePatient
	if collection == domain.CollectionDoctors {
		role = domain.RoleDoctor
	}
	rows, err := s.gateway.Select(ctx, collection, ports.Query{
		OrderBy: []ports.Order{{Column: "first_name"}},
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("collection", collection).Msg("display name lookup failed")
		return nil
	}
	index := make(map[string]domain.Identity, len(rows))
	for _, r := range rows {
		id := domain.IdentityFromRow(r, role)
		index[id.ID] = id
	}
	return index
}
