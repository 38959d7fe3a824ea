package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/well2nest/hospital-system/internal/core/domain"
	"github.com/well2nest/hospital-system/internal/core/ports"
)

type PrescriptionService struct {
	gateway ports.Gateway
	logger  zerolog.Logger
	now     func() time.Time
}

func NewPrescriptionService(gateway ports.Gateway, logger zerolog.Logger) *PrescriptionService {
	return &PrescriptionService{gateway: gateway, logger: logger, now: time.Now}
}

// List returns prescriptions visible to the session, newest first.
// Doctors and patients see their own; pharmacists see the shared queue.
func (s *PrescriptionService) List(ctx context.Context, sess domain.Session) ([]domain.Prescription, error) {
	if sess.IsAnonymous() {
		return nil, domain.ErrUnauthorized
	}

	var filters []ports.Filter
	switch sess.Role {
	case domain.RoleDoctor, domain.RolePatient:
		filters = ScopeFilters(sess, domain.CollectionPrescriptions)
	}

	rows, err := s.gateway.Select(ctx, domain.CollectionPrescriptions, ports.Query{
		Filters: filters,
		OrderBy: []ports.Order{{Column: "prescribed_date", Descending: true}},
	})
	if err != nil {
		return nil, err
	}

	prescriptions := make([]domain.Prescription, 0, len(rows))
	for _, r := range rows {
		prescriptions = append(prescriptions, domain.PrescriptionFromRow(r))
	}
	return prescriptions, nil
}

// Create writes a new prescription. Only doctors (and admin) may prescribe;
// a doctor always prescribes as themself regardless of the input's DoctorID.
func (s *PrescriptionService) Create(ctx context.Context, sess domain.Session, input ports.CreatePrescriptionInput) (*domain.Prescription, error) {
	if sess.IsAnonymous() || (sess.Role != domain.RoleDoctor && sess.Role != domain.RoleAdmin) {
		return nil, domain.ErrUnauthorized
	}

	doctorID := input.DoctorID
	if sess.Role == domain.RoleDoctor {
		doctorID = sess.UserID()
	}

	medications := make([]any, 0, len(input.Medications))
	for _, m := range input.Medications {
		medications = append(medications, map[string]any{
			"id":       m.InventoryID,
			"name":     m.Name,
			"quantity": m.Quantity,
		})
	}

	row, err := s.gateway.Insert(ctx, domain.CollectionPrescriptions, domain.Row{
		"patient_id":      input.PatientID,
		"doctor_id":       doctorID,
		"medications":     medications,
		"notes":           input.Notes,
		"status":          domain.PrescriptionPending,
		"prescribed_date": s.now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("prescription insert failed")
		return nil, err
	}

	p := domain.PrescriptionFromRow(row)
	s.logger.Info().Str("prescription_id", p.ID).Str("doctor_id", doctorID).Msg("prescription created")
	return &p, nil
}

// Fill marks the prescription filled by the current pharmacist, then
// decrements stock for each medication line (floored at zero). The fill and
// the stock updates are separate writes: once the fill committed, a failing
// decrement surfaces as a PartialWriteFailure, not a rollback.
func (s *PrescriptionService) Fill(ctx context.Context, sess domain.Session, prescriptionID string) error {
	if sess.IsAnonymous() || sess.Role != domain.RolePharmacist {
		return domain.ErrUnauthorized
	}

	rows, err := s.gateway.Select(ctx, domain.CollectionPrescriptions, ports.Query{
		Filters: []ports.Filter{ports.Eq("id", prescriptionID)},
		Limit:   1,
	})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return domain.ErrNotFound
	}
	prescription := domain.PrescriptionFromRow(rows[0])

	now := s.now().UTC()
	if err := s.gateway.Update(ctx, domain.CollectionPrescriptions,
		[]ports.Filter{ports.Eq("id", prescriptionID)},
		domain.Row{
			"status":      domain.PrescriptionFilled,
			"filled_by":   sess.UserID(),
			"filled_date": now,
		},
	); err != nil {
		s.logger.Error().Err(err).Str("prescription_id", prescriptionID).Msg("prescription fill failed")
		return err
	}

	for _, m := range prescription.Medications {
		if err := s.decrementStock(ctx, m); err != nil {
			s.logger.Error().Err(err).
				Str("prescription_id", prescriptionID).
				Str("inventory_id", m.InventoryID).
				Msg("stock decrement failed after fill commit")
			return &domain.PartialWriteFailure{
				Operation: "fill prescription stock decrement",
				CreatedID: prescriptionID,
				Err:       err,
			}
		}
	}

	s.logger.Info().Str("prescription_id", prescriptionID).Str("filled_by", sess.UserID()).Msg("prescription filled")
	return nil
}

func (s *PrescriptionService) decrementStock(ctx context.Context, m domain.PrescriptionItem) error {
	rows, err := s.gateway.Select(ctx, domain.CollectionInventory, ports.Query{
		Filters: []ports.Filter{ports.Eq("id", m.InventoryID)},
		Limit:   1,
	})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return domain.ErrNotFound
	}

	remaining := rows[0].Int("quantity") - m.Quantity
	if remaining < 0 {
		remaining = 0
	}
	return s.gateway.Update(ctx, domain.CollectionInventory,
		[]ports.Filter{ports.Eq("id", m.InventoryID)},
		domain.Row{"quantity": remaining})
}
