package ports

import (
	"context"

	"github.com/well2nest/hospital-system/internal/core/domain"
)

// CreatePrescriptionInput carries a new prescription written by a doctor.
type CreatePrescriptionInput struct {
	PatientID   string
	DoctorID    string
	Medications []domain.PrescriptionItem
	Notes       string
}

// PrescriptionService defines use-case operations for prescriptions.
type PrescriptionService interface {
	List(ctx context.Context, sess domain.Session) ([]domain.Prescription, error)
	Create(ctx context.Context, sess domain.Session, input CreatePrescriptionInput) (*domain.Prescription, error)
	// Fill marks the prescription filled by the current pharmacist and then
	// decrements stock for each medication. Stock updates after the fill
	// committed are not rolled back on failure; the caller sees a
	// *domain.PartialWriteFailure carrying the prescription id.
	Fill(ctx context.Context, sess domain.Session, prescriptionID string) error
}
