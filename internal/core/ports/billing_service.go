package ports

import (
	"context"
	"time"

	"github.com/well2nest/hospital-system/internal/core/domain"
)

// CreateInvoiceInput carries a manually raised invoice.
type CreateInvoiceInput struct {
	PatientID     string
	AppointmentID string
	TotalAmount   float64
	DueDate       time.Time
}

// RecordPaymentInput carries a payment against an existing invoice.
type RecordPaymentInput struct {
	InvoiceID     string
	Amount        float64
	PaymentMethod string
}

// BillingService defines use-case operations for invoices and payments.
// Invoice and transaction lists are patient-scoped for the patient role.
type BillingService interface {
	Invoices(ctx context.Context, sess domain.Session) ([]domain.Invoice, error)
	Transactions(ctx context.Context, sess domain.Session) ([]domain.Transaction, error)
	CreateInvoice(ctx context.Context, sess domain.Session, input CreateInvoiceInput) (*domain.Invoice, error)
	// RecordPayment inserts the transaction and then marks the invoice paid.
	// If the invoice update fails after the transaction committed, the error
	// is a *domain.PartialWriteFailure carrying the transaction id.
	RecordPayment(ctx context.Context, sess domain.Session, input RecordPaymentInput) (*domain.Transaction, error)
}
