package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/well2nest/hospital-system/internal/core/domain"
	"github.com/well2nest/hospital-system/internal/core/ports"
)

type BillingService struct {
	gateway ports.Gateway
	logger  zerolog.Logger
	now     func() time.Time
}

func NewBillingService(gateway ports.Gateway, logger zerolog.Logger) *BillingService {
	return &BillingService{gateway: gateway, logger: logger, now: time.Now}
}

// Invoices returns invoices visible to the session, newest first. Patients
// see their own; admin sees all.
func (s *BillingService) Invoices(ctx context.Context, sess domain.Session) ([]domain.Invoice, error) {
	if sess.IsAnonymous() {
		return nil, domain.ErrUnauthorized
	}

	rows, err := s.gateway.Select(ctx, domain.CollectionInvoices, ports.Query{
		Filters: ScopeFilters(sess, domain.CollectionInvoices),
		OrderBy: []ports.Order{{Column: "created_at", Descending: true}},
	})
	if err != nil {
		return nil, err
	}

	invoices := make([]domain.Invoice, 0, len(rows))
	for _, r := range rows {
		invoices = append(invoices, domain.InvoiceFromRow(r))
	}
	return invoices, nil
}

// Transactions returns payments visible to the session, newest first. For
// patients the scoping goes through their invoices, since transactions
// reference the payer only indirectly.
func (s *BillingService) Transactions(ctx context.Context, sess domain.Session) ([]domain.Transaction, error) {
	if sess.IsAnonymous() {
		return nil, domain.ErrUnauthorized
	}

	rows, err := s.gateway.Select(ctx, domain.CollectionTransactions, ports.Query{
		OrderBy: []ports.Order{{Column: "transaction_date", Descending: true}},
	})
	if err != nil {
		return nil, err
	}

	var ownInvoices map[string]bool
	if sess.Role == domain.RolePatient {
		invoices, err := s.Invoices(ctx, sess)
		if err != nil {
			return nil, err
		}
		ownInvoices = make(map[string]bool, len(invoices))
		for _, inv := range invoices {
			ownInvoices[inv.ID] = true
		}
	}

	transactions := make([]domain.Transaction, 0, len(rows))
	for _, r := range rows {
		t := domain.TransactionFromRow(r)
		if ownInvoices != nil && !ownInvoices[t.InvoiceID] {
			continue
		}
		transactions = append(transactions, t)
	}
	return transactions, nil
}

// CreateInvoice raises an invoice outside the appointment flow. Admin only.
func (s *BillingService) CreateInvoice(ctx context.Context, sess domain.Session, input ports.CreateInvoiceInput) (*domain.Invoice, error) {
	if sess.IsAnonymous() || sess.Role != domain.RoleAdmin {
		return nil, domain.ErrUnauthorized
	}

	now := s.now().UTC()
	due := input.DueDate
	if due.IsZero() {
		due = now.AddDate(0, 0, 30)
	}

	row, err := s.gateway.Insert(ctx, domain.CollectionInvoices, domain.Row{
		"patient_id":     input.PatientID,
		"appointment_id": input.AppointmentID,
		"invoice_number": invoiceNumber(now),
		"total_amount":   input.TotalAmount,
		"status":         domain.InvoicePending,
		"due_date":       due,
		"created_at":     now,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("invoice insert failed")
		return nil, err
	}

	invoice := domain.InvoiceFromRow(row)
	s.logger.Info().Str("invoice_id", invoice.ID).Str("invoice_number", invoice.InvoiceNumber).Msg("invoice created")
	return &invoice, nil
}

// RecordPayment inserts the transaction and then marks the invoice paid.
// When the invoice update fails after the transaction committed, the caller
// gets a PartialWriteFailure carrying the transaction id: the payment is
// recorded while the invoice still reads pending.
func (s *BillingService) RecordPayment(ctx context.Context, sess domain.Session, input ports.RecordPaymentInput) (*domain.Transaction, error) {
	if sess.IsAnonymous() {
		return nil, domain.ErrUnauthorized
	}

	now := s.now().UTC()
	row, err := s.gateway.Insert(ctx, domain.CollectionTransactions, domain.Row{
		"invoice_id":       input.InvoiceID,
		"amount":           input.Amount,
		"payment_method":   input.PaymentMethod,
		"transaction_date": now,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("transaction insert failed")
		return nil, err
	}
	transaction := domain.TransactionFromRow(row)

	if err := s.gateway.Update(ctx, domain.CollectionInvoices,
		[]ports.Filter{ports.Eq("id", input.InvoiceID)},
		domain.Row{"status": domain.InvoicePaid},
	); err != nil {
		s.logger.Error().Err(err).Str("transaction_id", transaction.ID).Msg("invoice update failed after payment commit")
		return &transaction, &domain.PartialWriteFailure{
			Operation: "record payment invoice update",
			CreatedID: transaction.ID,
			Err:       err,
		}
	}

	s.logger.Info().Str("transaction_id", transaction.ID).Str("invoice_id", input.InvoiceID).Msg("payment recorded")
	return &transaction, nil
}
