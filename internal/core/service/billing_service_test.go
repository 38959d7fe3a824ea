package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/well2nest/hospital-system/internal/core/domain"
	"github.com/well2nest/hospital-system/internal/core/ports"
)

func newTestBillingService(g *stubGateway) *BillingService {
	s := NewBillingService(g, zerolog.Nop())
	s.now = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }
	return s
}

func TestBillingService_Invoices_PatientScoped(t *testing.T) {
	g := newStubGateway()
	g.seed(domain.CollectionInvoices,
		domain.Row{"id": "inv_1", "patient_id": "p_1", "status": domain.InvoicePending},
		domain.Row{"id": "inv_2", "patient_id": "p_2", "status": domain.InvoicePending},
	)
	svc := newTestBillingService(g)

	own, err := svc.Invoices(context.Background(), sessionFor(domain.RolePatient, "p_1"))
	if err != nil {
		t.Fatalf("invoices failed: %v", err)
	}
	if len(own) != 1 || own[0].ID != "inv_1" {
		t.Fatalf("patient must see only own invoices: %+v", own)
	}

	all, err := svc.Invoices(context.Background(), sessionFor(domain.RoleAdmin, "adm_1"))
	if err != nil {
		t.Fatalf("invoices failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin must see all invoices, got %d", len(all))
	}
}

func TestBillingService_Transactions_PatientFilteredThroughInvoices(t *testing.T) {
	g := newStubGateway()
	g.seed(domain.CollectionInvoices,
		domain.Row{"id": "inv_1", "patient_id": "p_1", "status": domain.InvoicePaid},
		domain.Row{"id": "inv_2", "patient_id": "p_2", "status": domain.InvoicePaid},
	)
	g.seed(domain.CollectionTransactions,
		domain.Row{"id": "tx_1", "invoice_id": "inv_1", "amount": 100.0},
		domain.Row{"id": "tx_2", "invoice_id": "inv_2", "amount": 200.0},
	)
	svc := newTestBillingService(g)

	own, err := svc.Transactions(context.Background(), sessionFor(domain.RolePatient, "p_1"))
	if err != nil {
		t.Fatalf("transactions failed: %v", err)
	}
	if len(own) != 1 || own[0].ID != "tx_1" {
		t.Fatalf("patient must see only payments on own invoices: %+v", own)
	}

	all, err := svc.Transactions(context.Background(), sessionFor(domain.RoleAdmin, "adm_1"))
	if err != nil {
		t.Fatalf("transactions failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin must see all payments, got %d", len(all))
	}
}

func TestBillingService_CreateInvoice_AdminOnly(t *testing.T) {
	g := newStubGateway()
	svc := newTestBillingService(g)

	inv, err := svc.CreateInvoice(context.Background(), sessionFor(domain.RoleAdmin, "adm_1"), ports.CreateInvoiceInput{
		PatientID:   "p_1",
		TotalAmount: 75,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if inv.Status != domain.InvoicePending || inv.TotalAmount != 75 {
		t.Fatalf("unexpected invoice: %+v", inv)
	}
	if inv.DueDate.IsZero() {
		t.Fatalf("due date must default to 30 days out")
	}

	for _, sess := range []domain.Session{
		sessionFor(domain.RoleDoctor, "doc_1"),
		sessionFor(domain.RolePatient, "p_1"),
		domain.Anonymous,
	} {
		if _, err := svc.CreateInvoice(context.Background(), sess, ports.CreateInvoiceInput{}); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("role %q: expected ErrUnauthorized, got %v", sess.Role, err)
		}
	}
}

func TestBillingService_RecordPayment_MarksInvoicePaid(t *testing.T) {
	g := newStubGateway()
	g.seed(domain.CollectionInvoices, domain.Row{"id": "inv_1", "patient_id": "p_1", "status": domain.InvoicePending})
	svc := newTestBillingService(g)

	tx, err := svc.RecordPayment(context.Background(), sessionFor(domain.RolePatient, "p_1"), ports.RecordPaymentInput{
		InvoiceID:     "inv_1",
		Amount:        100,
		PaymentMethod: "card",
	})
	if err != nil {
		t.Fatalf("payment failed: %v", err)
	}
	if tx.ID == "" || tx.InvoiceID != "inv_1" {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
	if got := g.rows[domain.CollectionInvoices][0].String("status"); got != domain.InvoicePaid {
		t.Fatalf("invoice status: expected paid, got %s", got)
	}
}

func TestBillingService_RecordPayment_PartialWrite(t *testing.T) {
	g := newStubGateway()
	g.failOn("update", domain.CollectionInvoices, errors.New("write refused"))
	svc := newTestBillingService(g)

	tx, err := svc.RecordPayment(context.Background(), sessionFor(domain.RolePatient, "p_1"), ports.RecordPaymentInput{
		InvoiceID: "inv_1", Amount: 100, PaymentMethod: "cash",
	})

	var partial *domain.PartialWriteFailure
	if !errors.As(err, &partial) {
		t.Fatalf("expected PartialWriteFailure, got %v", err)
	}
	if tx == nil || partial.CreatedID != tx.ID {
		t.Fatalf("partial failure must name the committed transaction: %+v vs %+v", partial, tx)
	}
	// The payment stays recorded even though the invoice still reads pending.
	if len(g.rows[domain.CollectionTransactions]) != 1 {
		t.Fatalf("committed transaction must not be rolled back")
	}
}
