package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/well2nest/hospital-system/internal/core/domain"
	"github.com/well2nest/hospital-system/internal/core/ports"
)

func newTestAppointmentService(g *stubGateway) *AppointmentService {
	s := NewAppointmentService(g, zerolog.Nop())
	s.now = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }
	return s
}

func TestAppointmentService_Create_RaisesInvoice(t *testing.T) {
	g := newStubGateway()
	g.seed(domain.CollectionDoctors, domain.Row{
		"id": "doc_1", "first_name": "Sarah", "last_name": "Johnson",
		"consultation_fee": 150.0,
	})
	svc := newTestAppointmentService(g)
	sess := sessionFor(domain.RolePatient, "p_1")

	appt, err := svc.Create(context.Background(), sess, ports.CreateAppointmentInput{
		PatientID:       "p_1",
		DoctorID:        "doc_1",
		AppointmentDate: time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC),
		Reason:          "checkup",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if appt.ID == "" || appt.Status != domain.AppointmentScheduled {
		t.Fatalf("unexpected appointment: %+v", appt)
	}

	invoices := g.rows[domain.CollectionInvoices]
	if len(invoices) != 1 {
		t.Fatalf("expected one invoice, got %d", len(invoices))
	}
	inv := domain.InvoiceFromRow(invoices[0])
	if inv.PatientID != "p_1" || inv.AppointmentID != appt.ID {
		t.Fatalf("invoice not linked to appointment: %+v", inv)
	}
	if inv.TotalAmount != 150 {
		t.Fatalf("expected doctor's fee 150, got %v", inv.TotalAmount)
	}
	if inv.Status != domain.InvoicePending {
		t.Fatalf("expected pending invoice, got %s", inv.Status)
	}
	if !strings.HasPrefix(inv.InvoiceNumber, "INV-") {
		t.Fatalf("unexpected invoice number: %s", inv.InvoiceNumber)
	}
	if got, want := inv.DueDate, inv.CreatedAt.AddDate(0, 0, 30); !got.Equal(want) {
		t.Fatalf("due date %v, want %v", got, want)
	}
}

func TestAppointmentService_Create_DefaultFee(t *testing.T) {
	g := newStubGateway()
	g.failOn("select", domain.CollectionDoctors, errors.New("unreachable"))
	svc := newTestAppointmentService(g)

	if _, err := svc.Create(context.Background(), sessionFor(domain.RolePatient, "p_1"), ports.CreateAppointmentInput{
		PatientID: "p_1", DoctorID: "doc_x",
		AppointmentDate: time.Now(),
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	inv := domain.InvoiceFromRow(g.rows[domain.CollectionInvoices][0])
	if inv.TotalAmount != defaultConsultationFee {
		t.Fatalf("expected default fee %d, got %v", defaultConsultationFee, inv.TotalAmount)
	}
}

func TestAppointmentService_Create_PartialWrite(t *testing.T) {
	g := newStubGateway()
	g.failOn("insert", domain.CollectionInvoices, errors.New("insert refused"))
	svc := newTestAppointmentService(g)

	appt, err := svc.Create(context.Background(), sessionFor(domain.RolePatient, "p_1"), ports.CreateAppointmentInput{
		PatientID: "p_1", DoctorID: "doc_1",
		AppointmentDate: time.Now(),
	})

	var partial *domain.PartialWriteFailure
	if !errors.As(err, &partial) {
		t.Fatalf("expected PartialWriteFailure, got %v", err)
	}
	if appt == nil || partial.CreatedID != appt.ID {
		t.Fatalf("partial failure must name the committed appointment: %+v vs %+v", partial, appt)
	}
	// The appointment stays behind; nothing is rolled back.
	if len(g.rows[domain.CollectionAppointments]) != 1 {
		t.Fatalf("committed appointment must not be rolled back")
	}
}

func TestAppointmentService_List_ScopedForDoctor(t *testing.T) {
	g := newStubGateway()
	g.seed(domain.CollectionAppointments,
		domain.Row{"id": "a_1", "doctor_id": "doc_1", "patient_id": "p_1", "status": domain.AppointmentScheduled},
		domain.Row{"id": "a_2", "doctor_id": "doc_2", "patient_id": "p_2", "status": domain.AppointmentScheduled},
	)
	g.seed(domain.CollectionPatients, domain.Row{"id": "p_1", "first_name": "John", "last_name": "Smith"})
	g.seed(domain.CollectionDoctors, domain.Row{"id": "doc_1", "first_name": "Sarah", "last_name": "Johnson", "specialization": "Cardiology"})
	svc := newTestAppointmentService(g)

	appts, err := svc.List(context.Background(), sessionFor(domain.RoleDoctor, "doc_1"))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(appts) != 1 || appts[0].ID != "a_1" {
		t.Fatalf("expected only own appointments, got %+v", appts)
	}
	if appts[0].PatientName != "John Smith" {
		t.Fatalf("patient name not stitched in: %+v", appts[0])
	}
	if appts[0].DoctorName != "Dr. Sarah Johnson" || appts[0].Specialization != "Cardiology" {
		t.Fatalf("doctor display fields not stitched in: %+v", appts[0])
	}

	q := g.selects[0]
	if q.Collection != domain.CollectionAppointments {
		t.Fatalf("unexpected first query: %+v", q)
	}
	if len(q.Query.Filters) == 0 || q.Query.Filters[0] != ports.Eq("doctor_id", "doc_1") {
		t.Fatalf("doctor query must carry the owner filter: %+v", q.Query.Filters)
	}
}

func TestAppointmentService_List_AdminUnscoped(t *testing.T) {
	g := newStubGateway()
	g.seed(domain.CollectionAppointments,
		domain.Row{"id": "a_1", "doctor_id": "doc_1", "patient_id": "p_1"},
		domain.Row{"id": "a_2", "doctor_id": "doc_2", "patient_id": "p_2"},
	)
	svc := newTestAppointmentService(g)

	appts, err := svc.List(context.Background(), sessionFor(domain.RoleAdmin, "adm_1"))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(appts) != 2 {
		t.Fatalf("admin must see all appointments, got %d", len(appts))
	}
	if len(g.selects[0].Query.Filters) != 0 {
		t.Fatalf("admin query must carry no filters: %+v", g.selects[0].Query.Filters)
	}
}

func TestAppointmentService_List_DisplayLookupFailureTolerated(t *testing.T) {
	g := newStubGateway()
	g.seed(domain.CollectionAppointments, domain.Row{"id": "a_1", "doctor_id": "doc_1", "patient_id": "p_1"})
	g.failOn("select", domain.CollectionPatients, errors.New("unreachable"))
	g.failOn("select", domain.CollectionDoctors, errors.New("unreachable"))
	svc := newTestAppointmentService(g)

	appts, err := svc.List(context.Background(), sessionFor(domain.RoleAdmin, "adm_1"))
	if err != nil {
		t.Fatalf("display lookups are best effort: %v", err)
	}
	if len(appts) != 1 || appts[0].PatientName != "" {
		t.Fatalf("unexpected result: %+v", appts)
	}
}

func TestAppointmentService_UpdateStatus_OwnerFilterRidesAlong(t *testing.T) {
	g := newStubGateway()
	svc := newTestAppointmentService(g)

	if err := svc.UpdateStatus(context.Background(), sessionFor(domain.RolePatient, "p_1"), "a_1", domain.AppointmentCancelled); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	u := g.updates[0]
	if len(u.Filters) != 2 || u.Filters[0] != ports.Eq("patient_id", "p_1") || u.Filters[1] != ports.Eq("id", "a_1") {
		t.Fatalf("expected owner+id filters, got %+v", u.Filters)
	}
	if u.Patch.String("status") != domain.AppointmentCancelled {
		t.Fatalf("unexpected patch: %+v", u.Patch)
	}
}

func TestAppointmentService_AnonymousRejected(t *testing.T) {
	svc := newTestAppointmentService(newStubGateway())
	if _, err := svc.List(context.Background(), domain.Anonymous); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Create(context.Background(), domain.Anonymous, ports.CreateAppointmentInput{}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
