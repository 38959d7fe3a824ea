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

func newTestDashboardService(g *stubGateway) *DashboardService {
	s := NewDashboardService(g, zerolog.Nop())
	s.now = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }
	return s
}

func hasOwnerFilter(filters []ports.Filter, column, value string) bool {
	for _, f := range filters {
		if f.Op == ports.OpEq && f.Column == column && f.Value == value {
			return true
		}
	}
	return false
}

func TestDashboardService_DoctorStats_Scoped(t *testing.T) {
	g := newStubGateway()
	g.seed(domain.CollectionAppointments,
		domain.Row{"id": "a_1", "doctor_id": "doc_1", "status": domain.AppointmentScheduled},
		domain.Row{"id": "a_2", "doctor_id": "doc_2", "status": domain.AppointmentScheduled},
	)
	g.seed(domain.CollectionPrescriptions,
		domain.Row{"id": "rx_1", "doctor_id": "doc_1", "status": domain.PrescriptionPending},
	)
	svc := newTestDashboardService(g)

	stats, err := svc.DoctorStats(context.Background(), sessionFor(domain.RoleDoctor, "doc_1"))
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalPatients != 1 {
		t.Fatalf("expected 1 own appointment, got %d", stats.TotalPatients)
	}
	if stats.PendingPrescriptions != 1 {
		t.Fatalf("expected 1 pending prescription, got %d", stats.PendingPrescriptions)
	}

	// Every count a doctor's dashboard runs carries the owner filter.
	for _, c := range g.counts {
		if !hasOwnerFilter(c.Filters, "doctor_id", "doc_1") {
			t.Fatalf("unscoped doctor count on %s: %+v", c.Collection, c.Filters)
		}
	}
}

func TestDashboardService_PatientStats_Scoped(t *testing.T) {
	g := newStubGateway()
	g.seed(domain.CollectionInvoices,
		domain.Row{"id": "inv_1", "patient_id": "p_1", "status": domain.InvoicePending},
	)
	svc := newTestDashboardService(g)

	if _, err := svc.PatientStats(context.Background(), sessionFor(domain.RolePatient, "p_1")); err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	for _, c := range g.counts {
		if !hasOwnerFilter(c.Filters, "patient_id", "p_1") {
			t.Fatalf("unscoped patient count on %s: %+v", c.Collection, c.Filters)
		}
	}
	for _, q := range g.selects {
		if !hasOwnerFilter(q.Query.Filters, "patient_id", "p_1") {
			t.Fatalf("unscoped patient select on %s: %+v", q.Collection, q.Query.Filters)
		}
	}
}

func TestDashboardService_PharmacistStats_SharedQueueUnscoped(t *testing.T) {
	g := newStubGateway()
	g.seed(domain.CollectionPrescriptions,
		domain.Row{"id": "rx_1", "status": domain.PrescriptionPending},
		domain.Row{"id": "rx_2", "status": domain.PrescriptionPending},
		domain.Row{"id": "rx_3", "status": domain.PrescriptionFilled, "filled_by": "ph_1"},
	)
	svc := newTestDashboardService(g)

	stats, err := svc.PharmacistStats(context.Background(), sessionFor(domain.RolePharmacist, "ph_1"))
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	// The pending queue is shared by all pharmacists.
	if stats.PendingPrescriptions != 2 || len(stats.Pending) != 2 {
		t.Fatalf("expected shared queue of 2, got %d (%d listed)", stats.PendingPrescriptions, len(stats.Pending))
	}
	// Filled-today is the pharmacist's own work.
	filledScoped := false
	for _, c := range g.counts {
		if hasOwnerFilter(c.Filters, "filled_by", "ph_1") {
			filledScoped = true
		}
	}
	if !filledScoped {
		t.Fatalf("filled-today count must be scoped to the pharmacist: %+v", g.counts)
	}
}

func TestDashboardService_AdminStats_Unscoped(t *testing.T) {
	g := newStubGateway()
	g.seed(domain.CollectionPatients, domain.Row{"id": "p_1"}, domain.Row{"id": "p_2"})
	g.seed(domain.CollectionDoctors, domain.Row{"id": "doc_1"})
	g.seed(domain.CollectionAppointments, domain.Row{"id": "a_1"})
	g.seed(domain.CollectionInvoices, domain.Row{"id": "inv_1", "status": domain.InvoicePending})
	svc := newTestDashboardService(g)

	stats, err := svc.AdminStats(context.Background(), sessionFor(domain.RoleAdmin, "adm_1"))
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Patients != 2 || stats.Doctors != 1 || stats.Appointments != 1 || stats.OpenInvoices != 1 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
}

func TestDashboardService_CountFailureDegradesToZero(t *testing.T) {
	g := newStubGateway()
	g.seed(domain.CollectionPatients, domain.Row{"id": "p_1"})
	g.failOn("count", domain.CollectionDoctors, errors.New("unreachable"))
	svc := newTestDashboardService(g)

	stats, err := svc.AdminStats(context.Background(), sessionFor(domain.RoleAdmin, "adm_1"))
	if err != nil {
		t.Fatalf("one bad count must not fail the dashboard: %v", err)
	}
	if stats.Doctors != 0 {
		t.Fatalf("failed count must degrade to zero, got %d", stats.Doctors)
	}
	if stats.Patients != 1 {
		t.Fatalf("healthy counts must survive, got %d", stats.Patients)
	}
}

func TestDashboardService_RoleMismatch(t *testing.T) {
	svc := newTestDashboardService(newStubGateway())
	if _, err := svc.DoctorStats(context.Background(), sessionFor(domain.RolePatient, "p_1")); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.AdminStats(context.Background(), domain.Anonymous); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
