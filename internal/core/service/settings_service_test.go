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

func newTestSettingsService(g *stubGateway) *SettingsService {
	s := NewSettingsService(g, zerolog.Nop())
	s.now = func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) }
	return s
}

func TestSettingsService_AdminOnly(t *testing.T) {
	svc := newTestSettingsService(newStubGateway())
	for _, sess := range []domain.Session{
		sessionFor(domain.RoleDoctor, "doc_1"),
		sessionFor(domain.RolePatient, "p_1"),
		sessionFor(domain.RolePharmacist, "ph_1"),
		domain.Anonymous,
	} {
		if _, err := svc.Settings(context.Background(), sess); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("role %q: expected ErrUnauthorized, got %v", sess.Role, err)
		}
		if err := svc.UpdateSetting(context.Background(), sess, "hospital_name", "x"); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("role %q: expected ErrUnauthorized, got %v", sess.Role, err)
		}
		if _, err := svc.AdminUsers(context.Background(), sess); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("role %q: expected ErrUnauthorized, got %v", sess.Role, err)
		}
	}
}

func TestSettingsService_UpdateSetting_StampsAuthor(t *testing.T) {
	g := newStubGateway()
	g.seed(domain.CollectionSiteSettings, domain.Row{"id": "st_1", "setting_key": "hospital_name", "setting_value": "Old"})
	svc := newTestSettingsService(g)

	if err := svc.UpdateSetting(context.Background(), sessionFor(domain.RoleAdmin, "adm_1"), "hospital_name", "Well2Nest General"); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	row := g.rows[domain.CollectionSiteSettings][0]
	if row.String("setting_value") != "Well2Nest General" {
		t.Fatalf("value not written: %+v", row)
	}
	if row.String("updated_by") != "adm_1" {
		t.Fatalf("updated_by not stamped: %+v", row)
	}
	if row.Time("updated_at").IsZero() {
		t.Fatalf("updated_at not stamped: %+v", row)
	}
	if got := g.updates[0].Filters[0]; got != ports.Eq("setting_key", "hospital_name") {
		t.Fatalf("update must target the key: %+v", got)
	}
}

func TestSettingsService_SetAdminActive(t *testing.T) {
	g := newStubGateway()
	g.seed(domain.CollectionAdminUsers,
		domain.Row{"id": "adm_1", "email": "admin@well2nest.com", "is_active": true},
		domain.Row{"id": "adm_2", "email": "second@well2nest.com", "is_active": true},
	)
	svc := newTestSettingsService(g)
	sess := sessionFor(domain.RoleAdmin, "adm_1")

	if err := svc.SetAdminActive(context.Background(), sess, "adm_2", false); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if g.rows[domain.CollectionAdminUsers][1].Bool("is_active") {
		t.Fatalf("adm_2 still active")
	}

	// Self-deactivation is refused; reactivating self is fine.
	if err := svc.SetAdminActive(context.Background(), sess, "adm_1", false); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("self-deactivation: expected ErrUnauthorized, got %v", err)
	}
	if err := svc.SetAdminActive(context.Background(), sess, "adm_1", true); err != nil {
		t.Fatalf("self-reactivation must work: %v", err)
	}
}

func TestDirectoryService_Patients_NotForPatients(t *testing.T) {
	g := newStubGateway()
	g.seed(domain.CollectionPatients, domain.Row{"id": "p_1", "first_name": "John", "last_name": "Smith"})
	svc := NewDirectoryService(g, zerolog.Nop())

	if _, err := svc.Patients(context.Background(), sessionFor(domain.RolePatient, "p_1")); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	list, err := svc.Patients(context.Background(), sessionFor(domain.RoleDoctor, "doc_1"))
	if err != nil {
		t.Fatalf("patients failed: %v", err)
	}
	if len(list) != 1 || list[0].Role != domain.RolePatient {
		t.Fatalf("unexpected listing: %+v", list)
	}
}

func TestDirectoryService_CreateDepartment_AdminOnly(t *testing.T) {
	g := newStubGateway()
	svc := NewDirectoryService(g, zerolog.Nop())

	dep, err := svc.CreateDepartment(context.Background(), sessionFor(domain.RoleAdmin, "adm_1"), ports.CreateDepartmentInput{
		Name: "Cardiology", HeadDoctorID: "doc_1",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if dep.ID == "" || dep.Name != "Cardiology" {
		t.Fatalf("unexpected department: %+v", dep)
	}

	if _, err := svc.CreateDepartment(context.Background(), sessionFor(domain.RoleDoctor, "doc_1"), ports.CreateDepartmentInput{}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
