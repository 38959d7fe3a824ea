package ports

import (
	"context"

	"github.com/well2nest/hospital-system/internal/core/domain"
)

// DoctorStats are the counters on the doctor dashboard, scoped to one doctor.
type DoctorStats struct {
	TodayAppointments    int64                `json:"today_appointments"`
	TotalPatients        int64                `json:"total_patients"`
	PendingPrescriptions int64                `json:"pending_prescriptions"`
	TodaySchedule        []domain.Appointment `json:"today_schedule"`
}

// PatientStats are the counters on the patient portal, scoped to one patient.
type PatientStats struct {
	UpcomingAppointments int64                `json:"upcoming_appointments"`
	ActivePrescriptions  int64                `json:"active_prescriptions"`
	PendingPayments      int64                `json:"pending_payments"`
	NextAppointments     []domain.Appointment `json:"next_appointments"`
}

// PharmacistStats are the counters on the pharmacy dashboard.
type PharmacistStats struct {
	PendingPrescriptions int64                 `json:"pending_prescriptions"`
	LowStockItems        int64                 `json:"low_stock_items"`
	FilledToday          int64                 `json:"filled_today"`
	Pending              []domain.Prescription `json:"pending"`
}

// AdminStats are the unscoped totals on the administrator dashboard.
type AdminStats struct {
	Patients     int64 `json:"patients"`
	Doctors      int64 `json:"doctors"`
	Appointments int64 `json:"appointments"`
	OpenInvoices int64 `json:"open_invoices"`
}

// DashboardService computes per-role dashboard statistics. Each statistic is
// an independent gateway query; a failing one degrades to its zero value
// rather than failing the whole dashboard.
type DashboardService interface {
	DoctorStats(ctx context.Context, sess domain.Session) (*DoctorStats, error)
	PatientStats(ctx context.Context, sess domain.Session) (*PatientStats, error)
	PharmacistStats(ctx context.Context, sess domain.Session) (*PharmacistStats, error)
	AdminStats(ctx context.Context, sess domain.Session) (*AdminStats, error)
}
