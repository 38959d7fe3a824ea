package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/well2nest/hospital-system/internal/core/domain"
	"github.com/well2nest/hospital-system/internal/core/ports"
)

const lowStockThreshold = 10

// DashboardService computes the per-role dashboard statistics. The counts
// for one dashboard are independent queries issued concurrently; a failing
// count degrades to zero (and is logged) so one bad query never blanks the
// whole dashboard.
type DashboardService struct {
	gateway ports.Gateway
	logger  zerolog.Logger
	now     func() time.Time
}

func NewDashboardService(gateway ports.Gateway, logger zerolog.Logger) *DashboardService {
	return &DashboardService{gateway: gateway, logger: logger, now: time.Now}
}

// count runs one count query, degrading to zero on error.
func (s *DashboardService) count(ctx context.Context, collection string, filters []ports.Filter) int64 {
	n, err := s.gateway.Count(ctx, collection, filters)
	if err != nil {
		s.logger.Warn().Err(err).Str("collection", collection).Msg("dashboard count failed")
		return 0
	}
	return n
}

// dayBounds returns the [start, end] filters for "today" on column.
func (s *DashboardService) dayBounds(column string) (ports.Filter, ports.Filter) {
	now := s.now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return ports.Gte(column, start), ports.Lte(column, start.AddDate(0, 0, 1).Add(-time.Second))
}

func (s *DashboardService) DoctorStats(ctx context.Context, sess domain.Session) (*ports.DoctorStats, error) {
	if sess.IsAnonymous() || sess.Role != domain.RoleDoctor {
		return nil, domain.ErrUnauthorized
	}

	from, to := s.dayBounds("appointment_date")
	stats := &ports.DoctorStats{}

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		stats.TodayAppointments = s.count(ctx, domain.CollectionAppointments,
			ScopeFilters(sess, domain.CollectionAppointments,
				ports.Eq("status", domain.AppointmentScheduled), from, to))
	}()
	go func() {
		defer wg.Done()
		stats.TotalPatients = s.count(ctx, domain.CollectionAppointments,
			ScopeFilters(sess, domain.CollectionAppointments))
	}()
	go func() {
		defer wg.Done()
		stats.PendingPrescriptions = s.count(ctx, domain.CollectionPrescriptions,
			ScopeFilters(sess, domain.CollectionPrescriptions,
				ports.Eq("status", domain.PrescriptionPending)))
	}()
	go func() {
		defer wg.Done()
		rows, err := s.gateway.Select(ctx, domain.CollectionAppointments, ports.Query{
			Filters: ScopeFilters(sess, domain.CollectionAppointments,
				ports.Eq("status", domain.AppointmentScheduled), from, to),
			OrderBy: []ports.Order{{Column: "appointment_date"}},
		})
		if err != nil {
			s.logger.Warn().Err(err).Msg("today's schedule load failed")
			return
		}
		for _, r := range rows {
			stats.TodaySchedule = append(stats.TodaySchedule, domain.AppointmentFromRow(r))
		}
	}()
	wg.Wait()

	return stats, nil
}

func (s *DashboardService) PatientStats(ctx context.Context, sess domain.Session) (*ports.PatientStats, error) {
	if sess.IsAnonymous() || sess.Role != domain.RolePatient {
		return nil, domain.ErrUnauthorized
	}

	now := s.now().UTC()
	stats := &ports.PatientStats{}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		rows, err := s.gateway.Select(ctx, domain.CollectionAppointments, ports.Query{
			Filters: ScopeFilters(sess, domain.CollectionAppointments,
				ports.Eq("status", domain.AppointmentScheduled),
				ports.Gte("appointment_date", now)),
			OrderBy: []ports.Order{{Column: "appointment_date"}},
			Limit:   5,
		})
		if err != nil {
			s.logger.Warn().Err(err).Msg("upcoming appointments load failed")
			return
		}
		for _, r := range rows {
			stats.NextAppointments = append(stats.NextAppointments, domain.AppointmentFromRow(r))
		}
		stats.UpcomingAppointments = s.count(ctx, domain.CollectionAppointments,
			ScopeFilters(sess, domain.CollectionAppointments,
				ports.Eq("status", domain.AppointmentScheduled),
				ports.Gte("appointment_date", now)))
	}()
	go func() {
		defer wg.Done()
		stats.ActivePrescriptions = s.count(ctx, domain.CollectionPrescriptions,
			ScopeFilters(sess, domain.CollectionPrescriptions,
				ports.Eq("status", domain.PrescriptionActive)))
	}()
	go func() {
		defer wg.Done()
		stats.PendingPayments = s.count(ctx, domain.CollectionInvoices,
			ScopeFilters(sess, domain.CollectionInvoices,
				ports.Neq("status", domain.InvoicePaid)))
	}()
	wg.Wait()

	return stats, nil
}

func (s *DashboardService) PharmacistStats(ctx context.Context, sess domain.Session) (*ports.PharmacistStats, error) {
	if sess.IsAnonymous() || sess.Role != domain.RolePharmacist {
		return nil, domain.ErrUnauthorized
	}

	from, to := s.dayBounds("filled_date")
	stats := &ports.PharmacistStats{}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		// Pending prescriptions are a queue shared by all pharmacists, so
		// this one is deliberately unscoped.
		rows, err := s.gateway.Select(ctx, domain.CollectionPrescriptions, ports.Query{
			Filters: []ports.Filter{ports.Eq("status", domain.PrescriptionPending)},
			OrderBy: []ports.Order{{Column: "prescribed_date", Descending: true}},
			Limit:   5,
		})
		if err != nil {
			s.logger.Warn().Err(err).Msg("pending prescriptions load failed")
			return
		}
		for _, r := range rows {
			stats.Pending = append(stats.Pending, domain.PrescriptionFromRow(r))
		}
		stats.PendingPrescriptions = s.count(ctx, domain.CollectionPrescriptions,
			[]ports.Filter{ports.Eq("status", domain.PrescriptionPending)})
	}()
	go func() {
		defer wg.Done()
		stats.LowStockItems = s.count(ctx, domain.CollectionInventory, []ports.Filter{
			ports.Lte("quantity", lowStockThreshold),
			ports.Eq("category", "Medication"),
		})
	}()
	go func() {
		defer wg.Done()
		stats.FilledToday = s.count(ctx, domain.CollectionPrescriptions,
			ScopeFilters(sess, domain.CollectionPrescriptions,
				ports.Eq("status", domain.PrescriptionFilled), from, to))
	}()
	wg.Wait()

	return stats, nil
}

func (s *DashboardService) AdminStats(ctx context.Context, sess domain.Session) (*ports.AdminStats, error) {
	if sess.IsAnonymous() || sess.Role != domain.RoleAdmin {
		return nil, domain.ErrUnauthorized
	}

	stats := &ports.AdminStats{}

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		stats.Patients = s.count(ctx, domain.CollectionPatients, nil)
	}()
	go func() {
		defer wg.Done()
		stats.Doctors = s.count(ctx, domain.CollectionDoctors, nil)
	}()
	go func() {
		defer wg.Done()
		stats.Appointments = s.count(ctx, domain.CollectionAppointments, nil)
	}()
	go func() {
		defer wg.Done()
		stats.OpenInvoices = s.count(ctx, domain.CollectionInvoices,
			[]ports.Filter{ports.Neq("status", domain.InvoicePaid)})
	}()
	wg.Wait()

	return stats, nil
}
