package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/fitstudio/studio-api/internal/cache"
	"github.com/fitstudio/studio-api/internal/models"
	"github.com/fitstudio/studio-api/internal/report"
)

// Dashboard is the landing-page summary: roster partition, current-month
// money figures and today's agenda.
type Dashboard struct {
	StatusCounts      report.StatusCounts   `json:"statusCounts"`
	Financial         report.FinancialKPIs  `json:"financial"`
	TodayAppointments []models.Appointment  `json:"todayAppointments"`
	PendingWaitlist   int                   `json:"pendingWaitlist"`
	GeneratedAt       time.Time             `json:"generatedAt"`
}

// DashboardService assembles the dashboard from the view cache. Every call
// re-resolves the current month against the wall clock.
type DashboardService struct {
	cache  *cache.ViewCache
	logger *zap.Logger
	now    func() time.Time
}

// NewDashboardService constructs the dashboard service.
func NewDashboardService(viewCache *cache.ViewCache, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{cache: viewCache, logger: logger, now: time.Now}
}

// Summary builds the dashboard for the current moment.
func (s *DashboardService) Summary(ctx context.Context) (*Dashboard, error) {
	now := s.now().UTC()
	snap := s.cache.Snapshot()

	window, err := report.ResolveWindow(report.PeriodCurrentMonth, now, nil, nil)
	if err != nil {
		return nil, err
	}

	dash := &Dashboard{
		StatusCounts: report.CountByStatus(snap.Students),
		Financial:    report.ComputeFinancialKPIs(report.FlattenPayments(snap.Students), window, now),
		GeneratedAt:  now,
	}

	today := report.Day(now)
	for _, appt := range snap.Appointments {
		if appt.Status == models.AppointmentScheduled && report.Day(appt.Date).Equal(today) {
			dash.TodayAppointments = append(dash.TodayAppointments, appt)
		}
	}
	sort.Slice(dash.TodayAppointments, func(i, j int) bool {
		return dash.TodayAppointments[i].Date.Before(dash.TodayAppointments[j].Date)
	})

	for _, person := range snap.Waitlist {
		if person.Status == models.WaitlistPending {
			dash.PendingWaitlist++
		}
	}

	return dash, nil
}
