package report

import (
	"time"

	"github.com/fitstudio/studio-api/internal/models"
)

// FinancialKPIs are the headline money numbers for a window.
type FinancialKPIs struct {
	RealizedRevenue float64 `json:"realizedRevenue"`
	PendingRevenue  float64 `json:"pendingRevenue"`
	LateTotal       float64 `json:"lateTotal"`
	TodayPaidAmount float64 `json:"todayPaidAmount"`
	TodayPaidCount  int     `json:"todayPaidCount"`
}

// ComputeFinancialKPIs sums payments into the window. Realized revenue
// counts paid payments by payment date; pending and late totals count by
// due date (payment date when absent). The today figures ignore the window
// entirely and compare against now's calendar day.
func ComputeFinancialKPIs(payments []models.Payment, window Window, now time.Time) FinancialKPIs {
	var kpis FinancialKPIs
	today := Day(now)
	for _, p := range payments {
		switch p.Status {
		case models.PaymentRecordPaid:
			if window.Contains(p.Date) {
				kpis.RealizedRevenue += p.Amount
			}
			if Day(p.Date).Equal(today) {
				kpis.TodayPaidAmount += p.Amount
				kpis.TodayPaidCount++
			}
		case models.PaymentRecordPending:
			if window.Contains(p.EffectiveDueDate()) {
				kpis.PendingRevenue += p.Amount
			}
		case models.PaymentRecordLate:
			if window.Contains(p.EffectiveDueDate()) {
				kpis.LateTotal += p.Amount
			}
		}
	}
	return kpis
}

// FlattenPayments collects every payment across the student collection.
func FlattenPayments(students []models.Student) []models.Payment {
	var payments []models.Payment
	for _, s := range students {
		payments = append(payments, s.Payments...)
	}
	return payments
}
