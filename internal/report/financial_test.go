package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fitstudio/studio-api/internal/models"
)

func TestComputeFinancialKPIs(t *testing.T) {
	now := time.Date(2024, time.August, 15, 10, 0, 0, 0, time.UTC)
	window := Window{Start: day(2024, time.August, 1), End: day(2024, time.August, 31)}
	dueSeptember := day(2024, time.September, 5)

	payments := []models.Payment{
		{Amount: 200, Date: day(2024, time.August, 3), Status: models.PaymentRecordPaid},
		{Amount: 150, Date: now, Status: models.PaymentRecordPaid},
		{Amount: 100, Date: day(2024, time.July, 28), Status: models.PaymentRecordPaid},
		{Amount: 80, Date: day(2024, time.August, 10), Status: models.PaymentRecordPending},
		{Amount: 90, Date: day(2024, time.August, 1), DueDate: &dueSeptember, Status: models.PaymentRecordPending},
		{Amount: 60, Date: day(2024, time.August, 20), Status: models.PaymentRecordLate},
	}

	kpis := ComputeFinancialKPIs(payments, window, now)

	// Realized counts paid payments dated inside the window only.
	require.Equal(t, 350.0, kpis.RealizedRevenue)
	// The September-due pending payment falls outside the window.
	require.Equal(t, 80.0, kpis.PendingRevenue)
	require.Equal(t, 60.0, kpis.LateTotal)
	require.Equal(t, 150.0, kpis.TodayPaidAmount)
	require.Equal(t, 1, kpis.TodayPaidCount)
}

func TestTodayFiguresIgnoreWindow(t *testing.T) {
	now := time.Date(2024, time.August, 15, 10, 0, 0, 0, time.UTC)
	window := Window{Start: day(2024, time.July, 1), End: day(2024, time.July, 31)}

	payments := []models.Payment{
		{Amount: 120, Date: now, Status: models.PaymentRecordPaid},
	}

	kpis := ComputeFinancialKPIs(payments, window, now)

	require.Equal(t, 0.0, kpis.RealizedRevenue)
	require.Equal(t, 120.0, kpis.TodayPaidAmount)
	require.Equal(t, 1, kpis.TodayPaidCount)
}

func TestFlattenPayments(t *testing.T) {
	students := []models.Student{
		{ID: "aluno-1", Payments: []models.Payment{{ID: "pg-aluno-1-1"}, {ID: "pg-aluno-1-2"}}},
		{ID: "aluno-2"},
		{ID: "aluno-3", Payments: []models.Payment{{ID: "pg-aluno-3-1"}}},
	}

	require.Len(t, FlattenPayments(students), 3)
}
