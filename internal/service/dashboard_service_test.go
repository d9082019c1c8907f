package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fitstudio/studio-api/internal/models"
)

func TestDashboardSummary(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewDashboardService(env.cache, nil)
	svc.now = fixedNow

	env.cache.UpsertStudent(models.Student{
		ID: "aluno-1", FullName: "Maria Silva", Status: models.StudentStatusActive,
		Payments: []models.Payment{
			{ID: "pg-aluno-1-1", Amount: 150, Date: testNow, Status: models.PaymentRecordPaid},
		},
	})
	env.cache.UpsertStudent(models.Student{ID: "aluno-2", FullName: "Paused", Status: models.StudentStatusPaused})

	// Two sessions today out of order, one tomorrow, one cancelled today.
	env.cache.UpsertAppointment(models.Appointment{ID: "ag-1", Date: testNow.Add(4 * time.Hour), Status: models.AppointmentScheduled})
	env.cache.UpsertAppointment(models.Appointment{ID: "ag-2", Date: testNow.Add(-2 * time.Hour), Status: models.AppointmentScheduled})
	env.cache.UpsertAppointment(models.Appointment{ID: "ag-3", Date: testNow.Add(26 * time.Hour), Status: models.AppointmentScheduled})
	env.cache.UpsertAppointment(models.Appointment{ID: "ag-4", Date: testNow.Add(time.Hour), Status: models.AppointmentCancelled})

	env.cache.UpsertWaitlist(models.WaitlistPerson{ID: "espera-1", FullName: "A", Status: models.WaitlistPending})
	env.cache.UpsertWaitlist(models.WaitlistPerson{ID: "espera-2", FullName: "B", Status: models.WaitlistConverted})

	dash, err := svc.Summary(ctx)
	require.NoError(t, err)

	require.Equal(t, 1, dash.StatusCounts.Active)
	require.Equal(t, 1, dash.StatusCounts.Paused)
	require.InDelta(t, 150, dash.Financial.RealizedRevenue, 0.001)
	require.InDelta(t, 150, dash.Financial.TodayPaidAmount, 0.001)
	require.Equal(t, 1, dash.Financial.TodayPaidCount)

	require.Len(t, dash.TodayAppointments, 2)
	require.Equal(t, "ag-2", dash.TodayAppointments[0].ID)
	require.Equal(t, "ag-1", dash.TodayAppointments[1].ID)

	require.Equal(t, 1, dash.PendingWaitlist)
	require.Equal(t, testNow, dash.GeneratedAt)
}

func TestDashboardSummaryEmpty(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	svc := NewDashboardService(env.cache, nil)
	svc.now = fixedNow

	dash, err := svc.Summary(ctx)
	require.NoError(t, err)
	require.Zero(t, dash.StatusCounts.Active)
	require.Empty(t, dash.TodayAppointments)
	require.Zero(t, dash.PendingWaitlist)
}
