package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fitstudio/studio-api/internal/models"
	"github.com/fitstudio/studio-api/internal/report"
	"github.com/fitstudio/studio-api/pkg/config"
	appErrors "github.com/fitstudio/studio-api/pkg/errors"
)

func newReportService(t *testing.T) (*ReportService, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	svc := NewReportService(env.cache, config.ReportsConfig{
		DailyBucketMaxDays: 90,
		AvgMonthDays:       30.4375,
	}, nil)
	svc.now = fixedNow
	return svc, env
}

func seedReportStudent(env *testEnv) {
	due := time.Date(2024, 8, 20, 0, 0, 0, 0, time.UTC)
	env.cache.UpsertStudent(models.Student{
		ID:       "aluno-1",
		FullName: "Maria Silva",
		Status:   models.StudentStatusActive,
		Payments: []models.Payment{
			{ID: "pg-aluno-1-1", Amount: 150, Date: time.Date(2024, 8, 5, 0, 0, 0, 0, time.UTC), Status: models.PaymentRecordPaid},
			{ID: "pg-aluno-1-2", Amount: 80, Date: time.Date(2024, 8, 10, 0, 0, 0, 0, time.UTC), DueDate: &due, Status: models.PaymentRecordPending},
		},
	})
}

func TestFinancialReportDefaultsToCurrentMonth(t *testing.T) {
	ctx := context.Background()
	svc, env := newReportService(t)
	seedReportStudent(env)

	rep, err := svc.Financial(ctx, ReportRequest{})
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), rep.Window.Start)
	require.Equal(t, time.Date(2024, 8, 31, 0, 0, 0, 0, time.UTC), rep.Window.End)
	require.InDelta(t, 150, rep.KPIs.RealizedRevenue, 0.001)
	require.InDelta(t, 80, rep.KPIs.PendingRevenue, 0.001)

	// August has 31 days, so the evolution is daily and dense.
	require.Len(t, rep.Evolution, 31)
}

func TestFinancialReportRejectsBadCustomRange(t *testing.T) {
	ctx := context.Background()
	svc, _ := newReportService(t)

	start := testNow
	_, err := svc.Financial(ctx, ReportRequest{Kind: report.PeriodCustom, Start: &start})
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestEngagementReportFiltersByStatus(t *testing.T) {
	ctx := context.Background()
	svc, env := newReportService(t)
	env.cache.UpsertStudent(models.Student{ID: "aluno-1", FullName: "Ativa", Status: models.StudentStatusActive})
	env.cache.UpsertStudent(models.Student{ID: "aluno-2", FullName: "Pausada", Status: models.StudentStatusPaused})
	env.cache.UpsertAppointment(models.Appointment{
		ID:        "ag-1",
		StudentID: "aluno-1",
		Date:      time.Date(2024, 8, 10, 9, 0, 0, 0, time.UTC),
		Status:    models.AppointmentCompleted,
	})

	rep, err := svc.Engagement(ctx, ReportRequest{}, models.StudentStatusActive)
	require.NoError(t, err)
	require.Equal(t, 1, rep.KPIs.WorkoutStudentCount)
	require.InDelta(t, 1.0, rep.KPIs.AvgCompletedWorkouts, 0.001)
}

func TestExportFinancialCSVContent(t *testing.T) {
	ctx := context.Background()
	svc, env := newReportService(t)
	seedReportStudent(env)

	file, err := svc.ExportFinancialCSV(ctx, ReportRequest{})
	require.NoError(t, err)
	require.Equal(t, "text/csv", file.ContentType)
	require.True(t, strings.HasPrefix(file.Name, "financial-"))
	require.True(t, strings.HasSuffix(file.Name, ".csv"))

	lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
	require.Equal(t, "Period,Realized,Expected", lines[0])
	// 31 daily buckets plus the total row.
	require.Len(t, lines, 33)
	require.Equal(t, "Total,150.00,80.00", lines[len(lines)-1])
}

func TestExportFinancialPDF(t *testing.T) {
	ctx := context.Background()
	svc, env := newReportService(t)
	seedReportStudent(env)

	file, err := svc.ExportFinancialPDF(ctx, ReportRequest{})
	require.NoError(t, err)
	require.Equal(t, "application/pdf", file.ContentType)
	require.True(t, strings.HasSuffix(file.Name, ".pdf"))
	require.Equal(t, "%PDF", string(file.Data[:4]))
}

func TestRetentionAndPopularityReadSnapshot(t *testing.T) {
	ctx := context.Background()
	svc, env := newReportService(t)

	env.cache.UpsertExercise(models.LibraryExercise{ID: "bib-1", Name: "Supino reto"})
	env.cache.UpsertStudent(models.Student{
		ID:       "aluno-1",
		FullName: "Maria Silva",
		Status:   models.StudentStatusActive,
		Plans: []models.WorkoutPlan{{
			ID:        "treino-aluno-1-1",
			Name:      "Treino A",
			Exercises: []models.PlanExercise{{ID: "ex-aluno-1-1", Name: "Supino reto", LibraryExerciseID: "bib-1"}},
		}},
	})

	ret := svc.Retention(ctx)
	require.Zero(t, ret.StudentCount)

	pop := svc.Popularity(ctx)
	require.Len(t, pop, 1)
	require.Equal(t, "Supino reto", pop[0].Name)
	require.Equal(t, 1, pop[0].Count)
}
