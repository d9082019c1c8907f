package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fitstudio/studio-api/internal/models"
)

func TestComputeEngagementKPIs(t *testing.T) {
	window := Window{Start: day(2024, time.August, 1), End: day(2024, time.August, 31)}

	students := []models.Student{
		{ID: "aluno-1", Status: models.StudentStatusActive, Measurements: []models.BodyMeasurement{
			{Date: day(2024, time.August, 5)},
			{Date: day(2024, time.August, 20)},
		}},
		{ID: "aluno-2", Status: models.StudentStatusActive, DiaryEntries: []models.DiaryEntry{
			{Date: day(2024, time.August, 12)},
		}},
		{ID: "aluno-3", Status: models.StudentStatusActive},
		{ID: "aluno-4", Status: models.StudentStatusInactive, Measurements: []models.BodyMeasurement{
			{Date: day(2024, time.August, 9)},
		}},
	}
	appointments := []models.Appointment{
		{StudentID: "aluno-1", Status: models.AppointmentCompleted, Date: day(2024, time.August, 2)},
		{StudentID: "aluno-1", Status: models.AppointmentCompleted, Date: day(2024, time.August, 9)},
		{StudentID: "aluno-1", Status: models.AppointmentCompleted, Date: day(2024, time.August, 16)},
		{StudentID: "aluno-2", Status: models.AppointmentCompleted, Date: day(2024, time.August, 3)},
		{StudentID: "aluno-2", Status: models.AppointmentCancelled, Date: day(2024, time.August, 10)},
		{StudentID: "aluno-3", Status: models.AppointmentCompleted, Date: day(2024, time.July, 20)},
		{Status: models.AppointmentCompleted, Date: day(2024, time.August, 4)},
	}

	kpis := ComputeEngagementKPIs(students, appointments, window, models.StudentStatusActive)

	// Only students with at least one qualifying event enter a denominator.
	require.Equal(t, 2, kpis.WorkoutStudentCount)
	require.InDelta(t, 2.0, kpis.AvgCompletedWorkouts, 0.001)
	require.Equal(t, 2, kpis.ProgressStudentCount)
	require.InDelta(t, 1.5, kpis.AvgProgressUpdates, 0.001)
}

func TestComputeEngagementKPIsEmptyWindow(t *testing.T) {
	window := Window{Start: day(2030, time.January, 1), End: day(2030, time.January, 31)}
	students := []models.Student{{ID: "aluno-1", Status: models.StudentStatusActive}}

	kpis := ComputeEngagementKPIs(students, nil, window, "")

	require.Zero(t, kpis.AvgCompletedWorkouts)
	require.Zero(t, kpis.AvgProgressUpdates)
	require.Zero(t, kpis.WorkoutStudentCount)
	require.Zero(t, kpis.ProgressStudentCount)
}
