package report

import (
	"github.com/fitstudio/studio-api/internal/models"
)

// EngagementKPIs are the per-student activity averages for a window.
type EngagementKPIs struct {
	AvgCompletedWorkouts float64 `json:"avgCompletedWorkouts"`
	AvgProgressUpdates   float64 `json:"avgProgressUpdates"`
	WorkoutStudentCount  int     `json:"workoutStudentCount"`
	ProgressStudentCount int     `json:"progressStudentCount"`
}

// ComputeEngagementKPIs averages completed workout appointments and
// progress-update events (body measurements plus diary entries) per
// student. Each average divides by the number of students with at least
// one qualifying event in the window, not by all matching students: a
// roster full of inactive profiles must not drag the averages down.
func ComputeEngagementKPIs(students []models.Student, appointments []models.Appointment, window Window, statusFilter models.StudentStatus) EngagementKPIs {
	completedByStudent := make(map[string]int)
	for _, a := range appointments {
		if a.Status != models.AppointmentCompleted || a.StudentID == "" {
			continue
		}
		if !window.Contains(a.Date) {
			continue
		}
		completedByStudent[a.StudentID]++
	}

	var kpis EngagementKPIs
	var workoutTotal, progressTotal int
	for _, s := range students {
		if statusFilter != "" && s.Status != statusFilter {
			continue
		}
		if n := completedByStudent[s.ID]; n > 0 {
			workoutTotal += n
			kpis.WorkoutStudentCount++
		}
		updates := 0
		for _, m := range s.Measurements {
			if window.Contains(m.Date) {
				updates++
			}
		}
		for _, d := range s.DiaryEntries {
			if window.Contains(d.Date) {
				updates++
			}
		}
		if updates > 0 {
			progressTotal += updates
			kpis.ProgressStudentCount++
		}
	}

	if kpis.WorkoutStudentCount > 0 {
		kpis.AvgCompletedWorkouts = float64(workoutTotal) / float64(kpis.WorkoutStudentCount)
	}
	if kpis.ProgressStudentCount > 0 {
		kpis.AvgProgressUpdates = float64(progressTotal) / float64(kpis.ProgressStudentCount)
	}
	return kpis
}
