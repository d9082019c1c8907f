package report

import "github.com/fitstudio/studio-api/internal/models"

// RollupPaymentStatus derives a student's payment standing from their
// payment history. Priority order is fixed: any late payment wins, then
// any pending one; an empty history is on time.
func RollupPaymentStatus(payments []models.Payment) models.PaymentStatus {
	status := models.PaymentStatusOnTime
	for _, p := range payments {
		switch p.Status {
		case models.PaymentRecordLate:
			return models.PaymentStatusLate
		case models.PaymentRecordPending:
			status = models.PaymentStatusPending
		}
	}
	return status
}

// StatusCounts is the dashboard partition of students by lifecycle status.
type StatusCounts struct {
	Active   int `json:"active"`
	Expired  int `json:"expired"`
	Blocked  int `json:"blocked"`
	Inactive int `json:"inactive"`
	Paused   int `json:"paused"`
	Total    int `json:"total"`
}

// CountByStatus partitions the student collection by status.
func CountByStatus(students []models.Student) StatusCounts {
	var counts StatusCounts
	for _, s := range students {
		switch s.Status {
		case models.StudentStatusActive:
			counts.Active++
		case models.StudentStatusExpired:
			counts.Expired++
		case models.StudentStatusBlocked:
			counts.Blocked++
		case models.StudentStatusInactive:
			counts.Inactive++
		case models.StudentStatusPaused:
			counts.Paused++
		}
		counts.Total++
	}
	return counts
}
