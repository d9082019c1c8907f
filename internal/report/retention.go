package report

import (
	"fmt"
	"time"

	"github.com/fitstudio/studio-api/internal/models"
)

// DefaultAvgMonthDays converts retention day counts into months for
// display.
const DefaultAvgMonthDays = 30.4375

// Retention summarises how long departed students stayed.
type Retention struct {
	AvgDays      float64 `json:"avgDays"`
	StudentCount int     `json:"studentCount"`
	Formatted    string  `json:"formatted"`
}

// ComputeRetention estimates tenure for students in a terminal status
// (inactive or expired) as the span between their start date and the
// latest of their last payment and last completed appointment. Students
// without a determinable end date are skipped.
func ComputeRetention(students []models.Student, appointments []models.Appointment, avgMonthDays float64) Retention {
	if avgMonthDays <= 0 {
		avgMonthDays = DefaultAvgMonthDays
	}

	lastCompleted := make(map[string]time.Time)
	for _, a := range appointments {
		if a.Status != models.AppointmentCompleted || a.StudentID == "" {
			continue
		}
		if cur, ok := lastCompleted[a.StudentID]; !ok || a.Date.After(cur) {
			lastCompleted[a.StudentID] = a.Date
		}
	}

	var totalDays float64
	var counted int
	for _, s := range students {
		if !s.IsTerminal() {
			continue
		}
		var end time.Time
		for _, p := range s.Payments {
			if p.Date.After(end) {
				end = p.Date
			}
		}
		if d, ok := lastCompleted[s.ID]; ok && d.After(end) {
			end = d
		}
		if end.IsZero() || end.Before(s.StartDate) {
			continue
		}
		totalDays += Day(end).Sub(Day(s.StartDate)).Hours() / 24
		counted++
	}

	ret := Retention{StudentCount: counted}
	if counted > 0 {
		ret.AvgDays = totalDays / float64(counted)
	}
	ret.Formatted = FormatMonthsDays(ret.AvgDays, avgMonthDays)
	return ret
}

// FormatMonthsDays renders a day count as "N months M days" using the
// given average month length.
func FormatMonthsDays(days, avgMonthDays float64) string {
	if avgMonthDays <= 0 {
		avgMonthDays = DefaultAvgMonthDays
	}
	months := int(days / avgMonthDays)
	rest := int(days - float64(months)*avgMonthDays)
	if rest < 0 {
		rest = 0
	}
	return fmt.Sprintf("%d months %d days", months, rest)
}
