package report

import (
	"fmt"
	"time"
)

// PeriodKind names a reporting window.
type PeriodKind string

const (
	PeriodCurrentMonth   PeriodKind = "current_month"
	PeriodCurrentQuarter PeriodKind = "current_quarter"
	PeriodCurrentYear    PeriodKind = "current_year"
	PeriodLast30Days     PeriodKind = "last_30_days"
	PeriodLast90Days     PeriodKind = "last_90_days"
	PeriodCustom         PeriodKind = "custom"
)

// Window is an inclusive [Start, End] date pair at day granularity. Start
// and End are always midnight UTC of the first and last day.
type Window struct {
	Start time.Time
	End   time.Time
}

// Day truncates a timestamp to its UTC calendar day.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Contains reports whether the timestamp's calendar day falls inside the
// window, endpoints included.
func (w Window) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Days returns the number of calendar days the window spans, inclusive.
func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours()/24) + 1
}

// ResolveWindow turns a period kind into a concrete window anchored on the
// supplied wall-clock now. Named periods must be re-resolved on every
// request; nothing here is cached.
func ResolveWindow(kind PeriodKind, now time.Time, customStart, customEnd *time.Time) (Window, error) {
	today := Day(now)
	switch kind {
	case PeriodCurrentMonth:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, -1)
		return Window{Start: start, End: end}, nil
	case PeriodCurrentQuarter:
		quarterMonth := time.Month((int(today.Month())-1)/3*3 + 1)
		start := time.Date(today.Year(), quarterMonth, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 3, -1)
		return Window{Start: start, End: end}, nil
	case PeriodCurrentYear:
		start := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
		return Window{Start: start, End: end}, nil
	case PeriodLast30Days:
		return Window{Start: today.AddDate(0, 0, -29), End: today}, nil
	case PeriodLast90Days:
		return Window{Start: today.AddDate(0, 0, -89), End: today}, nil
	case PeriodCustom:
		if customStart == nil || customEnd == nil {
			return Window{}, fmt.Errorf("custom window requires both start and end")
		}
		start, end := Day(*customStart), Day(*customEnd)
		if end.Before(start) {
			return Window{}, fmt.Errorf("custom window end precedes start")
		}
		return Window{Start: start, End: end}, nil
	default:
		return Window{}, fmt.Errorf("unknown period kind %q", kind)
	}
}
