package report

import (
	"sort"
	"time"

	"github.com/fitstudio/studio-api/internal/models"
)

// DefaultDailyBucketMaxDays is the window span, in days, above which the
// revenue series switches from daily to monthly buckets. A heuristic, not
// an invariant; overridable through configuration.
const DefaultDailyBucketMaxDays = 90

// RevenueBucket is one sub-interval of the evolution series. Key is the
// stable chronological sort key ("2006-01-02" or "2006-01"); Label is the
// display string.
type RevenueBucket struct {
	Key      string  `json:"key"`
	Label    string  `json:"label"`
	Realized float64 `json:"realized"`
	Expected float64 `json:"expected"`
}

// RevenueEvolution buckets payments across the window. Buckets are dense:
// every day (or month) in range appears, zero-activity ones included.
// Realized amounts bucket by payment date; expected amounts by due date,
// falling back to payment date.
func RevenueEvolution(payments []models.Payment, window Window, dailyMaxDays int) []RevenueBucket {
	if dailyMaxDays <= 0 {
		dailyMaxDays = DefaultDailyBucketMaxDays
	}
	daily := window.Days() <= dailyMaxDays

	keyOf := func(t time.Time) string {
		if daily {
			return Day(t).Format("2006-01-02")
		}
		return Day(t).Format("2006-01")
	}
	labelOf := func(key string) string {
		if daily {
			return key[8:10] + "/" + key[5:7]
		}
		return key[5:7] + "/" + key[0:4]
	}

	// Dense boundary generation first, so zero-activity periods survive.
	buckets := make(map[string]*RevenueBucket)
	if daily {
		for d := window.Start; !d.After(window.End); d = d.AddDate(0, 0, 1) {
			key := d.Format("2006-01-02")
			buckets[key] = &RevenueBucket{Key: key, Label: labelOf(key)}
		}
	} else {
		for m := monthStart(window.Start); !m.After(window.End); m = m.AddDate(0, 1, 0) {
			key := m.Format("2006-01")
			buckets[key] = &RevenueBucket{Key: key, Label: labelOf(key)}
		}
	}

	for _, p := range payments {
		if p.Status == models.PaymentRecordPaid && window.Contains(p.Date) {
			if b, ok := buckets[keyOf(p.Date)]; ok {
				b.Realized += p.Amount
			}
		}
		if due := p.EffectiveDueDate(); window.Contains(due) {
			if b, ok := buckets[keyOf(due)]; ok {
				b.Expected += p.Amount
			}
		}
	}

	series := make([]RevenueBucket, 0, len(buckets))
	for _, b := range buckets {
		series = append(series, *b)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Key < series[j].Key })
	return series
}

func monthStart(t time.Time) time.Time {
	d := Day(t)
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}
