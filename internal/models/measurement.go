package models

import "time"

// BodyMeasurement is a sparse body-composition record. Absent values are
// omitted from sums and skipped in averages by the report functions.
type BodyMeasurement struct {
	ID          string     `json:"id"`
	Date        time.Time  `json:"date"`
	WeightKg    *float64   `json:"weightKg,omitempty"`
	BodyFatPct  *float64   `json:"bodyFatPct,omitempty"`
	MusclePct   *float64   `json:"musclePct,omitempty"`
	WaistCm     *float64   `json:"waistCm,omitempty"`
	HipCm       *float64   `json:"hipCm,omitempty"`
	ChestCm     *float64   `json:"chestCm,omitempty"`
	ArmCm       *float64   `json:"armCm,omitempty"`
	ThighCm     *float64   `json:"thighCm,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	RecordedAt  time.Time  `json:"recordedAt"`
	NextReview  *time.Time `json:"nextReview,omitempty"`
}

// MetricValue returns the measurement value for a goal metric type, when
// the measurement carries it.
func (m BodyMeasurement) MetricValue(metricType string) (float64, bool) {
	var v *float64
	switch metricType {
	case MetricWeight:
		v = m.WeightKg
	case MetricBodyFat:
		v = m.BodyFatPct
	case MetricMuscle:
		v = m.MusclePct
	case MetricWaist:
		v = m.WaistCm
	}
	if v == nil {
		return 0, false
	}
	return *v, true
}

// SkinfoldEntry stores caliper site readings in millimetres.
type SkinfoldEntry struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	TricepsMm   *float64  `json:"tricepsMm,omitempty"`
	BicepsMm    *float64  `json:"bicepsMm,omitempty"`
	SubscapMm   *float64  `json:"subscapMm,omitempty"`
	SuprailacMm *float64  `json:"suprailiacMm,omitempty"`
	AbdominalMm *float64  `json:"abdominalMm,omitempty"`
	ThighMm     *float64  `json:"thighMm,omitempty"`
	CalfMm      *float64  `json:"calfMm,omitempty"`
	Notes       string    `json:"notes,omitempty"`
}

// Sum totals the recorded sites, skipping absent ones.
func (s SkinfoldEntry) Sum() float64 {
	total := 0.0
	for _, v := range []*float64{s.TricepsMm, s.BicepsMm, s.SubscapMm, s.SuprailacMm, s.AbdominalMm, s.ThighMm, s.CalfMm} {
		if v != nil {
			total += *v
		}
	}
	return total
}
