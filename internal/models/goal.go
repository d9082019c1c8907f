package models

import "time"

// GoalStatus enumerates detailed-goal states.
type GoalStatus string

const (
	GoalStatusActive      GoalStatus = "active"
	GoalStatusAchieved    GoalStatus = "achieved"
	GoalStatusNotAchieved GoalStatus = "not_achieved"
	GoalStatusPaused      GoalStatus = "paused"
)

// DetailedGoal tracks a measurable target for a student. Progress is always
// derived from the three values below, never stored.
type DetailedGoal struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	MetricType   string     `json:"metricType"`
	InitialValue float64    `json:"initialValue"`
	CurrentValue float64    `json:"currentValue"`
	TargetValue  float64    `json:"targetValue"`
	Status       GoalStatus `json:"status"`
	StartDate    time.Time  `json:"startDate"`
	TargetDate   *time.Time `json:"targetDate,omitempty"`
	AchievedAt   *time.Time `json:"achievedAt,omitempty"`
}

// Common metric types used by goals and body measurements. Free-form values
// are allowed; these are the ones measurement writes can match against.
const (
	MetricWeight  = "weight_kg"
	MetricBodyFat = "body_fat_pct"
	MetricMuscle  = "muscle_pct"
	MetricWaist   = "waist_cm"
)
