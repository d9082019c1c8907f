package report

import "github.com/fitstudio/studio-api/internal/models"

// GoalProgress returns the derived completion percentage of a goal,
// clamped to [0, 100]. Goals moving down (body fat, waist) and up
// (muscle mass) are both handled by the sign of the target range.
//
// A zero-width range (initial == target) cannot be interpolated: it
// reports 100 when the current value has reached the target and 0
// otherwise.
func GoalProgress(goal models.DetailedGoal) float64 {
	span := goal.TargetValue - goal.InitialValue
	if span == 0 {
		if goal.CurrentValue >= goal.TargetValue {
			return 100
		}
		return 0
	}
	progress := (goal.CurrentValue - goal.InitialValue) / span * 100
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// GoalSuggestion proposes updating a goal's current value after a new
// measurement was recorded. The caller decides whether to surface it.
type GoalSuggestion struct {
	GoalID         string  `json:"goalId"`
	GoalTitle      string  `json:"goalTitle"`
	MetricType     string  `json:"metricType"`
	CurrentValue   float64 `json:"currentValue"`
	SuggestedValue float64 `json:"suggestedValue"`
}

// SuggestGoalUpdates matches a new measurement against the student's
// active goals and proposes current-value updates for every goal whose
// metric the measurement carries a value for.
func SuggestGoalUpdates(measurement models.BodyMeasurement, goals []models.DetailedGoal) []GoalSuggestion {
	var suggestions []GoalSuggestion
	for _, goal := range goals {
		if goal.Status != models.GoalStatusActive {
			continue
		}
		value, ok := measurement.MetricValue(goal.MetricType)
		if !ok || value == goal.CurrentValue {
			continue
		}
		suggestions = append(suggestions, GoalSuggestion{
			GoalID:         goal.ID,
			GoalTitle:      goal.Title,
			MetricType:     goal.MetricType,
			CurrentValue:   goal.CurrentValue,
			SuggestedValue: value,
		})
	}
	return suggestions
}
