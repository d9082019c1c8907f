package report

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fitstudio/studio-api/internal/models"
)

func TestGoalProgress(t *testing.T) {
	cases := []struct {
		name    string
		initial float64
		current float64
		target  float64
		want    float64
	}{
		{"halfway down", 90, 85, 80, 50},
		{"halfway up", 30, 35, 40, 50},
		{"not started", 90, 90, 80, 0},
		{"done", 90, 80, 80, 100},
		{"overshoot clamps to 100", 90, 75, 80, 100},
		{"regression clamps to 0", 90, 95, 80, 0},
		{"zero span reached", 80, 80, 80, 100},
		{"zero span above target", 80, 85, 80, 100},
		{"zero span below target", 80, 70, 80, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			goal := models.DetailedGoal{
				InitialValue: tc.initial,
				CurrentValue: tc.current,
				TargetValue:  tc.target,
			}
			require.InDelta(t, tc.want, GoalProgress(goal), 0.001)
		})
	}
}

func TestSuggestGoalUpdates(t *testing.T) {
	weight := 82.5
	goals := []models.DetailedGoal{
		{ID: "meta-aluno-1-1", Title: "Cut to 80kg", MetricType: models.MetricWeight, CurrentValue: 85, Status: models.GoalStatusActive},
		{ID: "meta-aluno-1-2", Title: "Waist", MetricType: models.MetricWaist, CurrentValue: 90, Status: models.GoalStatusActive},
		{ID: "meta-aluno-1-3", Title: "Old goal", MetricType: models.MetricWeight, CurrentValue: 88, Status: models.GoalStatusAchieved},
	}
	measurement := models.BodyMeasurement{WeightKg: &weight}

	suggestions := SuggestGoalUpdates(measurement, goals)

	require.Len(t, suggestions, 1)
	require.Equal(t, "meta-aluno-1-1", suggestions[0].GoalID)
	require.Equal(t, 85.0, suggestions[0].CurrentValue)
	require.Equal(t, 82.5, suggestions[0].SuggestedValue)
}

func TestSuggestGoalUpdatesSkipsUnchangedValues(t *testing.T) {
	weight := 85.0
	goals := []models.DetailedGoal{
		{ID: "meta-aluno-1-1", MetricType: models.MetricWeight, CurrentValue: 85, Status: models.GoalStatusActive},
	}

	require.Empty(t, SuggestGoalUpdates(models.BodyMeasurement{WeightKg: &weight}, goals))
}
