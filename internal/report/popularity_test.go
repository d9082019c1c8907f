package report

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fitstudio/studio-api/internal/models"
)

func TestExercisePopularity(t *testing.T) {
	catalog := []models.LibraryExercise{
		{ID: "bib-1", Name: "Supino reto"},
		{ID: "bib-2", Name: "Agachamento livre"},
		{ID: "bib-3", Name: "Remada curvada"},
	}
	students := []models.Student{
		{Plans: []models.WorkoutPlan{
			{Exercises: []models.PlanExercise{
				{LibraryExerciseID: "bib-2"},
				{LibraryExerciseID: "bib-1"},
			}},
			{Exercises: []models.PlanExercise{
				{LibraryExerciseID: "bib-2"},
			}},
		}},
		{Plans: []models.WorkoutPlan{
			{Exercises: []models.PlanExercise{
				{LibraryExerciseID: "bib-2"},
				{LibraryExerciseID: "bib-gone"}, // dangling weak reference
				{LibraryExerciseID: ""},         // ad-hoc exercise, no catalog link
			}},
		}},
	}

	result := ExercisePopularity(students, catalog)

	require.Len(t, result, 3)
	require.Equal(t, "bib-2", result[0].ExerciseID)
	require.Equal(t, 3, result[0].Count)
	require.Equal(t, "bib-1", result[1].ExerciseID)
	require.Equal(t, 1, result[1].Count)
	// Unused exercises stay in the ranking with a zero count.
	require.Equal(t, "bib-3", result[2].ExerciseID)
	require.Equal(t, 0, result[2].Count)
}

func TestExercisePopularityTiesBreakByName(t *testing.T) {
	catalog := []models.LibraryExercise{
		{ID: "bib-1", Name: "Rosca direta"},
		{ID: "bib-2", Name: "Elevacao lateral"},
	}

	result := ExercisePopularity(nil, catalog)

	require.Equal(t, "Elevacao lateral", result[0].Name)
	require.Equal(t, "Rosca direta", result[1].Name)
}
