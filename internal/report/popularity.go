package report

import (
	"sort"

	"github.com/fitstudio/studio-api/internal/models"
)

// ExerciseCount pairs a catalog exercise with its usage count across all
// students' workout plans.
type ExerciseCount struct {
	ExerciseID string `json:"exerciseId"`
	Name       string `json:"name"`
	Count      int    `json:"count"`
}

// ExercisePopularity counts how many plan entries reference each catalog
// exercise. Unused catalog entries stay in the result with a zero count so
// the report can surface them. References to deleted catalog entries are
// dangling weak references and are not counted.
func ExercisePopularity(students []models.Student, catalog []models.LibraryExercise) []ExerciseCount {
	counts := make(map[string]int, len(catalog))
	for _, ex := range catalog {
		counts[ex.ID] = 0
	}
	for _, s := range students {
		for _, plan := range s.Plans {
			for _, entry := range plan.Exercises {
				if entry.LibraryExerciseID == "" {
					continue
				}
				if _, ok := counts[entry.LibraryExerciseID]; ok {
					counts[entry.LibraryExerciseID]++
				}
			}
		}
	}

	result := make([]ExerciseCount, 0, len(catalog))
	for _, ex := range catalog {
		result = append(result, ExerciseCount{ExerciseID: ex.ID, Name: ex.Name, Count: counts[ex.ID]})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Name < result[j].Name
	})
	return result
}
