package models

import "time"

// WorkoutPlan is a training program embedded in a student document. At most
// one plan per student may be active at a time.
type WorkoutPlan struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Active    bool           `json:"active"`
	Goal      string         `json:"goal,omitempty"`
	Notes     string         `json:"notes,omitempty"`
	Exercises []PlanExercise `json:"exercises,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// PlanExercise is one ordered entry of a plan. LibraryExerciseID is a weak
// reference into the exercise catalog: lookup only, it may dangle after the
// catalog entry is deleted.
type PlanExercise struct {
	ID                string `json:"id"`
	LibraryExerciseID string `json:"libraryExerciseId,omitempty"`
	Name              string `json:"name"`
	Sets              int    `json:"sets,omitempty"`
	Reps              string `json:"reps,omitempty"`
	Load              string `json:"load,omitempty"`
	RestSeconds       int    `json:"restSeconds,omitempty"`
	Order             int    `json:"order"`
	Notes             string `json:"notes,omitempty"`
}
