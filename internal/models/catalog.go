package models

import "time"

// WorkoutTemplate is a reusable plan blueprint in the global catalog.
type WorkoutTemplate struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Level       string         `json:"level,omitempty"`
	Exercises   []PlanExercise `json:"exercises,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// LibraryExercise is a catalog exercise referenced weakly from plans.
type LibraryExercise struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	MuscleGroup string    `json:"muscleGroup,omitempty"`
	Equipment   string    `json:"equipment,omitempty"`
	Description string    `json:"description,omitempty"`
	VideoURL    string    `json:"videoUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CommunicationTemplate is a canned message for student outreach.
type CommunicationTemplate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Channel   string    `json:"channel,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
