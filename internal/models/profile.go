package models

import "time"

// TrainerProfileID is the singleton key of the trainer profile row.
const TrainerProfileID = "profile"

// TrainerProfile holds the trainer's own details.
type TrainerProfile struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	CREF         string    `json:"cref,omitempty"`
	BusinessName string    `json:"businessName,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PatchNote records what changed in an application version, keyed by the
// version string.
type PatchNote struct {
	Version     string    `json:"version"`
	ReleasedAt  time.Time `json:"releasedAt"`
	Description string    `json:"description"`
}
