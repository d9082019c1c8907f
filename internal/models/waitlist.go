package models

import "time"

// WaitlistStatus enumerates waitlist entry states.
type WaitlistStatus string

const (
	WaitlistPending   WaitlistStatus = "pending"
	WaitlistContacted WaitlistStatus = "contacted"
	WaitlistConverted WaitlistStatus = "converted"
	WaitlistDiscarded WaitlistStatus = "discarded"
)

// WaitlistPerson is a prospect waiting for an open slot. Promotion creates
// a student and flips the entry to converted; the record is never deleted
// by promotion.
type WaitlistPerson struct {
	ID                 string         `json:"id"`
	FullName           string         `json:"fullName"`
	Phone              string         `json:"phone,omitempty"`
	Email              string         `json:"email,omitempty"`
	Interest           string         `json:"interest,omitempty"`
	Status             WaitlistStatus `json:"status"`
	ContactedAt        *time.Time     `json:"contactedAt,omitempty"`
	ConvertedStudentID string         `json:"convertedStudentId,omitempty"`
	Notes              string         `json:"notes,omitempty"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}
