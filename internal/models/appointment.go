package models

import "time"

// AppointmentStatus enumerates appointment states.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// Appointment is a calendar entry. StudentID is optional: blocked slots and
// trial sessions have no student attached. A reschedule never moves an
// appointment; it cancels this one and creates a new one.
type Appointment struct {
	ID              string            `json:"id"`
	StudentID       string            `json:"studentId,omitempty"`
	Title           string            `json:"title"`
	Date            time.Time         `json:"date"`
	DurationMinutes int               `json:"durationMinutes,omitempty"`
	Status          AppointmentStatus `json:"status"`
	Kind            string            `json:"kind,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	CancelReason    string            `json:"cancelReason,omitempty"`
	RescheduledTo   string            `json:"rescheduledTo,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// AppointmentFilter narrows appointment scans on the indexed attributes.
type AppointmentFilter struct {
	StudentID string
	Status    AppointmentStatus
	From      *time.Time
	To        *time.Time
}
