package models

import "time"

// StudentStatus enumerates the lifecycle states of a student.
type StudentStatus string

const (
	StudentStatusActive   StudentStatus = "active"
	StudentStatusExpired  StudentStatus = "expired"
	StudentStatusBlocked  StudentStatus = "blocked"
	StudentStatusInactive StudentStatus = "inactive"
	StudentStatusPaused   StudentStatus = "paused"
)

// PaymentStatus is the rolled-up payment standing of a student, derived
// from the payment history on every write and never set directly.
type PaymentStatus string

const (
	PaymentStatusOnTime  PaymentStatus = "on_time"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusLate    PaymentStatus = "late"
)

// TerminalStatuses are the states that end a student's tenure.
var TerminalStatuses = []StudentStatus{StudentStatusInactive, StudentStatusExpired}

// Student is the root document of the store. Every sub-collection below is
// embedded: it lives and dies with the student record.
type Student struct {
	ID            string        `json:"id"`
	FullName      string        `json:"fullName"`
	Email         string        `json:"email,omitempty"`
	Phone         string        `json:"phone,omitempty"`
	BirthDate     *time.Time    `json:"birthDate,omitempty"`
	StartDate     time.Time     `json:"startDate"`
	Status        StudentStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	Objective     string        `json:"objective,omitempty"`
	Notes         string        `json:"notes,omitempty"`

	Plans        []WorkoutPlan     `json:"plans,omitempty"`
	Measurements []BodyMeasurement `json:"measurements,omitempty"`
	Skinfolds    []SkinfoldEntry   `json:"skinfolds,omitempty"`
	SessionNotes []SessionNote     `json:"sessionNotes,omitempty"`
	DiaryEntries []DiaryEntry      `json:"diaryEntries,omitempty"`
	Goals        []DetailedGoal    `json:"goals,omitempty"`
	Payments     []Payment         `json:"payments,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ActivePlan returns the currently active workout plan, if any.
func (s *Student) ActivePlan() *WorkoutPlan {
	for i := range s.Plans {
		if s.Plans[i].Active {
			return &s.Plans[i]
		}
	}
	return nil
}

// IsTerminal reports whether the student's status ends their tenure.
func (s *Student) IsTerminal() bool {
	for _, st := range TerminalStatuses {
		if s.Status == st {
			return true
		}
	}
	return false
}

// StudentFilter narrows student listings.
type StudentFilter struct {
	Status StudentStatus
	Search string
}

// SessionNote is a free-form note taken during or after a training session.
type SessionNote struct {
	ID   string    `json:"id"`
	Date time.Time `json:"date"`
	Text string    `json:"text"`
}

// DiaryEntry is a student-facing progress diary record. Diary entries count
// as progress updates for engagement reporting.
type DiaryEntry struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Mood        string    `json:"mood,omitempty"`
	EnergyLevel *int      `json:"energyLevel,omitempty"`
	Text        string    `json:"text,omitempty"`
}
