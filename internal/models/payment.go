package models

import "time"

// PaymentRecordStatus is the user-set status of an individual payment.
type PaymentRecordStatus string

const (
	PaymentRecordPaid    PaymentRecordStatus = "paid"
	PaymentRecordPending PaymentRecordStatus = "pending"
	PaymentRecordLate    PaymentRecordStatus = "late"
)

// Payment is one entry in a student's payment history.
type Payment struct {
	ID      string              `json:"id"`
	Amount  float64             `json:"amount"`
	Date    time.Time           `json:"date"`
	DueDate *time.Time          `json:"dueDate,omitempty"`
	Status  PaymentRecordStatus `json:"status"`
	Method  string              `json:"method,omitempty"`
	Notes   string              `json:"notes,omitempty"`
}

// EffectiveDueDate returns the due date, falling back to the payment date
// when no due date was recorded. Pending and late amounts are windowed on
// this value.
func (p Payment) EffectiveDueDate() time.Time {
	if p.DueDate != nil {
		return *p.DueDate
	}
	return p.Date
}
