package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/fitstudio/studio-api/internal/models"
)

// AppointmentRepository manages the appointments collection.
type AppointmentRepository struct {
	st *Store
	q  sqlx.ExtContext
}

// NewAppointmentRepository constructs an AppointmentRepository.
func NewAppointmentRepository(s *Store) *AppointmentRepository {
	return &AppointmentRepository{st: s, q: s.db}
}

// WithTx returns a copy bound to the given transaction.
func (r *AppointmentRepository) WithTx(tx *sqlx.Tx) *AppointmentRepository {
	return &AppointmentRepository{st: r.st, q: tx}
}

// Put inserts or replaces an appointment, keeping the indexed student_id,
// status and date columns in sync with the document.
func (r *AppointmentRepository) Put(ctx context.Context, appt *models.Appointment) error {
	raw, err := json.Marshal(appt)
	if err != nil {
		return fmt.Errorf("encode appointment document: %w", err)
	}
	const query = `INSERT INTO appointments (id, student_id, status, date, doc) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET student_id = excluded.student_id, status = excluded.status,
		date = excluded.date, doc = excluded.doc`
	if _, err := r.q.ExecContext(ctx, query, appt.ID, appt.StudentID, string(appt.Status), encodeDate(appt.Date), raw); err != nil {
		return fmt.Errorf("put appointment: %w", err)
	}
	r.st.observeWrite("appointments")
	return nil
}

// Get fetches an appointment by id. sql.ErrNoRows passes through untouched.
func (r *AppointmentRepository) Get(ctx context.Context, id string) (*models.Appointment, error) {
	return getDoc[models.Appointment](ctx, r.q, "appointments", id)
}

// List returns appointments matching the filter, ordered chronologically.
// All filterable attributes are indexed columns.
func (r *AppointmentRepository) List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error) {
	conditions := []string{"1=1"}
	var args []interface{}
	if filter.StudentID != "" {
		conditions = append(conditions, "student_id = ?")
		args = append(args, filter.StudentID)
	}
	if filter.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.From != nil {
		conditions = append(conditions, "date >= ?")
		args = append(args, encodeDate(*filter.From))
	}
	if filter.To != nil {
		conditions = append(conditions, "date <= ?")
		args = append(args, encodeDate(*filter.To))
	}
	query := fmt.Sprintf(`SELECT doc FROM appointments WHERE %s ORDER BY date ASC`, strings.Join(conditions, " AND "))
	var rows [][]byte
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	appointments := make([]models.Appointment, 0, len(rows))
	for _, raw := range rows {
		var appt models.Appointment
		if err := json.Unmarshal(raw, &appt); err != nil {
			return nil, fmt.Errorf("decode appointment document: %w", err)
		}
		appointments = append(appointments, appt)
	}
	return appointments, nil
}

// Delete removes a single appointment.
func (r *AppointmentRepository) Delete(ctx context.Context, id string) error {
	if err := deleteDoc(ctx, r.q, "appointments", id); err != nil {
		return err
	}
	r.st.observeWrite("appointments")
	return nil
}

// DeleteByStudent bulk-removes every appointment referencing the student.
// Runs inside the student-deletion transaction.
func (r *AppointmentRepository) DeleteByStudent(ctx context.Context, studentID string) (int64, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM appointments WHERE student_id = ?`, studentID)
	if err != nil {
		return 0, fmt.Errorf("delete appointments for %s: %w", studentID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		r.st.observeWrite("appointments")
	}
	return affected, nil
}
