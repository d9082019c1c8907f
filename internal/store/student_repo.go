package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/fitstudio/studio-api/internal/models"
)

// StudentRepository manages the students collection. Writes always replace
// the full document.
type StudentRepository struct {
	st *Store
	q  sqlx.ExtContext
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(s *Store) *StudentRepository {
	return &StudentRepository{st: s, q: s.db}
}

// WithTx returns a copy bound to the given transaction.
func (r *StudentRepository) WithTx(tx *sqlx.Tx) *StudentRepository {
	return &StudentRepository{st: r.st, q: tx}
}

// Put inserts or replaces a student document, keeping the indexed status
// column in sync.
func (r *StudentRepository) Put(ctx context.Context, student *models.Student) error {
	raw, err := json.Marshal(student)
	if err != nil {
		return fmt.Errorf("encode student document: %w", err)
	}
	const query = `INSERT INTO students (id, status, doc) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET status = excluded.status, doc = excluded.doc`
	if _, err := r.q.ExecContext(ctx, query, student.ID, string(student.Status), raw); err != nil {
		return fmt.Errorf("put student: %w", err)
	}
	r.st.observeWrite("students")
	return nil
}

// Get fetches a student by id. sql.ErrNoRows passes through untouched.
func (r *StudentRepository) Get(ctx context.Context, id string) (*models.Student, error) {
	return getDoc[models.Student](ctx, r.q, "students", id)
}

// List returns students, optionally restricted to a status via the indexed
// column. Free-text search runs over the decoded documents.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	query := `SELECT doc FROM students`
	var args []interface{}
	if filter.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(filter.Status))
	}
	var rows [][]byte
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	students := make([]models.Student, 0, len(rows))
	needle := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, raw := range rows {
		var student models.Student
		if err := json.Unmarshal(raw, &student); err != nil {
			return nil, fmt.Errorf("decode student document: %w", err)
		}
		if needle != "" && !strings.Contains(strings.ToLower(student.FullName), needle) &&
			!strings.Contains(strings.ToLower(student.Email), needle) {
			continue
		}
		students = append(students, student)
	}
	return students, nil
}

// Delete removes a student document. Embedded sub-collections vanish with
// the row; the appointment cascade is the caller's transaction.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	if err := deleteDoc(ctx, r.q, "students", id); err != nil {
		return err
	}
	r.st.observeWrite("students")
	return nil
}

// CountByStatus partitions the collection by the indexed status column.
func (r *StudentRepository) CountByStatus(ctx context.Context) (map[models.StudentStatus]int, error) {
	rows, err := r.q.QueryxContext(ctx, `SELECT status, COUNT(*) FROM students GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count students by status: %w", err)
	}
	defer rows.Close()
	counts := make(map[models.StudentStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[models.StudentStatus(status)] = count
	}
	return counts, rows.Err()
}
