package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fitstudio/studio-api/internal/models"
)

// WaitlistRepository manages the waitlist collection.
type WaitlistRepository struct {
	st *Store
	q  sqlx.ExtContext
}

// NewWaitlistRepository constructs a WaitlistRepository.
func NewWaitlistRepository(s *Store) *WaitlistRepository {
	return &WaitlistRepository{st: s, q: s.db}
}

// WithTx returns a copy bound to the given transaction.
func (r *WaitlistRepository) WithTx(tx *sqlx.Tx) *WaitlistRepository {
	return &WaitlistRepository{st: r.st, q: tx}
}

// Put inserts or replaces a waitlist entry, keeping the indexed status
// column in sync.
func (r *WaitlistRepository) Put(ctx context.Context, person *models.WaitlistPerson) error {
	raw, err := json.Marshal(person)
	if err != nil {
		return fmt.Errorf("encode waitlist document: %w", err)
	}
	const query = `INSERT INTO waitlist (id, status, doc) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET status = excluded.status, doc = excluded.doc`
	if _, err := r.q.ExecContext(ctx, query, person.ID, string(person.Status), raw); err != nil {
		return fmt.Errorf("put waitlist entry: %w", err)
	}
	r.st.observeWrite("waitlist")
	return nil
}

// Get fetches a waitlist entry by id.
func (r *WaitlistRepository) Get(ctx context.Context, id string) (*models.WaitlistPerson, error) {
	return getDoc[models.WaitlistPerson](ctx, r.q, "waitlist", id)
}

// List returns waitlist entries, optionally filtered by status.
func (r *WaitlistRepository) List(ctx context.Context, status models.WaitlistStatus) ([]models.WaitlistPerson, error) {
	query := `SELECT doc FROM waitlist`
	var args []interface{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	var rows [][]byte
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list waitlist: %w", err)
	}
	people := make([]models.WaitlistPerson, 0, len(rows))
	for _, raw := range rows {
		var person models.WaitlistPerson
		if err := json.Unmarshal(raw, &person); err != nil {
			return nil, fmt.Errorf("decode waitlist document: %w", err)
		}
		people = append(people, person)
	}
	return people, nil
}

// Delete removes a waitlist entry.
func (r *WaitlistRepository) Delete(ctx context.Context, id string) error {
	if err := deleteDoc(ctx, r.q, "waitlist", id); err != nil {
		return err
	}
	r.st.observeWrite("waitlist")
	return nil
}
