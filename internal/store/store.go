package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// dateLayout is the canonical encoding for indexed date columns. Seconds
// precision in UTC keeps lexicographic order equal to chronological order.
const dateLayout = "2006-01-02T15:04:05Z"

func encodeDate(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(dateLayout)
}

// Observer receives store-level events for instrumentation. Implementations
// must be safe for concurrent use.
type Observer interface {
	ObserveStoreWrite(collection string)
	ObserveTransaction(outcome string)
	ObserveAllocation(kind string)
}

// Store owns the embedded database and coordinates transactions across
// collections. Every collection repository is constructed from it.
type Store struct {
	db  *sqlx.DB
	obs Observer
}

// New wraps an opened database.
func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// SetObserver attaches an instrumentation sink. A nil observer disables
// observation; repositories and allocators built from this store pick the
// observer up dynamically.
func (s *Store) SetObserver(obs Observer) {
	s.obs = obs
}

func (s *Store) observeWrite(collection string) {
	if s == nil || s.obs == nil {
		return
	}
	s.obs.ObserveStoreWrite(collection)
}

func (s *Store) observeTx(outcome string) {
	if s == nil || s.obs == nil {
		return
	}
	s.obs.ObserveTransaction(outcome)
}

func (s *Store) observeAllocation(kind string) {
	if s == nil || s.obs == nil {
		return
	}
	s.obs.ObserveAllocation(kind)
}

// DB exposes the underlying handle for repository construction.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// InTx runs fn inside a single transaction. If fn returns an error the
// transaction is rolled back and none of its writes are observable.
func (s *Store) InTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			return fmt.Errorf("rollback after %v: %w", err, rbErr)
		}
		s.observeTx("rolled_back")
		return err
	}
	if err := tx.Commit(); err != nil {
		s.observeTx("rolled_back")
		return fmt.Errorf("commit transaction: %w", err)
	}
	s.observeTx("committed")
	return nil
}

// putDoc writes a full document, replacing any previous version. Partial
// updates are not supported anywhere in the store.
func putDoc(ctx context.Context, q sqlx.ExtContext, table, id string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s document: %w", table, err)
	}
	query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES (?, ?) ON CONFLICT(id) DO UPDATE SET doc = excluded.doc`, table)
	if _, err := q.ExecContext(ctx, query, id, raw); err != nil {
		return fmt.Errorf("put %s: %w", table, err)
	}
	return nil
}

// getDoc loads one document by primary key. sql.ErrNoRows passes through
// for callers to map to a not-found error.
func getDoc[T any](ctx context.Context, q sqlx.ExtContext, table, id string) (*T, error) {
	var raw []byte
	if err := sqlx.GetContext(ctx, q, &raw, fmt.Sprintf(`SELECT doc FROM %s WHERE id = ?`, table), id); err != nil {
		return nil, err
	}
	out := new(T)
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("decode %s document: %w", table, err)
	}
	return out, nil
}

// listDocs loads every document of a collection.
func listDocs[T any](ctx context.Context, q sqlx.ExtContext, table, orderBy string) ([]T, error) {
	query := fmt.Sprintf(`SELECT doc FROM %s`, table)
	if orderBy != "" {
		query += " ORDER BY " + orderBy
	}
	var rows [][]byte
	if err := sqlx.SelectContext(ctx, q, &rows, query); err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	out := make([]T, 0, len(rows))
	for _, raw := range rows {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("decode %s document: %w", table, err)
		}
		out = append(out, item)
	}
	return out, nil
}

func deleteDoc(ctx context.Context, q sqlx.ExtContext, table, id string) error {
	if _, err := q.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table), id); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}
