package store

import (
	"context"
	"fmt"
)

// Schema is fixed at startup. Tables hold one JSON document per row plus
// the small fixed set of indexed attributes the queries need.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS students (
		id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		doc TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_students_status ON students(status)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		date TEXT NOT NULL,
		doc TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_student ON appointments(student_id)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_status ON appointments(status)`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_date ON appointments(date)`,
	`CREATE TABLE IF NOT EXISTS waitlist (
		id TEXT PRIMARY KEY,
		status TEXT NOT NULL,
		doc TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_waitlist_status ON waitlist(status)`,
	`CREATE TABLE IF NOT EXISTS workout_templates (id TEXT PRIMARY KEY, doc TEXT NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS library_exercises (id TEXT PRIMARY KEY, doc TEXT NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS communication_templates (id TEXT PRIMARY KEY, doc TEXT NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS trainer_profile (id TEXT PRIMARY KEY, doc TEXT NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS patch_notes (id TEXT PRIMARY KEY, doc TEXT NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS counters (
		name TEXT PRIMARY KEY,
		value INTEGER NOT NULL DEFAULT 0
	)`,
}

// EnsureSchema creates missing tables and seeds missing counter rows. It is
// idempotent and is the only form of migration the store performs.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return s.seedCounters(ctx)
}

// seedCounters inserts a zero row for every global counter that does not
// exist yet. Scoped (per-student) counters are created lazily on first
// allocation.
func (s *Store) seedCounters(ctx context.Context) error {
	for _, kind := range allKinds {
		if scopedKinds[kind] {
			continue
		}
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO counters (name, value) VALUES (?, 0) ON CONFLICT(name) DO NOTHING`,
			prefixes[kind],
		); err != nil {
			return fmt.Errorf("seed counter %s: %w", kind, err)
		}
	}
	return nil
}
