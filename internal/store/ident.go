package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Kind names an identifier sequence.
type Kind string

const (
	KindStudent         Kind = "student"
	KindAppointment     Kind = "appointment"
	KindPayment         Kind = "payment"
	KindGoal            Kind = "goal"
	KindMeasurement     Kind = "measurement"
	KindSkinfold        Kind = "skinfold"
	KindSessionNote     Kind = "session_note"
	KindDiaryEntry      Kind = "diary_entry"
	KindPlan            Kind = "plan"
	KindPlanExercise    Kind = "plan_exercise"
	KindTemplate        Kind = "template"
	KindLibraryExercise Kind = "library_exercise"
	KindWaitlist        Kind = "waitlist"
	KindCommTemplate    Kind = "communication_template"
)

// prefixes are the short codes baked into persisted identifiers. They are
// part of the stored key structure and must not change.
var prefixes = map[Kind]string{
	KindStudent:         "aluno",
	KindAppointment:     "ag",
	KindPayment:         "pg",
	KindGoal:            "meta",
	KindMeasurement:     "med",
	KindSkinfold:        "dobra",
	KindSessionNote:     "nota",
	KindDiaryEntry:      "diario",
	KindPlan:            "treino",
	KindPlanExercise:    "ex",
	KindTemplate:        "modelo",
	KindLibraryExercise: "bib",
	KindWaitlist:        "espera",
	KindCommTemplate:    "msg",
}

// scopedKinds allocate per-parent sequences: the counter name carries the
// owning student's id, so each student gets an independent sequence.
var scopedKinds = map[Kind]bool{
	KindPayment:      true,
	KindGoal:         true,
	KindMeasurement:  true,
	KindSkinfold:     true,
	KindSessionNote:  true,
	KindDiaryEntry:   true,
	KindPlan:         true,
	KindPlanExercise: true,
}

var allKinds = []Kind{
	KindStudent, KindAppointment, KindPayment, KindGoal, KindMeasurement,
	KindSkinfold, KindSessionNote, KindDiaryEntry, KindPlan, KindPlanExercise,
	KindTemplate, KindLibraryExercise, KindWaitlist, KindCommTemplate,
}

// CounterStore issues strictly increasing, never-reused sequence numbers
// for named counters. The production implementation is the counter table;
// tests substitute a fake.
type CounterStore interface {
	Next(ctx context.Context, name string) (int64, error)
}

type sqlCounterStore struct {
	q sqlx.ExtContext
}

// Next increments and returns the counter in a single read-modify-write
// statement against the counter row.
func (c *sqlCounterStore) Next(ctx context.Context, name string) (int64, error) {
	var value int64
	err := sqlx.GetContext(ctx, c.q, &value,
		`INSERT INTO counters (name, value) VALUES (?, 1)
		 ON CONFLICT(name) DO UPDATE SET value = value + 1
		 RETURNING value`,
		name,
	)
	if err != nil {
		return 0, fmt.Errorf("next counter %s: %w", name, err)
	}
	return value, nil
}

// Allocator mints entity identifiers. Callers must allocate before
// constructing the entity that carries the identifier; nothing else in the
// application synthesizes ids.
type Allocator struct {
	counters CounterStore
	st       *Store
}

// NewAllocator builds an allocator backed by the store's counter table.
func NewAllocator(s *Store) *Allocator {
	return &Allocator{counters: &sqlCounterStore{q: s.db}, st: s}
}

// NewAllocatorWith builds an allocator over an explicit counter store.
func NewAllocatorWith(counters CounterStore) *Allocator {
	return &Allocator{counters: counters}
}

// Allocate returns "<prefix>-<seq>" for global kinds and
// "<prefix>-<parentID>-<seq>" for per-student kinds. Sequences for distinct
// counter names are fully independent.
func (a *Allocator) Allocate(ctx context.Context, kind Kind, parentID string) (string, error) {
	prefix, ok := prefixes[kind]
	if !ok {
		return "", fmt.Errorf("unknown identifier kind %q", kind)
	}
	if scopedKinds[kind] && parentID == "" {
		return "", fmt.Errorf("identifier kind %q requires a parent scope", kind)
	}
	name := prefix
	if parentID != "" {
		name = prefix + "-" + parentID
	}
	seq, err := a.counters.Next(ctx, name)
	if err != nil {
		return "", err
	}
	a.st.observeAllocation(string(kind))
	return fmt.Sprintf("%s-%d", name, seq), nil
}
