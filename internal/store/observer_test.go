package store

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/fitstudio/studio-api/internal/models"
)

type recordingObserver struct {
	writes      []string
	outcomes    []string
	allocations []string
}

func (o *recordingObserver) ObserveStoreWrite(collection string) {
	o.writes = append(o.writes, collection)
}

func (o *recordingObserver) ObserveTransaction(outcome string) {
	o.outcomes = append(o.outcomes, outcome)
}

func (o *recordingObserver) ObserveAllocation(kind string) {
	o.allocations = append(o.allocations, kind)
}

func TestObserverSeesWritesAndDeletes(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	obs := &recordingObserver{}
	s.SetObserver(obs)

	students := NewStudentRepository(s)
	require.NoError(t, students.Put(ctx, &models.Student{ID: "aluno-1", FullName: "Maria Silva", Status: models.StudentStatusActive}))
	require.NoError(t, students.Delete(ctx, "aluno-1"))

	catalog := NewCatalogRepository(s)
	require.NoError(t, catalog.PutExercise(ctx, &models.LibraryExercise{ID: "bib-1", Name: "Supino reto"}))

	require.Equal(t, []string{"students", "students", "library_exercises"}, obs.writes)
}

func TestObserverSeesTransactionOutcomes(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	obs := &recordingObserver{}
	s.SetObserver(obs)

	require.NoError(t, s.InTx(ctx, func(tx *sqlx.Tx) error { return nil }))

	boom := errors.New("boom")
	err := s.InTx(ctx, func(tx *sqlx.Tx) error { return boom })
	require.ErrorIs(t, err, boom)

	require.Equal(t, []string{"committed", "rolled_back"}, obs.outcomes)
}

func TestObserverSeesAllocations(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	obs := &recordingObserver{}
	s.SetObserver(obs)

	alloc := NewAllocator(s)
	_, err := alloc.Allocate(ctx, KindStudent, "")
	require.NoError(t, err)
	_, err = alloc.Allocate(ctx, KindPayment, "aluno-1")
	require.NoError(t, err)

	require.Equal(t, []string{"student", "payment"}, obs.allocations)
}

func TestRepositoriesTolerateMissingObserver(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	students := NewStudentRepository(s)
	require.NoError(t, students.Put(ctx, &models.Student{ID: "aluno-1", FullName: "Maria Silva", Status: models.StudentStatusActive}))

	alloc := NewAllocatorWith(&sqlCounterStore{q: s.db})
	_, err := alloc.Allocate(ctx, KindStudent, "")
	require.NoError(t, err)
}
