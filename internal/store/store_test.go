package store

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/fitstudio/studio-api/internal/models"
	"github.com/fitstudio/studio-api/pkg/database"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := New(db)
	require.NoError(t, s.EnsureSchema(context.Background()))
	return s
}

func TestStudentRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	repo := NewStudentRepository(s)

	student := &models.Student{
		ID:        "aluno-1",
		FullName:  "Maria Silva",
		Email:     "maria@example.com",
		Status:    models.StudentStatusActive,
		StartDate: time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		Payments: []models.Payment{
			{ID: "pg-aluno-1-1", Amount: 150, Status: models.PaymentRecordPaid},
		},
	}
	require.NoError(t, repo.Put(ctx, student))

	got, err := repo.Get(ctx, "aluno-1")
	require.NoError(t, err)
	require.Equal(t, "Maria Silva", got.FullName)
	require.Len(t, got.Payments, 1)

	// Full replacement, indexed column included.
	student.Status = models.StudentStatusPaused
	student.Payments = nil
	require.NoError(t, repo.Put(ctx, student))

	got, err = repo.Get(ctx, "aluno-1")
	require.NoError(t, err)
	require.Equal(t, models.StudentStatusPaused, got.Status)
	require.Empty(t, got.Payments)

	_, err = repo.Get(ctx, "aluno-404")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStudentRepositoryListFilters(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	repo := NewStudentRepository(s)

	seed := []*models.Student{
		{ID: "aluno-1", FullName: "Maria Silva", Email: "maria@example.com", Status: models.StudentStatusActive},
		{ID: "aluno-2", FullName: "Joao Souza", Status: models.StudentStatusActive},
		{ID: "aluno-3", FullName: "Ana Costa", Status: models.StudentStatusInactive},
	}
	for _, st := range seed {
		require.NoError(t, repo.Put(ctx, st))
	}

	active, err := repo.List(ctx, models.StudentFilter{Status: models.StudentStatusActive})
	require.NoError(t, err)
	require.Len(t, active, 2)

	byName, err := repo.List(ctx, models.StudentFilter{Search: "maria"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	require.Equal(t, "aluno-1", byName[0].ID)

	byEmail, err := repo.List(ctx, models.StudentFilter{Search: "MARIA@EXAMPLE"})
	require.NoError(t, err)
	require.Len(t, byEmail, 1)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, counts[models.StudentStatusActive])
	require.Equal(t, 1, counts[models.StudentStatusInactive])
}

func TestAppointmentRepositoryListByDateRange(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	repo := NewAppointmentRepository(s)

	for i := 1; i <= 5; i++ {
		require.NoError(t, repo.Put(ctx, &models.Appointment{
			ID:     fmt.Sprintf("ag-%d", i),
			Title:  "Sessao",
			Status: models.AppointmentScheduled,
			Date:   time.Date(2024, time.August, i*2, 9, 0, 0, 0, time.UTC),
		}))
	}

	from := time.Date(2024, time.August, 4, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.August, 8, 23, 59, 59, 0, time.UTC)
	got, err := repo.List(ctx, models.AppointmentFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, got, 3)
	// Chronological order comes from the lexicographic date index.
	require.Equal(t, "ag-2", got[0].ID)
	require.Equal(t, "ag-4", got[2].ID)
}

func TestDeleteStudentCascadesInTransaction(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	students := NewStudentRepository(s)
	appointments := NewAppointmentRepository(s)

	require.NoError(t, students.Put(ctx, &models.Student{ID: "aluno-1", FullName: "Maria", Status: models.StudentStatusActive}))
	require.NoError(t, appointments.Put(ctx, &models.Appointment{ID: "ag-1", StudentID: "aluno-1", Status: models.AppointmentScheduled, Date: time.Now()}))
	require.NoError(t, appointments.Put(ctx, &models.Appointment{ID: "ag-2", StudentID: "aluno-1", Status: models.AppointmentCompleted, Date: time.Now()}))
	require.NoError(t, appointments.Put(ctx, &models.Appointment{ID: "ag-3", StudentID: "aluno-2", Status: models.AppointmentScheduled, Date: time.Now()}))

	err := s.InTx(ctx, func(tx *sqlx.Tx) error {
		if err := students.WithTx(tx).Delete(ctx, "aluno-1"); err != nil {
			return err
		}
		removed, err := appointments.WithTx(tx).DeleteByStudent(ctx, "aluno-1")
		if err != nil {
			return err
		}
		require.EqualValues(t, 2, removed)
		return nil
	})
	require.NoError(t, err)

	_, err = students.Get(ctx, "aluno-1")
	require.ErrorIs(t, err, sql.ErrNoRows)
	remaining, err := appointments.List(ctx, models.AppointmentFilter{})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, "ag-3", remaining[0].ID)
}

func TestInTxRollsBackEveryWrite(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	students := NewStudentRepository(s)

	require.NoError(t, students.Put(ctx, &models.Student{ID: "aluno-1", FullName: "Maria", Status: models.StudentStatusActive}))

	boom := fmt.Errorf("boom")
	err := s.InTx(ctx, func(tx *sqlx.Tx) error {
		if err := students.WithTx(tx).Delete(ctx, "aluno-1"); err != nil {
			return err
		}
		if err := students.WithTx(tx).Put(ctx, &models.Student{ID: "aluno-2", FullName: "Joao", Status: models.StudentStatusActive}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// Neither the delete nor the insert survived.
	_, err = students.Get(ctx, "aluno-1")
	require.NoError(t, err)
	_, err = students.Get(ctx, "aluno-2")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSeedIfEmpty(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, SeedIfEmpty(ctx, s))

	students, err := NewStudentRepository(s).List(ctx, models.StudentFilter{})
	require.NoError(t, err)
	require.Len(t, students, 1)
	require.NotNil(t, students[0].ActivePlan())

	exercises, err := NewCatalogRepository(s).ListExercises(ctx)
	require.NoError(t, err)
	require.Len(t, exercises, 4)

	// Idempotent: a second run must not duplicate anything.
	require.NoError(t, SeedIfEmpty(ctx, s))
	students, err = NewStudentRepository(s).List(ctx, models.StudentFilter{})
	require.NoError(t, err)
	require.Len(t, students, 1)
}
