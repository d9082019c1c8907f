package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fitstudio/studio-api/internal/models"
	"github.com/fitstudio/studio-api/internal/store"
	"github.com/fitstudio/studio-api/pkg/database"
)

func newLoadedCache(t *testing.T) (*ViewCache, *store.Store) {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := store.New(db)
	ctx := context.Background()
	require.NoError(t, s.EnsureSchema(ctx))
	require.NoError(t, store.SeedIfEmpty(ctx, s))

	c := New()
	require.NoError(t, c.Load(ctx, s))
	return c, s
}

func TestLoadMirrorsTheStore(t *testing.T) {
	c, _ := newLoadedCache(t)

	snap := c.Snapshot()
	require.Len(t, snap.Students, 1)
	require.Len(t, snap.Exercises, 4)
	require.NotNil(t, snap.Profile)
}

func TestSnapshotIsACopy(t *testing.T) {
	c, _ := newLoadedCache(t)

	snap := c.Snapshot()
	snap.Students[0].FullName = "mutated"
	snap.Profile.Name = "mutated"

	fresh := c.Snapshot()
	require.NotEqual(t, "mutated", fresh.Students[0].FullName)
	require.NotEqual(t, "mutated", fresh.Profile.Name)
}

func TestUpsertReplacesById(t *testing.T) {
	c := New()

	c.UpsertStudent(models.Student{ID: "aluno-1", FullName: "Maria"})
	c.UpsertStudent(models.Student{ID: "aluno-2", FullName: "Joao"})
	c.UpsertStudent(models.Student{ID: "aluno-1", FullName: "Maria Silva"})

	snap := c.Snapshot()
	require.Len(t, snap.Students, 2)
	require.Equal(t, "Maria Silva", snap.Students[0].FullName)
}

func TestRemoveStudentDropsTheirAppointments(t *testing.T) {
	c := New()
	now := time.Now()

	c.UpsertStudent(models.Student{ID: "aluno-1"})
	c.UpsertStudent(models.Student{ID: "aluno-2"})
	c.UpsertAppointment(models.Appointment{ID: "ag-1", StudentID: "aluno-1", Date: now})
	c.UpsertAppointment(models.Appointment{ID: "ag-2", StudentID: "aluno-2", Date: now})
	c.UpsertAppointment(models.Appointment{ID: "ag-3", Date: now})

	c.RemoveStudent("aluno-1")

	snap := c.Snapshot()
	require.Len(t, snap.Students, 1)
	require.Len(t, snap.Appointments, 2)
	for _, appt := range snap.Appointments {
		require.NotEqual(t, "aluno-1", appt.StudentID)
	}
}

func TestWaitlistAndCatalogMutators(t *testing.T) {
	c := New()

	c.UpsertWaitlist(models.WaitlistPerson{ID: "espera-1", Status: models.WaitlistPending})
	c.UpsertWaitlist(models.WaitlistPerson{ID: "espera-1", Status: models.WaitlistContacted})
	c.UpsertExercise(models.LibraryExercise{ID: "bib-1", Name: "Supino reto"})
	c.UpsertTemplate(models.WorkoutTemplate{ID: "modelo-1"})
	c.UpsertCommTemplate(models.CommunicationTemplate{ID: "msg-1"})

	snap := c.Snapshot()
	require.Len(t, snap.Waitlist, 1)
	require.Equal(t, models.WaitlistContacted, snap.Waitlist[0].Status)
	require.Len(t, snap.Exercises, 1)

	c.RemoveWaitlist("espera-1")
	c.RemoveExercise("bib-1")
	c.RemoveTemplate("modelo-1")
	c.RemoveCommTemplate("msg-1")

	snap = c.Snapshot()
	require.Empty(t, snap.Waitlist)
	require.Empty(t, snap.Exercises)
	require.Empty(t, snap.Templates)
	require.Empty(t, snap.CommTemplates)
}
