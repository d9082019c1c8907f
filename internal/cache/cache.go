package cache

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/fitstudio/studio-api/internal/models"
	"github.com/fitstudio/studio-api/internal/store"
)

// ViewCache mirrors the entity store in memory for synchronous reads by
// the view layer. It is strictly write-through: mutators are only called
// after the corresponding store write succeeded, so the cache never shows
// a state that was not durably persisted.
type ViewCache struct {
	mu sync.RWMutex

	students      []models.Student
	appointments  []models.Appointment
	waitlist      []models.WaitlistPerson
	templates     []models.WorkoutTemplate
	exercises     []models.LibraryExercise
	commTemplates []models.CommunicationTemplate
	patchNotes    []models.PatchNote
	profile       *models.TrainerProfile
}

// New returns an empty cache.
func New() *ViewCache {
	return &ViewCache{}
}

// Load fills the cache from the store. Called once at startup.
func (c *ViewCache) Load(ctx context.Context, s *store.Store) error {
	students, err := store.NewStudentRepository(s).List(ctx, models.StudentFilter{})
	if err != nil {
		return err
	}
	appointments, err := store.NewAppointmentRepository(s).List(ctx, models.AppointmentFilter{})
	if err != nil {
		return err
	}
	waitlist, err := store.NewWaitlistRepository(s).List(ctx, "")
	if err != nil {
		return err
	}
	catalog := store.NewCatalogRepository(s)
	templates, err := catalog.ListTemplates(ctx)
	if err != nil {
		return err
	}
	exercises, err := catalog.ListExercises(ctx)
	if err != nil {
		return err
	}
	commTemplates, err := catalog.ListCommTemplates(ctx)
	if err != nil {
		return err
	}
	profiles := store.NewProfileRepository(s)
	profile, err := profiles.GetProfile(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	patchNotes, err := profiles.ListPatchNotes(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.students = students
	c.appointments = appointments
	c.waitlist = waitlist
	c.templates = templates
	c.exercises = exercises
	c.commTemplates = commTemplates
	c.patchNotes = patchNotes
	c.profile = profile
	return nil
}

// Snapshot is a point-in-time copy of every collection, safe for the
// aggregation functions to read without further locking.
type Snapshot struct {
	Students      []models.Student
	Appointments  []models.Appointment
	Waitlist      []models.WaitlistPerson
	Templates     []models.WorkoutTemplate
	Exercises     []models.LibraryExercise
	CommTemplates []models.CommunicationTemplate
	PatchNotes    []models.PatchNote
	Profile       *models.TrainerProfile
}

// Snapshot returns the current state with freshly copied top-level
// slices. Nested slices inside the elements are shared with the cache:
// snapshots are read-only views, and mutators only ever replace whole
// elements with store-loaded documents.
func (c *ViewCache) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snap := Snapshot{
		Students:      append([]models.Student(nil), c.students...),
		Appointments:  append([]models.Appointment(nil), c.appointments...),
		Waitlist:      append([]models.WaitlistPerson(nil), c.waitlist...),
		Templates:     append([]models.WorkoutTemplate(nil), c.templates...),
		Exercises:     append([]models.LibraryExercise(nil), c.exercises...),
		CommTemplates: append([]models.CommunicationTemplate(nil), c.commTemplates...),
		PatchNotes:    append([]models.PatchNote(nil), c.patchNotes...),
	}
	if c.profile != nil {
		p := *c.profile
		snap.Profile = &p
	}
	return snap
}

// UpsertStudent mirrors a persisted student write.
func (c *ViewCache) UpsertStudent(student models.Student) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.students = upsert(c.students, student, func(s models.Student) string { return s.ID })
}

// RemoveStudent mirrors a persisted student deletion together with its
// appointment cascade.
func (c *ViewCache) RemoveStudent(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.students = remove(c.students, func(s models.Student) bool { return s.ID == id })
	c.appointments = remove(c.appointments, func(a models.Appointment) bool { return a.StudentID == id })
}

// UpsertAppointment mirrors a persisted appointment write.
func (c *ViewCache) UpsertAppointment(appt models.Appointment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.appointments = upsert(c.appointments, appt, func(a models.Appointment) string { return a.ID })
}

// RemoveAppointment mirrors a persisted appointment deletion.
func (c *ViewCache) RemoveAppointment(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.appointments = remove(c.appointments, func(a models.Appointment) bool { return a.ID == id })
}

// UpsertWaitlist mirrors a persisted waitlist write.
func (c *ViewCache) UpsertWaitlist(person models.WaitlistPerson) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.waitlist = upsert(c.waitlist, person, func(p models.WaitlistPerson) string { return p.ID })
}

// RemoveWaitlist mirrors a persisted waitlist deletion.
func (c *ViewCache) RemoveWaitlist(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.waitlist = remove(c.waitlist, func(p models.WaitlistPerson) bool { return p.ID == id })
}

// UpsertTemplate mirrors a persisted workout template write.
func (c *ViewCache) UpsertTemplate(tpl models.WorkoutTemplate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.templates = upsert(c.templates, tpl, func(t models.WorkoutTemplate) string { return t.ID })
}

// RemoveTemplate mirrors a persisted workout template deletion.
func (c *ViewCache) RemoveTemplate(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.templates = remove(c.templates, func(t models.WorkoutTemplate) bool { return t.ID == id })
}

// UpsertExercise mirrors a persisted library exercise write.
func (c *ViewCache) UpsertExercise(ex models.LibraryExercise) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exercises = upsert(c.exercises, ex, func(e models.LibraryExercise) string { return e.ID })
}

// RemoveExercise mirrors a persisted library exercise deletion.
func (c *ViewCache) RemoveExercise(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.exercises = remove(c.exercises, func(e models.LibraryExercise) bool { return e.ID == id })
}

// UpsertCommTemplate mirrors a persisted communication template write.
func (c *ViewCache) UpsertCommTemplate(tpl models.CommunicationTemplate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commTemplates = upsert(c.commTemplates, tpl, func(t models.CommunicationTemplate) string { return t.ID })
}

// RemoveCommTemplate mirrors a persisted communication template deletion.
func (c *ViewCache) RemoveCommTemplate(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.commTemplates = remove(c.commTemplates, func(t models.CommunicationTemplate) bool { return t.ID == id })
}

// SetProfile mirrors a persisted trainer profile write.
func (c *ViewCache) SetProfile(profile models.TrainerProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profile = &profile
}

func upsert[T any](items []T, item T, key func(T) string) []T {
	id := key(item)
	for i := range items {
		if key(items[i]) == id {
			items[i] = item
			return items
		}
	}
	return append(items, item)
}

func remove[T any](items []T, match func(T) bool) []T {
	out := items[:0]
	for _, item := range items {
		if !match(item) {
			out = append(out, item)
		}
	}
	return out
}
