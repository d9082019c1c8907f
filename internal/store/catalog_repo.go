package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/fitstudio/studio-api/internal/models"
)

// CatalogRepository manages the global catalog collections: workout
// templates, the exercise library and communication templates. None of
// them carries indexed attributes beyond the primary key.
type CatalogRepository struct {
	st *Store
	q  sqlx.ExtContext
}

// NewCatalogRepository constructs a CatalogRepository.
func NewCatalogRepository(s *Store) *CatalogRepository {
	return &CatalogRepository{st: s, q: s.db}
}

// WithTx returns a copy bound to the given transaction.
func (r *CatalogRepository) WithTx(tx *sqlx.Tx) *CatalogRepository {
	return &CatalogRepository{st: r.st, q: tx}
}

func (r *CatalogRepository) write(ctx context.Context, table, id string, doc any) error {
	if err := putDoc(ctx, r.q, table, id, doc); err != nil {
		return err
	}
	r.st.observeWrite(table)
	return nil
}

func (r *CatalogRepository) remove(ctx context.Context, table, id string) error {
	if err := deleteDoc(ctx, r.q, table, id); err != nil {
		return err
	}
	r.st.observeWrite(table)
	return nil
}

func (r *CatalogRepository) PutTemplate(ctx context.Context, tpl *models.WorkoutTemplate) error {
	return r.write(ctx, "workout_templates", tpl.ID, tpl)
}

func (r *CatalogRepository) GetTemplate(ctx context.Context, id string) (*models.WorkoutTemplate, error) {
	return getDoc[models.WorkoutTemplate](ctx, r.q, "workout_templates", id)
}

func (r *CatalogRepository) ListTemplates(ctx context.Context) ([]models.WorkoutTemplate, error) {
	return listDocs[models.WorkoutTemplate](ctx, r.q, "workout_templates", "id")
}

func (r *CatalogRepository) DeleteTemplate(ctx context.Context, id string) error {
	return r.remove(ctx, "workout_templates", id)
}

func (r *CatalogRepository) PutExercise(ctx context.Context, ex *models.LibraryExercise) error {
	return r.write(ctx, "library_exercises", ex.ID, ex)
}

func (r *CatalogRepository) GetExercise(ctx context.Context, id string) (*models.LibraryExercise, error) {
	return getDoc[models.LibraryExercise](ctx, r.q, "library_exercises", id)
}

func (r *CatalogRepository) ListExercises(ctx context.Context) ([]models.LibraryExercise, error) {
	return listDocs[models.LibraryExercise](ctx, r.q, "library_exercises", "id")
}

// DeleteExercise removes a catalog exercise. Plan entries referencing it
// keep their dangling weak reference.
func (r *CatalogRepository) DeleteExercise(ctx context.Context, id string) error {
	return r.remove(ctx, "library_exercises", id)
}

func (r *CatalogRepository) PutCommTemplate(ctx context.Context, tpl *models.CommunicationTemplate) error {
	return r.write(ctx, "communication_templates", tpl.ID, tpl)
}

func (r *CatalogRepository) ListCommTemplates(ctx context.Context) ([]models.CommunicationTemplate, error) {
	return listDocs[models.CommunicationTemplate](ctx, r.q, "communication_templates", "id")
}

func (r *CatalogRepository) DeleteCommTemplate(ctx context.Context, id string) error {
	return r.remove(ctx, "communication_templates", id)
}
