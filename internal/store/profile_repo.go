package store

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/fitstudio/studio-api/internal/models"
)

// ProfileRepository manages the singleton trainer profile and the patch
// note history.
type ProfileRepository struct {
	st *Store
	q  sqlx.ExtContext
}

// NewProfileRepository constructs a ProfileRepository.
func NewProfileRepository(s *Store) *ProfileRepository {
	return &ProfileRepository{st: s, q: s.db}
}

// WithTx returns a copy bound to the given transaction.
func (r *ProfileRepository) WithTx(tx *sqlx.Tx) *ProfileRepository {
	return &ProfileRepository{st: r.st, q: tx}
}

// GetProfile loads the trainer profile. sql.ErrNoRows means it was never
// saved.
func (r *ProfileRepository) GetProfile(ctx context.Context) (*models.TrainerProfile, error) {
	return getDoc[models.TrainerProfile](ctx, r.q, "trainer_profile", models.TrainerProfileID)
}

// PutProfile saves the trainer profile under its fixed singleton key.
func (r *ProfileRepository) PutProfile(ctx context.Context, profile *models.TrainerProfile) error {
	profile.ID = models.TrainerProfileID
	if err := putDoc(ctx, r.q, "trainer_profile", profile.ID, profile); err != nil {
		return err
	}
	r.st.observeWrite("trainer_profile")
	return nil
}

// PutPatchNote records a version's patch note, keyed by version.
func (r *ProfileRepository) PutPatchNote(ctx context.Context, note *models.PatchNote) error {
	if err := putDoc(ctx, r.q, "patch_notes", note.Version, note); err != nil {
		return err
	}
	r.st.observeWrite("patch_notes")
	return nil
}

// ListPatchNotes returns all recorded patch notes.
func (r *ProfileRepository) ListPatchNotes(ctx context.Context) ([]models.PatchNote, error) {
	return listDocs[models.PatchNote](ctx, r.q, "patch_notes", "id DESC")
}
