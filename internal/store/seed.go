package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fitstudio/studio-api/internal/models"
)

// SeedIfEmpty populates a fresh store with the built-in starter dataset so
// the application never opens onto an empty screen. It is a no-op when any
// student already exists.
func SeedIfEmpty(ctx context.Context, s *Store) error {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM students`); err != nil {
		return fmt.Errorf("seed check: %w", err)
	}
	if count > 0 {
		return nil
	}

	alloc := NewAllocator(s)
	students := NewStudentRepository(s)
	catalog := NewCatalogRepository(s)
	profiles := NewProfileRepository(s)

	now := time.Now().UTC()

	if _, err := profiles.GetProfile(ctx); errors.Is(err, sql.ErrNoRows) {
		if err := profiles.PutProfile(ctx, &models.TrainerProfile{Name: "Personal Trainer", UpdatedAt: now}); err != nil {
			return err
		}
	}

	exercises := []models.LibraryExercise{
		{Name: "Agachamento livre", MuscleGroup: "legs", Equipment: "barbell"},
		{Name: "Supino reto", MuscleGroup: "chest", Equipment: "barbell"},
		{Name: "Remada curvada", MuscleGroup: "back", Equipment: "barbell"},
		{Name: "Prancha", MuscleGroup: "core", Equipment: "bodyweight"},
	}
	exerciseIDs := make([]string, 0, len(exercises))
	for i := range exercises {
		id, err := alloc.Allocate(ctx, KindLibraryExercise, "")
		if err != nil {
			return err
		}
		exercises[i].ID = id
		exercises[i].CreatedAt = now
		exercises[i].UpdatedAt = now
		if err := catalog.PutExercise(ctx, &exercises[i]); err != nil {
			return err
		}
		exerciseIDs = append(exerciseIDs, id)
	}

	studentID, err := alloc.Allocate(ctx, KindStudent, "")
	if err != nil {
		return err
	}
	planID, err := alloc.Allocate(ctx, KindPlan, studentID)
	if err != nil {
		return err
	}
	var planExercises []models.PlanExercise
	for i, exID := range exerciseIDs[:2] {
		peID, err := alloc.Allocate(ctx, KindPlanExercise, studentID)
		if err != nil {
			return err
		}
		planExercises = append(planExercises, models.PlanExercise{
			ID:                peID,
			LibraryExerciseID: exID,
			Name:              exercises[i].Name,
			Sets:              3,
			Reps:              "10-12",
			Order:             i + 1,
		})
	}
	paymentID, err := alloc.Allocate(ctx, KindPayment, studentID)
	if err != nil {
		return err
	}

	student := &models.Student{
		ID:            studentID,
		FullName:      "Aluno Exemplo",
		StartDate:     now,
		Status:        models.StudentStatusActive,
		PaymentStatus: models.PaymentStatusOnTime,
		Plans: []models.WorkoutPlan{{
			ID:        planID,
			Name:      "Treino A",
			Active:    true,
			Exercises: planExercises,
			CreatedAt: now,
			UpdatedAt: now,
		}},
		Payments: []models.Payment{{
			ID:     paymentID,
			Amount: 150,
			Date:   now,
			Status: models.PaymentRecordPaid,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	return students.Put(ctx, student)
}
