package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fitstudio/studio-api/internal/models"
	appErrors "github.com/fitstudio/studio-api/pkg/errors"
)

func TestSavePlanKeepsSingleActiveInvariant(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStudentService(t)

	student, err := svc.Create(ctx, CreateStudentRequest{FullName: "Maria Silva"})
	require.NoError(t, err)

	student, err = svc.SavePlan(ctx, student.ID, PlanRequest{Name: "Treino A", Active: true})
	require.NoError(t, err)
	require.Equal(t, "treino-aluno-1-1", student.Plans[0].ID)
	require.True(t, student.Plans[0].Active)

	// Activating a second plan deactivates the first.
	student, err = svc.SavePlan(ctx, student.ID, PlanRequest{Name: "Treino B", Active: true})
	require.NoError(t, err)
	require.Len(t, student.Plans, 2)

	var activeCount int
	for _, plan := range student.Plans {
		if plan.Active {
			activeCount++
			require.Equal(t, "Treino B", plan.Name)
		}
	}
	require.Equal(t, 1, activeCount)
	require.Equal(t, "Treino B", student.ActivePlan().Name)

	// An inactive save leaves the current active plan alone.
	student, err = svc.SavePlan(ctx, student.ID, PlanRequest{Name: "Treino C"})
	require.NoError(t, err)
	require.Equal(t, "Treino B", student.ActivePlan().Name)
}

func TestSavePlanAllocatesExerciseEntryIds(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStudentService(t)

	student, err := svc.Create(ctx, CreateStudentRequest{FullName: "Maria Silva"})
	require.NoError(t, err)

	student, err = svc.SavePlan(ctx, student.ID, PlanRequest{
		Name: "Treino A",
		Exercises: []PlanExerciseRequest{
			{Name: "Supino reto", Sets: 3, Reps: "10-12", LibraryExerciseID: "bib-1"},
			{Name: "Exercicio avulso", Sets: 4},
		},
	})
	require.NoError(t, err)

	exercises := student.Plans[0].Exercises
	require.Len(t, exercises, 2)
	require.Equal(t, "ex-aluno-1-1", exercises[0].ID)
	require.Equal(t, "ex-aluno-1-2", exercises[1].ID)
	require.Equal(t, 1, exercises[0].Order)
	require.Equal(t, 2, exercises[1].Order)
	require.Equal(t, "bib-1", exercises[0].LibraryExerciseID)
	require.Empty(t, exercises[1].LibraryExerciseID)
}

func TestSavePlanUpdateUnknownIdFails(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStudentService(t)

	student, err := svc.Create(ctx, CreateStudentRequest{FullName: "Maria Silva"})
	require.NoError(t, err)

	_, err = svc.SavePlan(ctx, student.ID, PlanRequest{ID: "treino-aluno-1-9", Name: "Treino X"})
	require.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSaveGoalLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStudentService(t)

	student, err := svc.Create(ctx, CreateStudentRequest{FullName: "Maria Silva"})
	require.NoError(t, err)

	student, err = svc.SaveGoal(ctx, student.ID, GoalRequest{
		Title:        "Cut to 80kg",
		MetricType:   models.MetricWeight,
		InitialValue: 90,
		CurrentValue: 90,
		TargetValue:  80,
		Status:       models.GoalStatusActive,
	})
	require.NoError(t, err)
	goalID := student.Goals[0].ID
	require.Equal(t, "meta-aluno-1-1", goalID)
	require.Nil(t, student.Goals[0].AchievedAt)
	require.Equal(t, testNow, student.Goals[0].StartDate)

	// Marking achieved stamps AchievedAt once.
	student, err = svc.SaveGoal(ctx, student.ID, GoalRequest{
		ID:           goalID,
		Title:        "Cut to 80kg",
		MetricType:   models.MetricWeight,
		InitialValue: 90,
		CurrentValue: 80,
		TargetValue:  80,
		Status:       models.GoalStatusAchieved,
	})
	require.NoError(t, err)
	require.NotNil(t, student.Goals[0].AchievedAt)
	achievedAt := *student.Goals[0].AchievedAt

	// A later edit keeps the original achievement timestamp.
	student, err = svc.SaveGoal(ctx, student.ID, GoalRequest{
		ID:           goalID,
		Title:        "Cut to 80kg (done)",
		MetricType:   models.MetricWeight,
		InitialValue: 90,
		CurrentValue: 80,
		TargetValue:  80,
		Status:       models.GoalStatusAchieved,
	})
	require.NoError(t, err)
	require.Equal(t, achievedAt, *student.Goals[0].AchievedAt)
}

func TestRemoveGoalAndPlan(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStudentService(t)

	student, err := svc.Create(ctx, CreateStudentRequest{FullName: "Maria Silva"})
	require.NoError(t, err)
	student, err = svc.SaveGoal(ctx, student.ID, GoalRequest{
		Title: "Meta", MetricType: models.MetricWeight, Status: models.GoalStatusActive,
	})
	require.NoError(t, err)
	student, err = svc.SavePlan(ctx, student.ID, PlanRequest{Name: "Treino A"})
	require.NoError(t, err)

	student, err = svc.RemoveGoal(ctx, student.ID, student.Goals[0].ID)
	require.NoError(t, err)
	require.Empty(t, student.Goals)

	student, err = svc.RemovePlan(ctx, student.ID, student.Plans[0].ID)
	require.NoError(t, err)
	require.Empty(t, student.Plans)

	_, err = svc.RemoveGoal(ctx, student.ID, "meta-aluno-1-9")
	require.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
