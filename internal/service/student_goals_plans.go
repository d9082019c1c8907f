package service

import (
	"context"
	"time"

	"github.com/fitstudio/studio-api/internal/models"
	"github.com/fitstudio/studio-api/internal/store"
	appErrors "github.com/fitstudio/studio-api/pkg/errors"
)

// GoalRequest holds payload for creating or replacing a detailed goal. An
// empty ID creates a new goal with a freshly allocated identifier.
type GoalRequest struct {
	ID           string            `json:"id"`
	Title        string            `json:"title" validate:"required"`
	MetricType   string            `json:"metricType" validate:"required"`
	InitialValue float64           `json:"initialValue"`
	CurrentValue float64           `json:"currentValue"`
	TargetValue  float64           `json:"targetValue"`
	Status       models.GoalStatus `json:"status" validate:"required,oneof=active achieved not_achieved paused"`
	StartDate    time.Time         `json:"startDate"`
	TargetDate   *time.Time        `json:"targetDate"`
}

// SaveGoal creates or fully replaces a detailed goal. Progress is never
// part of the payload; it is always derived.
func (s *StudentService) SaveGoal(ctx context.Context, studentID string, req GoalRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid goal payload")
	}
	student, err := s.load(ctx, studentID)
	if err != nil {
		return nil, err
	}
	goal := models.DetailedGoal{
		ID:           req.ID,
		Title:        req.Title,
		MetricType:   req.MetricType,
		InitialValue: req.InitialValue,
		CurrentValue: req.CurrentValue,
		TargetValue:  req.TargetValue,
		Status:       req.Status,
		StartDate:    req.StartDate,
		TargetDate:   req.TargetDate,
	}
	if goal.StartDate.IsZero() {
		goal.StartDate = s.now().UTC()
	}
	if goal.Status == models.GoalStatusAchieved {
		achieved := s.now().UTC()
		goal.AchievedAt = &achieved
	}
	if goal.ID == "" {
		id, err := s.alloc.Allocate(ctx, store.KindGoal, studentID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate goal id")
		}
		goal.ID = id
		student.Goals = append(student.Goals, goal)
	} else {
		found := false
		for i := range student.Goals {
			if student.Goals[i].ID == goal.ID {
				if student.Goals[i].AchievedAt != nil {
					goal.AchievedAt = student.Goals[i].AchievedAt
				}
				student.Goals[i] = goal
				found = true
				break
			}
		}
		if !found {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "goal not found")
		}
	}
	if err := s.persist(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// RemoveGoal drops a goal from the student document.
func (s *StudentService) RemoveGoal(ctx context.Context, studentID, goalID string) (*models.Student, error) {
	student, err := s.load(ctx, studentID)
	if err != nil {
		return nil, err
	}
	kept := student.Goals[:0]
	for _, g := range student.Goals {
		if g.ID != goalID {
			kept = append(kept, g)
		}
	}
	if len(kept) == len(student.Goals) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "goal not found")
	}
	student.Goals = kept
	if err := s.persist(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// PlanExerciseRequest is one ordered plan entry. LibraryExerciseID is an
// optional weak reference into the catalog.
type PlanExerciseRequest struct {
	ID                string `json:"id"`
	LibraryExerciseID string `json:"libraryExerciseId"`
	Name              string `json:"name" validate:"required"`
	Sets              int    `json:"sets"`
	Reps              string `json:"reps"`
	Load              string `json:"load"`
	RestSeconds       int    `json:"restSeconds"`
	Notes             string `json:"notes"`
}

// PlanRequest holds payload for creating or replacing a workout plan. An
// empty ID creates a new plan.
type PlanRequest struct {
	ID        string                `json:"id"`
	Name      string                `json:"name" validate:"required"`
	Active    bool                  `json:"active"`
	Goal      string                `json:"goal"`
	Notes     string                `json:"notes"`
	Exercises []PlanExerciseRequest `json:"exercises" validate:"dive"`
}

// SavePlan creates or fully replaces a workout plan. Saving a plan with
// Active set deactivates every other plan of the student, so at most one
// plan is active afterwards regardless of prior state.
func (s *StudentService) SavePlan(ctx context.Context, studentID string, req PlanRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid plan payload")
	}
	student, err := s.load(ctx, studentID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	plan := models.WorkoutPlan{
		ID:        req.ID,
		Name:      req.Name,
		Active:    req.Active,
		Goal:      req.Goal,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i, entry := range req.Exercises {
		exerciseID := entry.ID
		if exerciseID == "" {
			exerciseID, err = s.alloc.Allocate(ctx, store.KindPlanExercise, studentID)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate exercise id")
			}
		}
		plan.Exercises = append(plan.Exercises, models.PlanExercise{
			ID:                exerciseID,
			LibraryExerciseID: entry.LibraryExerciseID,
			Name:              entry.Name,
			Sets:              entry.Sets,
			Reps:              entry.Reps,
			Load:              entry.Load,
			RestSeconds:       entry.RestSeconds,
			Order:             i + 1,
			Notes:             entry.Notes,
		})
	}

	if plan.ID == "" {
		id, err := s.alloc.Allocate(ctx, store.KindPlan, studentID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate plan id")
		}
		plan.ID = id
		student.Plans = append(student.Plans, plan)
	} else {
		found := false
		for i := range student.Plans {
			if student.Plans[i].ID == plan.ID {
				plan.CreatedAt = student.Plans[i].CreatedAt
				student.Plans[i] = plan
				found = true
				break
			}
		}
		if !found {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "plan not found")
		}
	}

	if plan.Active {
		for i := range student.Plans {
			if student.Plans[i].ID != plan.ID {
				student.Plans[i].Active = false
			}
		}
	}

	if err := s.persist(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// RemovePlan drops a workout plan from the student document.
func (s *StudentService) RemovePlan(ctx context.Context, studentID, planID string) (*models.Student, error) {
	student, err := s.load(ctx, studentID)
	if err != nil {
		return nil, err
	}
	kept := student.Plans[:0]
	for _, p := range student.Plans {
		if p.ID != planID {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(student.Plans) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "plan not found")
	}
	student.Plans = kept
	if err := s.persist(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}
