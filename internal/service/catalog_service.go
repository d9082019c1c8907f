package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fitstudio/studio-api/internal/cache"
	"github.com/fitstudio/studio-api/internal/models"
	"github.com/fitstudio/studio-api/internal/store"
	appErrors "github.com/fitstudio/studio-api/pkg/errors"
)

// descriptionSuggester is the boundary to the external generative-text
// collaborator.
type descriptionSuggester interface {
	DescribeExercise(ctx context.Context, exerciseName string) (string, error)
}

// TemplateRequest holds payload for a workout template.
type TemplateRequest struct {
	Name        string                `json:"name" validate:"required"`
	Description string                `json:"description"`
	Level       string                `json:"level"`
	Exercises   []PlanExerciseRequest `json:"exercises" validate:"dive"`
}

// ExerciseRequest holds payload for a library exercise.
type ExerciseRequest struct {
	Name        string `json:"name" validate:"required"`
	MuscleGroup string `json:"muscleGroup"`
	Equipment   string `json:"equipment"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl" validate:"omitempty,url"`
}

// CommTemplateRequest holds payload for a communication template.
type CommTemplateRequest struct {
	Name    string `json:"name" validate:"required"`
	Channel string `json:"channel"`
	Body    string `json:"body" validate:"required"`
}

// CatalogService manages the global catalog: workout templates, the
// exercise library and communication templates.
type CatalogService struct {
	catalog   *store.CatalogRepository
	alloc     *store.Allocator
	cache     *cache.ViewCache
	suggester descriptionSuggester
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewCatalogService constructs the catalog service.
func NewCatalogService(st *store.Store, alloc *store.Allocator, viewCache *cache.ViewCache, suggester descriptionSuggester, validate *validator.Validate, logger *zap.Logger) *CatalogService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		catalog:   store.NewCatalogRepository(st),
		alloc:     alloc,
		cache:     viewCache,
		suggester: suggester,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// ListTemplates reads workout templates from the view cache.
func (s *CatalogService) ListTemplates(ctx context.Context) []models.WorkoutTemplate {
	return s.cache.Snapshot().Templates
}

// SaveTemplate creates or replaces a workout template.
func (s *CatalogService) SaveTemplate(ctx context.Context, id string, req TemplateRequest) (*models.WorkoutTemplate, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid template payload")
	}
	now := s.now().UTC()
	tpl := &models.WorkoutTemplate{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Level:       req.Level,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for i, entry := range req.Exercises {
		tpl.Exercises = append(tpl.Exercises, models.PlanExercise{
			ID:                entry.ID,
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
	if tpl.ID == "" {
		allocated, err := s.alloc.Allocate(ctx, store.KindTemplate, "")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate template id")
		}
		tpl.ID = allocated
	} else if existing, err := s.catalog.GetTemplate(ctx, tpl.ID); err == nil {
		tpl.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load template")
	}
	if err := s.catalog.PutTemplate(ctx, tpl); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save template")
	}
	s.cache.UpsertTemplate(*tpl)
	return tpl, nil
}

// DeleteTemplate removes a workout template.
func (s *CatalogService) DeleteTemplate(ctx context.Context, id string) error {
	if err := s.catalog.DeleteTemplate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete template")
	}
	s.cache.RemoveTemplate(id)
	return nil
}

// ListExercises reads the exercise library from the view cache.
func (s *CatalogService) ListExercises(ctx context.Context) []models.LibraryExercise {
	return s.cache.Snapshot().Exercises
}

// SaveExercise creates or replaces a library exercise.
func (s *CatalogService) SaveExercise(ctx context.Context, id string, req ExerciseRequest) (*models.LibraryExercise, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exercise payload")
	}
	now := s.now().UTC()
	ex := &models.LibraryExercise{
		ID:          id,
		Name:        req.Name,
		MuscleGroup: req.MuscleGroup,
		Equipment:   req.Equipment,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if ex.ID == "" {
		allocated, err := s.alloc.Allocate(ctx, store.KindLibraryExercise, "")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate exercise id")
		}
		ex.ID = allocated
	} else if existing, err := s.catalog.GetExercise(ctx, ex.ID); err == nil {
		ex.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load exercise")
	}
	if err := s.catalog.PutExercise(ctx, ex); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save exercise")
	}
	s.cache.UpsertExercise(*ex)
	return ex, nil
}

// DeleteExercise removes a library exercise. Plan entries referencing it
// keep a dangling weak reference; nothing cascades.
func (s *CatalogService) DeleteExercise(ctx context.Context, id string) error {
	if err := s.catalog.DeleteExercise(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete exercise")
	}
	s.cache.RemoveExercise(id)
	return nil
}

// SuggestDescription asks the generative-text collaborator for a draft
// description. A failure degrades to a typed error and changes nothing;
// there are no retries.
func (s *CatalogService) SuggestDescription(ctx context.Context, exerciseName string) (string, error) {
	if exerciseName == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "exercise name is required")
	}
	description, err := s.suggester.DescribeExercise(ctx, exerciseName)
	if err != nil {
		s.logger.Warn("description suggestion failed", zap.Error(err))
		return "", appErrors.Wrap(err, appErrors.ErrSuggestion.Code, appErrors.ErrSuggestion.Status, appErrors.ErrSuggestion.Message)
	}
	return description, nil
}

// ListCommTemplates reads communication templates from the view cache.
func (s *CatalogService) ListCommTemplates(ctx context.Context) []models.CommunicationTemplate {
	return s.cache.Snapshot().CommTemplates
}

// SaveCommTemplate creates or replaces a communication template.
func (s *CatalogService) SaveCommTemplate(ctx context.Context, id string, req CommTemplateRequest) (*models.CommunicationTemplate, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid template payload")
	}
	now := s.now().UTC()
	tpl := &models.CommunicationTemplate{
		ID:        id,
		Name:      req.Name,
		Channel:   req.Channel,
		Body:      req.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if tpl.ID == "" {
		allocated, err := s.alloc.Allocate(ctx, store.KindCommTemplate, "")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate template id")
		}
		tpl.ID = allocated
	}
	if err := s.catalog.PutCommTemplate(ctx, tpl); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save template")
	}
	s.cache.UpsertCommTemplate(*tpl)
	return tpl, nil
}

// DeleteCommTemplate removes a communication template.
func (s *CatalogService) DeleteCommTemplate(ctx context.Context, id string) error {
	if err := s.catalog.DeleteCommTemplate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete template")
	}
	s.cache.RemoveCommTemplate(id)
	return nil
}
