package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fitstudio/studio-api/internal/cache"
	"github.com/fitstudio/studio-api/internal/models"
	"github.com/fitstudio/studio-api/internal/store"
	appErrors "github.com/fitstudio/studio-api/pkg/errors"
)

// ProfileRequest holds payload for the trainer profile.
type ProfileRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"omitempty,email"`
	Phone        string `json:"phone"`
	CREF         string `json:"cref"`
	BusinessName string `json:"businessName"`
}

// ProfileService manages the singleton trainer profile and patch notes.
type ProfileService struct {
	profiles  *store.ProfileRepository
	cache     *cache.ViewCache
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewProfileService constructs the profile service.
func NewProfileService(st *store.Store, viewCache *cache.ViewCache, validate *validator.Validate, logger *zap.Logger) *ProfileService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{
		profiles:  store.NewProfileRepository(st),
		cache:     viewCache,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// Get returns the trainer profile from the view cache.
func (s *ProfileService) Get(ctx context.Context) (*models.TrainerProfile, error) {
	if profile := s.cache.Snapshot().Profile; profile != nil {
		return profile, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "trainer profile not set")
}

// Save replaces the trainer profile.
func (s *ProfileService) Save(ctx context.Context, req ProfileRequest) (*models.TrainerProfile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profile payload")
	}
	profile := &models.TrainerProfile{
		Name:         strings.TrimSpace(req.Name),
		Email:        req.Email,
		Phone:        req.Phone,
		CREF:         req.CREF,
		BusinessName: req.BusinessName,
		UpdatedAt:    s.now().UTC(),
	}
	if err := s.profiles.PutProfile(ctx, profile); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save profile")
	}
	s.cache.SetProfile(*profile)
	return profile, nil
}

// PatchNotes returns the recorded release history.
func (s *ProfileService) PatchNotes(ctx context.Context) []models.PatchNote {
	return s.cache.Snapshot().PatchNotes
}
