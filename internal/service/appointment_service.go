package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fitstudio/studio-api/internal/cache"
	"github.com/fitstudio/studio-api/internal/models"
	"github.com/fitstudio/studio-api/internal/report"
	"github.com/fitstudio/studio-api/internal/store"
	appErrors "github.com/fitstudio/studio-api/pkg/errors"
)

// AppointmentRequest holds payload for scheduling an appointment.
// StudentID may be empty for blocked slots and trial sessions.
type AppointmentRequest struct {
	StudentID       string    `json:"studentId"`
	Title           string    `json:"title" validate:"required"`
	Date            time.Time `json:"date" validate:"required"`
	DurationMinutes int       `json:"durationMinutes" validate:"omitempty,min=5"`
	Kind            string    `json:"kind"`
	Notes           string    `json:"notes"`
}

// AppointmentService handles the appointment commands.
type AppointmentService struct {
	appointments *store.AppointmentRepository
	students     *store.StudentRepository
	alloc        *store.Allocator
	cache        *cache.ViewCache
	validator    *validator.Validate
	logger       *zap.Logger
	now          func() time.Time
}

// NewAppointmentService constructs the appointment service.
func NewAppointmentService(st *store.Store, alloc *store.Allocator, viewCache *cache.ViewCache, validate *validator.Validate, logger *zap.Logger) *AppointmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AppointmentService{
		appointments: store.NewAppointmentRepository(st),
		students:     store.NewStudentRepository(st),
		alloc:        alloc,
		cache:        viewCache,
		validator:    validate,
		logger:       logger,
		now:          time.Now,
	}
}

// List reads appointments from the view cache, chronologically sorted.
func (s *AppointmentService) List(ctx context.Context, filter models.AppointmentFilter) []models.Appointment {
	var out []models.Appointment
	for _, appt := range s.cache.Snapshot().Appointments {
		if filter.StudentID != "" && appt.StudentID != filter.StudentID {
			continue
		}
		if filter.Status != "" && appt.Status != filter.Status {
			continue
		}
		if filter.From != nil && report.Day(appt.Date).Before(report.Day(*filter.From)) {
			continue
		}
		if filter.To != nil && report.Day(appt.Date).After(report.Day(*filter.To)) {
			continue
		}
		out = append(out, appt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Get returns one appointment from the view cache.
func (s *AppointmentService) Get(ctx context.Context, id string) (*models.Appointment, error) {
	for _, appt := range s.cache.Snapshot().Appointments {
		if appt.ID == id {
			return &appt, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "appointment not found")
}

// Create schedules a new appointment.
func (s *AppointmentService) Create(ctx context.Context, req AppointmentRequest) (*models.Appointment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid appointment payload")
	}
	if req.StudentID != "" {
		if _, err := s.students.Get(ctx, req.StudentID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrValidation, "appointment references an unknown student")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check student")
		}
	}
	id, err := s.alloc.Allocate(ctx, store.KindAppointment, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate appointment id")
	}
	now := s.now().UTC()
	appt := &models.Appointment{
		ID:              id,
		StudentID:       req.StudentID,
		Title:           req.Title,
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		Status:          models.AppointmentScheduled,
		Kind:            req.Kind,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.persist(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// Update replaces a scheduled appointment's details. Completed and
// cancelled appointments are immutable.
func (s *AppointmentService) Update(ctx context.Context, id string, req AppointmentRequest) (*models.Appointment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid appointment payload")
	}
	appt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status != models.AppointmentScheduled {
		return nil, appErrors.Clone(appErrors.ErrConflict, "only scheduled appointments can be edited")
	}
	appt.StudentID = req.StudentID
	appt.Title = req.Title
	appt.Date = req.Date
	appt.DurationMinutes = req.DurationMinutes
	appt.Kind = req.Kind
	appt.Notes = req.Notes
	if err := s.persist(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// Complete marks an appointment as completed.
func (s *AppointmentService) Complete(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if appt.Status == models.AppointmentCancelled {
		return nil, appErrors.Clone(appErrors.ErrConflict, "cancelled appointments cannot be completed")
	}
	appt.Status = models.AppointmentCompleted
	if err := s.persist(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// Cancel marks an appointment as cancelled with an optional reason.
func (s *AppointmentService) Cancel(ctx context.Context, id, reason string) (*models.Appointment, error) {
	appt, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	appt.Status = models.AppointmentCancelled
	appt.CancelReason = strings.TrimSpace(reason)
	if err := s.persist(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// Reschedule never moves the original appointment. It creates a fresh
// appointment at the new date, then cancels the original annotated with
// the replacement's id.
func (s *AppointmentService) Reschedule(ctx context.Context, id string, newDate time.Time) (*models.Appointment, error) {
	if newDate.IsZero() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "new date is required")
	}
	original, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if original.Status != models.AppointmentScheduled {
		return nil, appErrors.Clone(appErrors.ErrConflict, "only scheduled appointments can be rescheduled")
	}

	newID, err := s.alloc.Allocate(ctx, store.KindAppointment, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate appointment id")
	}
	now := s.now().UTC()
	replacement := &models.Appointment{
		ID:              newID,
		StudentID:       original.StudentID,
		Title:           original.Title,
		Date:            newDate,
		DurationMinutes: original.DurationMinutes,
		Status:          models.AppointmentScheduled,
		Kind:            original.Kind,
		Notes:           original.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.persist(ctx, replacement); err != nil {
		return nil, err
	}

	original.Status = models.AppointmentCancelled
	original.CancelReason = "rescheduled"
	original.RescheduledTo = newID
	if err := s.persist(ctx, original); err != nil {
		return nil, err
	}
	return replacement, nil
}

// Delete removes an appointment entirely.
func (s *AppointmentService) Delete(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.appointments.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete appointment")
	}
	s.cache.RemoveAppointment(id)
	return nil
}

func (s *AppointmentService) load(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := s.appointments.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "appointment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load appointment")
	}
	return appt, nil
}

func (s *AppointmentService) persist(ctx context.Context, appt *models.Appointment) error {
	appt.UpdatedAt = s.now().UTC()
	if err := s.appointments.Put(ctx, appt); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save appointment")
	}
	s.cache.UpsertAppointment(*appt)
	return nil
}
