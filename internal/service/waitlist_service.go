package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/fitstudio/studio-api/internal/cache"
	"github.com/fitstudio/studio-api/internal/models"
	"github.com/fitstudio/studio-api/internal/store"
	appErrors "github.com/fitstudio/studio-api/pkg/errors"
)

// WaitlistRequest holds payload for a waitlist entry.
type WaitlistRequest struct {
	FullName string                `json:"fullName" validate:"required"`
	Phone    string                `json:"phone"`
	Email    string                `json:"email" validate:"omitempty,email"`
	Interest string                `json:"interest"`
	Status   models.WaitlistStatus `json:"status" validate:"omitempty,oneof=pending contacted converted discarded"`
	Notes    string                `json:"notes"`
}

// WaitlistService handles waitlist commands, including promotion into the
// student collection.
type WaitlistService struct {
	st        *store.Store
	waitlist  *store.WaitlistRepository
	students  *store.StudentRepository
	alloc     *store.Allocator
	cache     *cache.ViewCache
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewWaitlistService constructs the waitlist service.
func NewWaitlistService(st *store.Store, alloc *store.Allocator, viewCache *cache.ViewCache, validate *validator.Validate, logger *zap.Logger) *WaitlistService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WaitlistService{
		st:        st,
		waitlist:  store.NewWaitlistRepository(st),
		students:  store.NewStudentRepository(st),
		alloc:     alloc,
		cache:     viewCache,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// List reads waitlist entries from the view cache.
func (s *WaitlistService) List(ctx context.Context, status models.WaitlistStatus) []models.WaitlistPerson {
	var out []models.WaitlistPerson
	for _, person := range s.cache.Snapshot().Waitlist {
		if status != "" && person.Status != status {
			continue
		}
		out = append(out, person)
	}
	return out
}

// Create adds a new waitlist entry.
func (s *WaitlistService) Create(ctx context.Context, req WaitlistRequest) (*models.WaitlistPerson, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid waitlist payload")
	}
	id, err := s.alloc.Allocate(ctx, store.KindWaitlist, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate waitlist id")
	}
	now := s.now().UTC()
	status := req.Status
	if status == "" {
		status = models.WaitlistPending
	}
	person := &models.WaitlistPerson{
		ID:        id,
		FullName:  req.FullName,
		Phone:     req.Phone,
		Email:     req.Email,
		Interest:  req.Interest,
		Status:    status,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.persist(ctx, person); err != nil {
		return nil, err
	}
	return person, nil
}

// Update replaces an entry's fields. Converted entries keep their link to
// the created student.
func (s *WaitlistService) Update(ctx context.Context, id string, req WaitlistRequest) (*models.WaitlistPerson, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid waitlist payload")
	}
	person, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	person.FullName = req.FullName
	person.Phone = req.Phone
	person.Email = req.Email
	person.Interest = req.Interest
	person.Notes = req.Notes
	if req.Status != "" && req.Status != person.Status {
		person.Status = req.Status
		if req.Status == models.WaitlistContacted {
			when := s.now().UTC()
			person.ContactedAt = &when
		}
	}
	if err := s.persist(ctx, person); err != nil {
		return nil, err
	}
	return person, nil
}

// Promote creates a student from a waitlist entry and flips the entry to
// converted in the same transaction. The waitlist record is never deleted
// by promotion.
func (s *WaitlistService) Promote(ctx context.Context, id string) (*models.Student, error) {
	person, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if person.Status == models.WaitlistConverted {
		return nil, appErrors.Clone(appErrors.ErrConflict, "waitlist entry already converted")
	}

	// The id is minted before the transaction; a rolled-back promotion
	// burns the sequence number, which is fine. Sequence numbers are never
	// reused.
	studentID, err := s.alloc.Allocate(ctx, store.KindStudent, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate student id")
	}
	now := s.now().UTC()
	student := &models.Student{
		ID:            studentID,
		FullName:      person.FullName,
		Email:         person.Email,
		Phone:         person.Phone,
		StartDate:     now,
		Status:        models.StudentStatusActive,
		PaymentStatus: models.PaymentStatusOnTime,
		Objective:     person.Interest,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	person.Status = models.WaitlistConverted
	person.ConvertedStudentID = studentID
	person.UpdatedAt = now

	err = s.st.InTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.students.WithTx(tx).Put(ctx, student); err != nil {
			return err
		}
		return s.waitlist.WithTx(tx).Put(ctx, person)
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrTransaction.Code, appErrors.ErrTransaction.Status, "waitlist promotion failed")
	}

	s.cache.UpsertStudent(*student)
	s.cache.UpsertWaitlist(*person)
	s.logger.Info("waitlist entry promoted",
		zap.String("waitlist_id", person.ID),
		zap.String("student_id", studentID),
	)
	return student, nil
}

// Delete removes a waitlist entry.
func (s *WaitlistService) Delete(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.waitlist.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete waitlist entry")
	}
	s.cache.RemoveWaitlist(id)
	return nil
}

func (s *WaitlistService) load(ctx context.Context, id string) (*models.WaitlistPerson, error) {
	person, err := s.waitlist.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "waitlist entry not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load waitlist entry")
	}
	return person, nil
}

func (s *WaitlistService) persist(ctx context.Context, person *models.WaitlistPerson) error {
	person.UpdatedAt = s.now().UTC()
	if err := s.waitlist.Put(ctx, person); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save waitlist entry")
	}
	s.cache.UpsertWaitlist(*person)
	return nil
}
