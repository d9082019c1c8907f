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
	"github.com/fitstudio/studio-api/internal/report"
	"github.com/fitstudio/studio-api/internal/store"
	appErrors "github.com/fitstudio/studio-api/pkg/errors"
)

// CreateStudentRequest holds payload for creating students.
type CreateStudentRequest struct {
	FullName  string     `json:"fullName" validate:"required"`
	Email     string     `json:"email" validate:"omitempty,email"`
	Phone     string     `json:"phone"`
	BirthDate *time.Time `json:"birthDate"`
	StartDate time.Time  `json:"startDate"`
	Objective string     `json:"objective"`
	Notes     string     `json:"notes"`
}

// UpdateStudentRequest holds payload for updating a student's identity and
// lifecycle fields. Sub-collections have their own commands.
type UpdateStudentRequest struct {
	FullName  string               `json:"fullName" validate:"required"`
	Email     string               `json:"email" validate:"omitempty,email"`
	Phone     string               `json:"phone"`
	BirthDate *time.Time           `json:"birthDate"`
	StartDate time.Time            `json:"startDate"`
	Status    models.StudentStatus `json:"status" validate:"required,oneof=active expired blocked inactive paused"`
	Objective string               `json:"objective"`
	Notes     string               `json:"notes"`
}

// StudentService handles every command that touches a student document.
type StudentService struct {
	st           *store.Store
	students     *store.StudentRepository
	appointments *store.AppointmentRepository
	alloc        *store.Allocator
	cache        *cache.ViewCache
	validator    *validator.Validate
	logger       *zap.Logger
	now          func() time.Time
}

// NewStudentService constructs the student service.
func NewStudentService(st *store.Store, alloc *store.Allocator, viewCache *cache.ViewCache, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{
		st:           st,
		students:     store.NewStudentRepository(st),
		appointments: store.NewAppointmentRepository(st),
		alloc:        alloc,
		cache:        viewCache,
		validator:    validate,
		logger:       logger,
		now:          time.Now,
	}
}

// List reads students from the view cache.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) []models.Student {
	snap := s.cache.Snapshot()
	if filter.Status == "" && filter.Search == "" {
		return snap.Students
	}
	var out []models.Student
	for _, student := range snap.Students {
		if filter.Status != "" && student.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !matchesSearch(student, filter.Search) {
			continue
		}
		out = append(out, student)
	}
	return out
}

// Get returns one student from the view cache.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	for _, student := range s.cache.Snapshot().Students {
		if student.ID == id {
			return &student, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
}

// Create registers a new student with a freshly allocated identifier.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	id, err := s.alloc.Allocate(ctx, store.KindStudent, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate student id")
	}
	now := s.now().UTC()
	startDate := req.StartDate
	if startDate.IsZero() {
		startDate = now
	}
	student := &models.Student{
		ID:        id,
		FullName:  req.FullName,
		Email:     req.Email,
		Phone:     req.Phone,
		BirthDate: req.BirthDate,
		StartDate: startDate,
		Status:    models.StudentStatusActive,
		Objective: req.Objective,
		Notes:     req.Notes,
		CreatedAt: now,
	}
	if err := s.persist(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Update replaces a student's identity and lifecycle fields.
func (s *StudentService) Update(ctx context.Context, id string, req UpdateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	student.FullName = req.FullName
	student.Email = req.Email
	student.Phone = req.Phone
	student.BirthDate = req.BirthDate
	if !req.StartDate.IsZero() {
		student.StartDate = req.StartDate
	}
	student.Status = req.Status
	student.Objective = req.Objective
	student.Notes = req.Notes
	if err := s.persist(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// Delete removes a student and cascades to every appointment referencing
// them, atomically. The view cache is only touched after the transaction
// committed.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	err := s.st.InTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.students.WithTx(tx).Delete(ctx, id); err != nil {
			return err
		}
		removed, err := s.appointments.WithTx(tx).DeleteByStudent(ctx, id)
		if err != nil {
			return err
		}
		s.logger.Info("student deleted",
			zap.String("student_id", id),
			zap.Int64("appointments_removed", removed),
		)
		return nil
	})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrTransaction.Code, appErrors.ErrTransaction.Status, "student deletion failed")
	}
	s.cache.RemoveStudent(id)
	return nil
}

// load fetches the persisted document, mapping missing rows to not-found.
func (s *StudentService) load(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.students.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// persist writes the full document and mirrors it into the view cache.
// The rolled-up payment status is recomputed on every student write; it is
// never taken from the request.
func (s *StudentService) persist(ctx context.Context, student *models.Student) error {
	student.PaymentStatus = report.RollupPaymentStatus(student.Payments)
	student.UpdatedAt = s.now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = student.UpdatedAt
	}
	if err := s.students.Put(ctx, student); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save student")
	}
	s.cache.UpsertStudent(*student)
	return nil
}

func matchesSearch(student models.Student, needle string) bool {
	return containsFold(student.FullName, needle) || containsFold(student.Email, needle)
}
