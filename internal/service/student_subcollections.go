package service

import (
	"context"
	"time"

	"github.com/fitstudio/studio-api/internal/models"
	"github.com/fitstudio/studio-api/internal/report"
	"github.com/fitstudio/studio-api/internal/store"
	appErrors "github.com/fitstudio/studio-api/pkg/errors"
)

// PaymentRequest holds payload for one payment record.
type PaymentRequest struct {
	Amount  float64                    `json:"amount" validate:"required,gt=0"`
	Date    time.Time                  `json:"date" validate:"required"`
	DueDate *time.Time                 `json:"dueDate"`
	Status  models.PaymentRecordStatus `json:"status" validate:"required,oneof=paid pending late"`
	Method  string                     `json:"method"`
	Notes   string                     `json:"notes"`
}

// AddPayment appends a payment to the student's history. The student's
// rolled-up payment status is recomputed as part of the write.
func (s *StudentService) AddPayment(ctx context.Context, studentID string, req PaymentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}
	student, err := s.load(ctx, studentID)
	if err != nil {
		return nil, err
	}
	id, err := s.alloc.Allocate(ctx, store.KindPayment, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate payment id")
	}
	student.Payments = append(student.Payments, models.Payment{
		ID:      id,
		Amount:  req.Amount,
		Date:    req.Date,
		DueDate: req.DueDate,
		Status:  req.Status,
		Method:  req.Method,
		Notes:   req.Notes,
	})
	if err := s.persist(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// UpdatePayment replaces an existing payment record.
func (s *StudentService) UpdatePayment(ctx context.Context, studentID, paymentID string, req PaymentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payment payload")
	}
	student, err := s.load(ctx, studentID)
	if err != nil {
		return nil, err
	}
	found := false
	for i := range student.Payments {
		if student.Payments[i].ID == paymentID {
			student.Payments[i] = models.Payment{
				ID:      paymentID,
				Amount:  req.Amount,
				Date:    req.Date,
				DueDate: req.DueDate,
				Status:  req.Status,
				Method:  req.Method,
				Notes:   req.Notes,
			}
			found = true
			break
		}
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "payment not found")
	}
	if err := s.persist(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// RemovePayment drops a payment record from the history.
func (s *StudentService) RemovePayment(ctx context.Context, studentID, paymentID string) (*models.Student, error) {
	student, err := s.load(ctx, studentID)
	if err != nil {
		return nil, err
	}
	kept := student.Payments[:0]
	for _, p := range student.Payments {
		if p.ID != paymentID {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(student.Payments) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "payment not found")
	}
	student.Payments = kept
	if err := s.persist(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// MeasurementRequest holds payload for a body-composition record. Every
// numeric field is optional; absent values stay absent.
type MeasurementRequest struct {
	Date       time.Time  `json:"date" validate:"required"`
	WeightKg   *float64   `json:"weightKg"`
	BodyFatPct *float64   `json:"bodyFatPct"`
	MusclePct  *float64   `json:"musclePct"`
	WaistCm    *float64   `json:"waistCm"`
	HipCm      *float64   `json:"hipCm"`
	ChestCm    *float64   `json:"chestCm"`
	ArmCm      *float64   `json:"armCm"`
	ThighCm    *float64   `json:"thighCm"`
	Notes      string     `json:"notes"`
	NextReview *time.Time `json:"nextReview"`
}

// AddMeasurement appends a measurement and returns goal-update suggestions
// for active goals whose metric the measurement carries. The caller
// decides whether to surface them.
func (s *StudentService) AddMeasurement(ctx context.Context, studentID string, req MeasurementRequest) (*models.Student, []report.GoalSuggestion, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid measurement payload")
	}
	student, err := s.load(ctx, studentID)
	if err != nil {
		return nil, nil, err
	}
	id, err := s.alloc.Allocate(ctx, store.KindMeasurement, studentID)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate measurement id")
	}
	measurement := models.BodyMeasurement{
		ID:         id,
		Date:       req.Date,
		WeightKg:   req.WeightKg,
		BodyFatPct: req.BodyFatPct,
		MusclePct:  req.MusclePct,
		WaistCm:    req.WaistCm,
		HipCm:      req.HipCm,
		ChestCm:    req.ChestCm,
		ArmCm:      req.ArmCm,
		ThighCm:    req.ThighCm,
		Notes:      req.Notes,
		RecordedAt: s.now().UTC(),
		NextReview: req.NextReview,
	}
	student.Measurements = append(student.Measurements, measurement)
	if err := s.persist(ctx, student); err != nil {
		return nil, nil, err
	}
	return student, report.SuggestGoalUpdates(measurement, student.Goals), nil
}

// SkinfoldRequest holds caliper readings in millimetres.
type SkinfoldRequest struct {
	Date        time.Time `json:"date" validate:"required"`
	TricepsMm   *float64  `json:"tricepsMm"`
	BicepsMm    *float64  `json:"bicepsMm"`
	SubscapMm   *float64  `json:"subscapMm"`
	SuprailacMm *float64  `json:"suprailiacMm"`
	AbdominalMm *float64  `json:"abdominalMm"`
	ThighMm     *float64  `json:"thighMm"`
	CalfMm      *float64  `json:"calfMm"`
	Notes       string    `json:"notes"`
}

// AddSkinfold appends a skinfold entry.
func (s *StudentService) AddSkinfold(ctx context.Context, studentID string, req SkinfoldRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid skinfold payload")
	}
	student, err := s.load(ctx, studentID)
	if err != nil {
		return nil, err
	}
	id, err := s.alloc.Allocate(ctx, store.KindSkinfold, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate skinfold id")
	}
	student.Skinfolds = append(student.Skinfolds, models.SkinfoldEntry{
		ID:          id,
		Date:        req.Date,
		TricepsMm:   req.TricepsMm,
		BicepsMm:    req.BicepsMm,
		SubscapMm:   req.SubscapMm,
		SuprailacMm: req.SuprailacMm,
		AbdominalMm: req.AbdominalMm,
		ThighMm:     req.ThighMm,
		CalfMm:      req.CalfMm,
		Notes:       req.Notes,
	})
	if err := s.persist(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// NoteRequest holds payload for a session note or diary entry.
type NoteRequest struct {
	Date time.Time `json:"date" validate:"required"`
	Text string    `json:"text" validate:"required"`
}

// AddSessionNote appends a session note.
func (s *StudentService) AddSessionNote(ctx context.Context, studentID string, req NoteRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid note payload")
	}
	student, err := s.load(ctx, studentID)
	if err != nil {
		return nil, err
	}
	id, err := s.alloc.Allocate(ctx, store.KindSessionNote, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate note id")
	}
	student.SessionNotes = append(student.SessionNotes, models.SessionNote{ID: id, Date: req.Date, Text: req.Text})
	if err := s.persist(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

// DiaryRequest holds payload for a diary entry.
type DiaryRequest struct {
	Date        time.Time `json:"date" validate:"required"`
	Mood        string    `json:"mood"`
	EnergyLevel *int      `json:"energyLevel" validate:"omitempty,min=1,max=5"`
	Text        string    `json:"text"`
}

// AddDiaryEntry appends a diary entry. Diary entries count as progress
// updates for engagement reporting.
func (s *StudentService) AddDiaryEntry(ctx context.Context, studentID string, req DiaryRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid diary payload")
	}
	student, err := s.load(ctx, studentID)
	if err != nil {
		return nil, err
	}
	id, err := s.alloc.Allocate(ctx, store.KindDiaryEntry, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to allocate diary id")
	}
	student.DiaryEntries = append(student.DiaryEntries, models.DiaryEntry{
		ID:          id,
		Date:        req.Date,
		Mood:        req.Mood,
		EnergyLevel: req.EnergyLevel,
		Text:        req.Text,
	})
	if err := s.persist(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}
