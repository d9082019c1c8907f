package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fitstudio/studio-api/internal/models"
	"github.com/fitstudio/studio-api/internal/service"
	appErrors "github.com/fitstudio/studio-api/pkg/errors"
	"github.com/fitstudio/studio-api/pkg/response"
)

// StudentHandler exposes student endpoints, sub-collections included.
type StudentHandler struct {
	students *service.StudentService
}

// NewStudentHandler constructs StudentHandler.
func NewStudentHandler(students *service.StudentService) *StudentHandler {
	return &StudentHandler{students: students}
}

// List returns students, optionally filtered by status and search.
func (h *StudentHandler) List(c *gin.Context) {
	filter := models.StudentFilter{
		Status: models.StudentStatus(c.Query("status")),
		Search: strings.TrimSpace(c.Query("search")),
	}
	students := h.students.List(c.Request.Context(), filter)
	response.JSON(c, http.StatusOK, students, nil)
}

// Get returns one student by id.
func (h *StudentHandler) Get(c *gin.Context) {
	student, err := h.students.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Create registers a student.
func (h *StudentHandler) Create(c *gin.Context) {
	var req service.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Update replaces a student's identity and lifecycle fields.
func (h *StudentHandler) Update(c *gin.Context) {
	var req service.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// Delete removes a student and their appointments.
func (h *StudentHandler) Delete(c *gin.Context) {
	if err := h.students.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AddPayment appends a payment to the student's history.
func (h *StudentHandler) AddPayment(c *gin.Context) {
	var req service.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.AddPayment(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// UpdatePayment replaces one payment entry.
func (h *StudentHandler) UpdatePayment(c *gin.Context) {
	var req service.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.UpdatePayment(c.Request.Context(), c.Param("id"), c.Param("paymentId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// RemovePayment drops one payment entry.
func (h *StudentHandler) RemovePayment(c *gin.Context) {
	student, err := h.students.RemovePayment(c.Request.Context(), c.Param("id"), c.Param("paymentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// AddMeasurement records a body measurement. Goal suggestions derived from
// the new values ride along in the response meta; nothing is auto-applied.
func (h *StudentHandler) AddMeasurement(c *gin.Context) {
	var req service.MeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, suggestions, err := h.students.AddMeasurement(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	var meta map[string]interface{}
	if len(suggestions) > 0 {
		meta = map[string]interface{}{"goalSuggestions": suggestions}
	}
	response.JSON(c, http.StatusCreated, student, nil, meta)
}

// AddSkinfold records a skinfold protocol entry.
func (h *StudentHandler) AddSkinfold(c *gin.Context) {
	var req service.SkinfoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.AddSkinfold(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// AddSessionNote records a session note.
func (h *StudentHandler) AddSessionNote(c *gin.Context) {
	var req service.NoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.AddSessionNote(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// AddDiaryEntry records a training diary entry.
func (h *StudentHandler) AddDiaryEntry(c *gin.Context) {
	var req service.DiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.AddDiaryEntry(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// SaveGoal creates or updates a detailed goal.
func (h *StudentHandler) SaveGoal(c *gin.Context) {
	var req service.GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.SaveGoal(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// RemoveGoal drops one detailed goal.
func (h *StudentHandler) RemoveGoal(c *gin.Context) {
	student, err := h.students.RemoveGoal(c.Request.Context(), c.Param("id"), c.Param("goalId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// SavePlan creates or updates a workout plan.
func (h *StudentHandler) SavePlan(c *gin.Context) {
	var req service.PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	student, err := h.students.SavePlan(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

// RemovePlan drops one workout plan.
func (h *StudentHandler) RemovePlan(c *gin.Context) {
	student, err := h.students.RemovePlan(c.Request.Context(), c.Param("id"), c.Param("planId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}
