package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fitstudio/studio-api/internal/models"
	"github.com/fitstudio/studio-api/internal/service"
	appErrors "github.com/fitstudio/studio-api/pkg/errors"
	"github.com/fitstudio/studio-api/pkg/response"
)

// AppointmentHandler exposes calendar endpoints.
type AppointmentHandler struct {
	appointments *service.AppointmentService
}

// NewAppointmentHandler constructs AppointmentHandler.
func NewAppointmentHandler(appointments *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointments: appointments}
}

// List returns appointments filtered by student, status and date range.
func (h *AppointmentHandler) List(c *gin.Context) {
	filter := models.AppointmentFilter{
		StudentID: c.Query("studentId"),
		Status:    models.AppointmentStatus(c.Query("status")),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid from date"))
			return
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid to date"))
			return
		}
		filter.To = &t
	}
	appointments := h.appointments.List(c.Request.Context(), filter)
	response.JSON(c, http.StatusOK, appointments, nil)
}

// Get returns one appointment by id.
func (h *AppointmentHandler) Get(c *gin.Context) {
	appt, err := h.appointments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, appt, nil)
}

// Create schedules an appointment.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req service.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	appt, err := h.appointments.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, appt)
}

// Update edits a still-scheduled appointment.
func (h *AppointmentHandler) Update(c *gin.Context) {
	var req service.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	appt, err := h.appointments.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, appt, nil)
}

// Complete marks an appointment completed.
func (h *AppointmentHandler) Complete(c *gin.Context) {
	appt, err := h.appointments.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, appt, nil)
}

// Cancel marks an appointment cancelled, with an optional reason.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&req)
	appt, err := h.appointments.Cancel(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, appt, nil)
}

// Reschedule cancels the appointment and creates a replacement on the new
// date. The replacement is returned.
func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	var req struct {
		Date time.Time `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	appt, err := h.appointments.Reschedule(c.Request.Context(), c.Param("id"), req.Date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, appt)
}

// Delete removes an appointment outright.
func (h *AppointmentHandler) Delete(c *gin.Context) {
	if err := h.appointments.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
