package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitstudio/studio-api/internal/models"
	"github.com/fitstudio/studio-api/internal/service"
	appErrors "github.com/fitstudio/studio-api/pkg/errors"
	"github.com/fitstudio/studio-api/pkg/response"
)

// WaitlistHandler exposes waitlist endpoints.
type WaitlistHandler struct {
	waitlist *service.WaitlistService
}

// NewWaitlistHandler constructs WaitlistHandler.
func NewWaitlistHandler(waitlist *service.WaitlistService) *WaitlistHandler {
	return &WaitlistHandler{waitlist: waitlist}
}

// List returns waitlist entries, optionally filtered by status.
func (h *WaitlistHandler) List(c *gin.Context) {
	people := h.waitlist.List(c.Request.Context(), models.WaitlistStatus(c.Query("status")))
	response.JSON(c, http.StatusOK, people, nil)
}

// Create registers a prospect.
func (h *WaitlistHandler) Create(c *gin.Context) {
	var req service.WaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	person, err := h.waitlist.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, person)
}

// Update edits a waitlist entry.
func (h *WaitlistHandler) Update(c *gin.Context) {
	var req service.WaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	person, err := h.waitlist.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, person, nil)
}

// Promote converts a waitlist entry into a student.
func (h *WaitlistHandler) Promote(c *gin.Context) {
	student, err := h.waitlist.Promote(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, student)
}

// Delete removes a waitlist entry.
func (h *WaitlistHandler) Delete(c *gin.Context) {
	if err := h.waitlist.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
