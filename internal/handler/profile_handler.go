package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitstudio/studio-api/internal/service"
	appErrors "github.com/fitstudio/studio-api/pkg/errors"
	"github.com/fitstudio/studio-api/pkg/response"
)

// ProfileHandler exposes the trainer profile and patch-note endpoints.
type ProfileHandler struct {
	profile *service.ProfileService
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(profile *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profile: profile}
}

// Get returns the trainer profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profile.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}

// Save replaces the trainer profile.
func (h *ProfileHandler) Save(c *gin.Context) {
	var req service.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	profile, err := h.profile.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}

// PatchNotes returns the release history.
func (h *ProfileHandler) PatchNotes(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.profile.PatchNotes(c.Request.Context()), nil)
}
