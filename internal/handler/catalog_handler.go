package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitstudio/studio-api/internal/service"
	appErrors "github.com/fitstudio/studio-api/pkg/errors"
	"github.com/fitstudio/studio-api/pkg/response"
)

// CatalogHandler exposes the shared catalogs: workout templates, the
// exercise library and communication templates.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListTemplates returns all workout templates.
func (h *CatalogHandler) ListTemplates(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.catalog.ListTemplates(c.Request.Context()), nil)
}

// CreateTemplate adds a workout template.
func (h *CatalogHandler) CreateTemplate(c *gin.Context) {
	var req service.TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	tpl, err := h.catalog.SaveTemplate(c.Request.Context(), "", req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tpl)
}

// UpdateTemplate replaces a workout template.
func (h *CatalogHandler) UpdateTemplate(c *gin.Context) {
	var req service.TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	tpl, err := h.catalog.SaveTemplate(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tpl, nil)
}

// DeleteTemplate removes a workout template.
func (h *CatalogHandler) DeleteTemplate(c *gin.Context) {
	if err := h.catalog.DeleteTemplate(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListExercises returns the exercise library.
func (h *CatalogHandler) ListExercises(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.catalog.ListExercises(c.Request.Context()), nil)
}

// CreateExercise adds a library exercise.
func (h *CatalogHandler) CreateExercise(c *gin.Context) {
	var req service.ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	ex, err := h.catalog.SaveExercise(c.Request.Context(), "", req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, ex)
}

// UpdateExercise replaces a library exercise.
func (h *CatalogHandler) UpdateExercise(c *gin.Context) {
	var req service.ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	ex, err := h.catalog.SaveExercise(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, ex, nil)
}

// DeleteExercise removes a library exercise. Plan entries referencing it
// keep their snapshot copies; only the weak reference dangles.
func (h *CatalogHandler) DeleteExercise(c *gin.Context) {
	if err := h.catalog.DeleteExercise(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SuggestDescription drafts an exercise description via the external
// text service.
func (h *CatalogHandler) SuggestDescription(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	description, err := h.catalog.SuggestDescription(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"description": description}, nil)
}

// ListCommTemplates returns the communication templates.
func (h *CatalogHandler) ListCommTemplates(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.catalog.ListCommTemplates(c.Request.Context()), nil)
}

// CreateCommTemplate adds a communication template.
func (h *CatalogHandler) CreateCommTemplate(c *gin.Context) {
	var req service.CommTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	tpl, err := h.catalog.SaveCommTemplate(c.Request.Context(), "", req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tpl)
}

// UpdateCommTemplate replaces a communication template.
func (h *CatalogHandler) UpdateCommTemplate(c *gin.Context) {
	var req service.CommTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	tpl, err := h.catalog.SaveCommTemplate(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tpl, nil)
}

// DeleteCommTemplate removes a communication template.
func (h *CatalogHandler) DeleteCommTemplate(c *gin.Context) {
	if err := h.catalog.DeleteCommTemplate(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
