package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitstudio/studio-api/internal/service"
	"github.com/fitstudio/studio-api/pkg/response"
)

// DashboardHandler exposes the landing-page summary.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Summary returns the dashboard for the current moment.
func (h *DashboardHandler) Summary(c *gin.Context) {
	dash, err := h.dashboard.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dash, nil)
}
