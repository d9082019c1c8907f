package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fitstudio/studio-api/internal/models"
	"github.com/fitstudio/studio-api/internal/report"
	"github.com/fitstudio/studio-api/internal/service"
	appErrors "github.com/fitstudio/studio-api/pkg/errors"
	"github.com/fitstudio/studio-api/pkg/response"
)

// ReportHandler exposes the read-only aggregated reports and their
// exported renderings.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler constructs ReportHandler.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// reportRequest reads the window selection from query parameters.
func reportRequest(c *gin.Context) (service.ReportRequest, error) {
	req := service.ReportRequest{Kind: report.PeriodKind(c.Query("period"))}
	if raw := c.Query("start"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return req, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid start date")
		}
		req.Start = &t
	}
	if raw := c.Query("end"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return req, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid end date")
		}
		req.End = &t
	}
	return req, nil
}

// Financial returns the money KPIs and the revenue evolution series.
func (h *ReportHandler) Financial(c *gin.Context) {
	req, err := reportRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	rep, err := h.reports.Financial(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rep, nil)
}

// Engagement returns per-student activity averages.
func (h *ReportHandler) Engagement(c *gin.Context) {
	req, err := reportRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	rep, err := h.reports.Engagement(c.Request.Context(), req, models.StudentStatus(c.Query("status")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rep, nil)
}

// Retention returns the average tenure of departed students.
func (h *ReportHandler) Retention(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.reports.Retention(c.Request.Context()), nil)
}

// Popularity ranks catalog exercises by plan usage.
func (h *ReportHandler) Popularity(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.reports.Popularity(c.Request.Context()), nil)
}

// ExportFinancial streams the financial report as CSV or PDF, chosen by
// the format query parameter.
func (h *ReportHandler) ExportFinancial(c *gin.Context) {
	req, err := reportRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var file *service.ExportFile
	switch c.DefaultQuery("format", "csv") {
	case "csv":
		file, err = h.reports.ExportFinancialCSV(c.Request.Context(), req)
	case "pdf":
		file, err = h.reports.ExportFinancialPDF(c.Request.Context(), req)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unsupported export format"))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, file.ContentType, file.Name, file.Data)
}
