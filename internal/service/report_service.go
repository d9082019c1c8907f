package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fitstudio/studio-api/internal/cache"
	"github.com/fitstudio/studio-api/internal/models"
	"github.com/fitstudio/studio-api/internal/report"
	"github.com/fitstudio/studio-api/pkg/config"
	appErrors "github.com/fitstudio/studio-api/pkg/errors"
	"github.com/fitstudio/studio-api/pkg/export"
)

// ReportRequest selects a reporting window. Kind names a period; start and
// end are only read for the custom kind.
type ReportRequest struct {
	Kind  report.PeriodKind `json:"period"`
	Start *time.Time        `json:"start,omitempty"`
	End   *time.Time        `json:"end,omitempty"`
}

// FinancialReport is the money view for one window.
type FinancialReport struct {
	Window    report.Window          `json:"window"`
	KPIs      report.FinancialKPIs   `json:"kpis"`
	Evolution []report.RevenueBucket `json:"evolution"`
}

// EngagementReport is the activity view for one window.
type EngagementReport struct {
	Window report.Window         `json:"window"`
	KPIs   report.EngagementKPIs `json:"kpis"`
}

// ExportFile is a rendered report ready for download.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ReportService orchestrates cache snapshots through the aggregation
// functions. It never touches the store directly and never mutates the
// snapshot it reads.
type ReportService struct {
	cache   *cache.ViewCache
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	reports config.ReportsConfig
	logger  *zap.Logger
	now     func() time.Time
}

// NewReportService constructs the report service.
func NewReportService(viewCache *cache.ViewCache, reports config.ReportsConfig, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		cache:   viewCache,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		reports: reports,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *ReportService) window(req ReportRequest) (report.Window, error) {
	kind := req.Kind
	if kind == "" {
		kind = report.PeriodCurrentMonth
	}
	window, err := report.ResolveWindow(kind, s.now().UTC(), req.Start, req.End)
	if err != nil {
		return report.Window{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid report period")
	}
	return window, nil
}

// Financial computes the financial KPIs and the revenue evolution series.
func (s *ReportService) Financial(ctx context.Context, req ReportRequest) (*FinancialReport, error) {
	window, err := s.window(req)
	if err != nil {
		return nil, err
	}
	payments := report.FlattenPayments(s.cache.Snapshot().Students)
	return &FinancialReport{
		Window:    window,
		KPIs:      report.ComputeFinancialKPIs(payments, window, s.now().UTC()),
		Evolution: report.RevenueEvolution(payments, window, s.reports.DailyBucketMaxDays),
	}, nil
}

// Engagement computes per-student activity averages. An empty status filter
// considers the whole roster.
func (s *ReportService) Engagement(ctx context.Context, req ReportRequest, statusFilter models.StudentStatus) (*EngagementReport, error) {
	window, err := s.window(req)
	if err != nil {
		return nil, err
	}
	snap := s.cache.Snapshot()
	return &EngagementReport{
		Window: window,
		KPIs:   report.ComputeEngagementKPIs(snap.Students, snap.Appointments, window, statusFilter),
	}, nil
}

// Retention estimates how long departed students stayed.
func (s *ReportService) Retention(ctx context.Context) report.Retention {
	snap := s.cache.Snapshot()
	return report.ComputeRetention(snap.Students, snap.Appointments, s.reports.AvgMonthDays)
}

// Popularity ranks catalog exercises by plan usage.
func (s *ReportService) Popularity(ctx context.Context) []report.ExerciseCount {
	snap := s.cache.Snapshot()
	return report.ExercisePopularity(snap.Students, snap.Exercises)
}

// ExportFinancialCSV renders the revenue evolution series as CSV.
func (s *ReportService) ExportFinancialCSV(ctx context.Context, req ReportRequest) (*ExportFile, error) {
	rep, err := s.Financial(ctx, req)
	if err != nil {
		return nil, err
	}
	data := s.financialDataset(rep)
	raw, err := s.csv.Render(*data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
	}
	return &ExportFile{
		Name:        fmt.Sprintf("financial-%s.csv", uuid.NewString()),
		ContentType: "text/csv",
		Data:        raw,
	}, nil
}

// ExportFinancialPDF renders the revenue evolution series as a PDF table.
func (s *ReportService) ExportFinancialPDF(ctx context.Context, req ReportRequest) (*ExportFile, error) {
	rep, err := s.Financial(ctx, req)
	if err != nil {
		return nil, err
	}
	data := s.financialDataset(rep)
	raw, err := s.pdf.Render(*data, "Financial Report", s.now().UTC())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
	}
	return &ExportFile{
		Name:        fmt.Sprintf("financial-%s.pdf", uuid.NewString()),
		ContentType: "application/pdf",
		Data:        raw,
	}, nil
}

func (s *ReportService) financialDataset(rep *FinancialReport) *export.Dataset {
	data := export.NewDataset("Period", "Realized", "Expected")
	for _, bucket := range rep.Evolution {
		data.AddRow(bucket.Label, formatAmount(bucket.Realized), formatAmount(bucket.Expected))
	}
	data.AddRow("Total", formatAmount(rep.KPIs.RealizedRevenue), formatAmount(rep.KPIs.PendingRevenue+rep.KPIs.LateTotal))
	return data
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
