package handlers

import (
	"errors"
	"time"

	mw "go-pipelinereport/internal/middleware"
	"go-pipelinereport/internal/pkg/validation"
	"go-pipelinereport/internal/report"
	"go-pipelinereport/internal/repositories"
	"go-pipelinereport/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ReportHandler serves on-demand report generation over HTTP.
type ReportHandler struct {
	reportService services.ReportService
	defaultFormat report.Format
	outputPath    string // Applies to defaultFormat only
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService services.ReportService, defaultFormat report.Format, outputPath string) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		defaultFormat: defaultFormat,
		outputPath:    outputPath,
	}
}

// ReportQuery defines the accepted query parameters of GET /reports
type ReportQuery struct {
	Format string `query:"format" validate:"omitempty,oneof=markdown-html html-table"`
	View   string `query:"view" validate:"omitempty,oneof=html json"`
	Now    string `query:"now"` // RFC3339 reference instant, defaults to the current time
}

// GetReport handles GET /reports requests. The report is written to disk as in
// the CLI and the rendered HTML (or a JSON result with view=json) is returned.
// With now set the report is rendered only, nothing is written.
func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	logger := mw.GetRequestFileLogger(c)

	var q ReportQuery
	if !validation.ParseQueryAndValidate(c, &q) {
		logger.Warn("Report request validation failed")
		return nil
	}

	req := services.ReportRequest{Format: h.defaultFormat, OutputPath: h.outputPath}
	if q.Format != "" && report.Format(q.Format) != h.defaultFormat {
		req.Format = report.Format(q.Format)
		req.OutputPath = ""
	}
	if q.Now != "" {
		now, err := time.Parse(time.RFC3339, q.Now)
		if err != nil {
			logger.Warn("Invalid now parameter", zap.String("now", q.Now), zap.Error(err))
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "now must be an RFC3339 timestamp",
			})
		}
		req.Now = now
		// A past window must not replace the report on disk.
		req.Preview = true
	}

	result, err := h.reportService.Generate(c.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, report.ErrUnknownFormat):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, repositories.ErrSourceUnavailable):
			logger.Error("Log source unavailable", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Pipeline log source unavailable"})
		default:
			logger.Error("Report generation failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Report generation failed"})
		}
	}

	logger.Info("Report served",
		zap.String("format", string(result.Format)),
		zap.Int("records", len(result.Records)),
		zap.String("view", q.View),
	)
	if q.View == "json" {
		return c.Status(fiber.StatusOK).JSON(result)
	}
	c.Type("html", "utf-8")
	return c.Status(fiber.StatusOK).SendString(result.HTML)
}

// SetupReportRoutes registers report routes on router.
func (h *ReportHandler) SetupReportRoutes(router fiber.Router) {
	router.Get("/reports", h.GetReport)
}
