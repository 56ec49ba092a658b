package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-pipelinereport/internal/database"
	"go-pipelinereport/internal/metrics"
	"go-pipelinereport/internal/models"
	"go-pipelinereport/internal/output"
	"go-pipelinereport/internal/report"
	"go-pipelinereport/internal/repositories"

	"go.uber.org/zap"
)

// ErrRender is returned when the Markdown to HTML step fails. The Markdown file
// has already been written at that point; the HTML file has not.
var ErrRender = errors.New("report rendering failed")

// ReportRequest describes one generation run.
type ReportRequest struct {
	Format     report.Format
	OutputPath string    // Empty selects report.DefaultOutputPath(Format)
	Now        time.Time // Reference instant of the lookback window; zero means time.Now()

	// Preview renders the report without writing any file. Paths stays empty.
	Preview bool
}

// ReportResult is what a run produced. Records is the filtered set.
type ReportResult struct {
	Format      report.Format        `json:"format"`
	GeneratedAt time.Time            `json:"generatedAt"`
	Fetched     int                  `json:"fetched"`
	Unparsable  int                  `json:"unparsable"`
	Records     []models.PipelineLog `json:"records"`
	Summary     report.Summary       `json:"summary"`
	Rows        []models.ReportRow   `json:"rows,omitempty"`
	Paths       []string             `json:"paths"`
	HTML        string               `json:"-"`
}

// ReportOptions carries the source and rendering settings of the service.
type ReportOptions struct {
	Dialect       repositories.Dialect
	Table         string
	FetchNewest   bool
	Title         string
	EscapePipes   bool
	QueryTimeout  time.Duration // Zero disables the timeout
	RenderTimeout time.Duration // Zero disables the timeout
}

// ReportService generates pipeline execution reports.
type ReportService interface {
	Generate(ctx context.Context, req ReportRequest) (*ReportResult, error)
}

type reportServiceImpl struct {
	connect database.Connector
	writer  *output.Writer
	opts    ReportOptions
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewReportService creates a ReportService reading through connect and writing through writer.
func NewReportService(connect database.Connector, writer *output.Writer, opts ReportOptions, m *metrics.Metrics, logger *zap.Logger) ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if m == nil {
		m = metrics.New(nil)
	}
	if writer == nil {
		writer = output.NewWriter(nil)
	}
	return &reportServiceImpl{
		connect: connect,
		writer:  writer,
		opts:    opts,
		metrics: m,
		logger:  logger,
	}
}

// Generate runs Connect, Fetch, Filter, Aggregate, Render, Persist. The source
// connection is released as soon as the fetch returns, on every path.
func (s *reportServiceImpl) Generate(ctx context.Context, req ReportRequest) (*ReportResult, error) {
	started := time.Now()

	if req.Format == "" {
		req.Format = report.FormatMarkdownHTML
	}
	format, err := report.ParseFormat(string(req.Format))
	if err != nil {
		return nil, err
	}
	if req.Now.IsZero() {
		req.Now = time.Now()
	}
	if req.OutputPath == "" {
		req.OutputPath = report.DefaultOutputPath(format)
	}
	req.Format = format

	result, err := s.generate(ctx, req)
	s.metrics.ObserveRun(string(format), started, err)
	if err != nil {
		s.logger.Error("Report generation failed", zap.String("format", string(format)), zap.Error(err))
		return nil, err
	}
	s.logger.Info("Report generated",
		zap.String("format", string(format)),
		zap.Strings("paths", result.Paths),
		zap.Int("fetched", result.Fetched),
		zap.Int("in_window", len(result.Records)),
		zap.Int("unparsable", result.Unparsable),
		zap.Duration("elapsed", time.Since(started)),
	)
	return result, nil
}

func (s *reportServiceImpl) generate(ctx context.Context, req ReportRequest) (*ReportResult, error) {
	records, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordsFetched.Set(float64(len(records)))

	kept, unparsable := report.FilterWindow(records, req.Now)
	s.metrics.RecordsInWindow.Set(float64(len(kept)))
	if unparsable > 0 {
		s.metrics.UnparsableTimestamps.Add(float64(unparsable))
		s.logger.Warn("Rows with unparsable timestamps were excluded", zap.Int("count", unparsable))
	}

	result := &ReportResult{
		Format:      req.Format,
		GeneratedAt: req.Now,
		Fetched:     len(records),
		Unparsable:  unparsable,
		Records:     kept,
		Summary:     report.Summarize(kept),
	}

	switch req.Format {
	case report.FormatHTMLTable:
		err = s.persistTable(req, result)
	default:
		err = s.persistMarkdown(ctx, req, result)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *reportServiceImpl) fetch(ctx context.Context) ([]models.PipelineLog, error) {
	queryCtx, cancel := withOptionalTimeout(ctx, s.opts.QueryTimeout)
	defer cancel()

	db, err := s.connect(queryCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to log source: %w: %w", err, repositories.ErrSourceUnavailable)
	}
	defer func() {
		if errClose := db.Close(); errClose != nil {
			s.logger.Warn("Error closing log source connection", zap.Error(errClose))
		}
	}()

	repo := repositories.NewPipelineLogRepository(db, s.opts.Dialect, s.opts.Table, s.opts.FetchNewest, s.logger)
	return repo.FetchRecent(queryCtx)
}

func (s *reportServiceImpl) persistMarkdown(ctx context.Context, req ReportRequest, result *ReportResult) error {
	md, err := report.RenderMarkdown(report.MarkdownDocument{
		Title:       s.opts.Title,
		GeneratedAt: req.Now,
		Summary:     result.Summary,
		Records:     result.Records,
		EscapePipes: s.opts.EscapePipes,
	})
	if err != nil {
		return fmt.Errorf("failed to build markdown report: %w", err)
	}
	if !req.Preview {
		if err := s.writer.WriteText(req.OutputPath, md); err != nil {
			return err
		}
		result.Paths = append(result.Paths, req.OutputPath)
	}

	renderCtx, cancel := withOptionalTimeout(ctx, s.opts.RenderTimeout)
	defer cancel()
	html, err := report.MarkdownToHTML(renderCtx, md)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}

	result.HTML = html
	if req.Preview {
		return nil
	}
	htmlPath := output.HTMLSiblingPath(req.OutputPath)
	if err := s.writer.WriteText(htmlPath, html); err != nil {
		return err
	}
	result.Paths = append(result.Paths, htmlPath)
	return nil
}

func (s *reportServiceImpl) persistTable(req ReportRequest, result *ReportResult) error {
	result.Rows = report.Project(result.Records)
	html, err := report.RenderHTMLTable(result.Rows, s.opts.Title)
	if err != nil {
		return err
	}
	result.HTML = html
	if req.Preview {
		return nil
	}
	if err := s.writer.WriteText(req.OutputPath, html); err != nil {
		return err
	}
	result.Paths = append(result.Paths, req.OutputPath)
	return nil
}

func withOptionalTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
