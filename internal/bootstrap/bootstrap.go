package bootstrap

import (
	"go-pipelinereport/internal/config"
	"go-pipelinereport/internal/database"
	"go-pipelinereport/internal/handlers"
	"go-pipelinereport/internal/metrics"
	"go-pipelinereport/internal/output"
	"go-pipelinereport/internal/report"
	"go-pipelinereport/internal/repositories"
	"go-pipelinereport/internal/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// AppComponents holds the initialized components shared by the CLI and the server.
type AppComponents struct {
	Connector     database.Connector
	Metrics       *metrics.Metrics
	ReportService services.ReportService
	ReportHandler *handlers.ReportHandler
}

// InitializeAppComponents creates and wires up the connector, metrics, service and handler.
// fs may be nil to write to the OS filesystem.
func InitializeAppComponents(cfg *config.Config, logger *zap.Logger, reg prometheus.Registerer, fs afero.Fs) (*AppComponents, error) {
	logger.Debug("Initializing application components: Connector, Metrics, Services, Handlers...")

	connect, err := database.NewConnector(cfg, logger)
	if err != nil {
		return nil, err
	}

	format, err := report.ParseFormat(cfg.ReportFormat)
	if err != nil {
		return nil, err
	}

	m := metrics.New(reg)
	reportService := services.NewReportService(connect, output.NewWriter(fs), services.ReportOptions{
		Dialect:       repositories.Dialect(cfg.DBDriver),
		Table:         cfg.LogsTable,
		FetchNewest:   cfg.FetchNewest,
		Title:         cfg.ReportTitle,
		EscapePipes:   cfg.MarkdownEscapePipes,
		QueryTimeout:  cfg.QueryTimeout,
		RenderTimeout: cfg.RenderTimeout,
	}, m, logger)
	reportHandler := handlers.NewReportHandler(reportService, format, cfg.ReportOutput)

	logger.Debug("Application components initialization complete.")
	return &AppComponents{
		Connector:     connect,
		Metrics:       m,
		ReportService: reportService,
		ReportHandler: reportHandler,
	}, nil
}
