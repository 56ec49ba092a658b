package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go-pipelinereport/internal/bootstrap"
	"go-pipelinereport/internal/config"
	"go-pipelinereport/internal/logging"
	"go-pipelinereport/internal/middleware"
	"go-pipelinereport/internal/routes"
	"go-pipelinereport/internal/utils"

	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Setup loads the configuration and builds the application logger.
func Setup() (*config.Config, *zap.Logger, error) {
	tempConfigLogger, _ := zap.NewProduction(zap.ErrorOutput(zapcore.Lock(os.Stderr)))
	defer tempConfigLogger.Sync()

	cfg, err := config.LoadConfig(tempConfigLogger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	fileSyncer, err := logging.NewFileSyncer(cfg)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.InitializeLogger(cfg, fileSyncer)
	logging.SetGlobalLogger(logger)
	utils.TraceConfigDetails(logger, cfg)
	return cfg, logger, nil
}

// NewServer builds the Fiber application serving reports, health and metrics.
func NewServer(cfg *config.Config, logger *zap.Logger, components *bootstrap.AppComponents, gatherer prometheus.Gatherer) *fiber.App {
	appFiber := fiber.New(fiber.Config{
		AppName:               "pipelinereport",
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			lg := middleware.GetRequestFileLogger(c)
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) && e != nil {
				code = e.Code
			}
			fields := []zap.Field{
				zap.Int("status", code),
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.Error(err),
			}
			if code == fiber.StatusNotFound {
				lg.Warn("Resource not found", fields...)
			} else {
				lg.Error("Generic ErrorHandler", fields...)
			}
			resp := fiber.Map{"error": "An unexpected error occurred"}
			if cfg.AppEnv != "production" {
				resp["detail"] = err.Error()
			}
			return c.Status(code).JSON(resp)
		},
	})

	appFiber.Use(recover.New(recover.Config{
		EnableStackTrace: strings.ToLower(cfg.LogLevel) == "debug",
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			middleware.GetRequestFileLogger(c).Error("Panic recovered", zap.Any("panic_value", e))
		},
	}))
	appFiber.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: "GET,HEAD",
	}))
	appFiber.Use(middleware.RequestLoggers(logger))
	appFiber.Use(fiberzap.New(fiberzap.Config{
		Logger: logger,
		Fields: []string{"status", "method", "url", "ip", "latency", "error"},
		FieldsFunc: func(c *fiber.Ctx) []zap.Field {
			return []zap.Field{
				zap.String("log_type", "access"),
				zap.String("request_id", middleware.GetRequestID(c)),
			}
		},
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
	}))

	routes.SetupRoutes(appFiber, cfg, logger, components.ReportHandler, components.Connector, gatherer)
	return appFiber
}

// Serve runs the HTTP server until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	components, err := bootstrap.InitializeAppComponents(cfg, logger, registry, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize application components: %w", err)
	}
	appFiber := NewServer(cfg, logger, components, registry)

	listenErr := make(chan error, 1)
	go func() {
		listenAddr := ":" + cfg.Port
		logger.Info("Starting Fiber server...",
			zap.String("address", listenAddr),
			zap.Int("pid", os.Getpid()),
			zap.String("app_env", cfg.AppEnv),
		)
		listenErr <- appFiber.Listen(listenAddr)
	}()

	select {
	case err := <-listenErr:
		if err != nil {
			logger.Error("Server listener failed", zap.Error(err))
			return fmt.Errorf("server listener failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Shutdown signal received, initiating graceful shutdown...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := appFiber.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Fiber server shutdown failed", zap.Error(err))
		return err
	}
	<-listenErr
	logger.Info("Fiber server gracefully stopped.")
	return nil
}
