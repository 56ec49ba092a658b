package routes

import (
	"context"
	"time"

	"go-pipelinereport/internal/config"
	"go-pipelinereport/internal/database"
	"go-pipelinereport/internal/handlers"
	mw "go-pipelinereport/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRoutes configures the application routes.
func SetupRoutes(
	app *fiber.App,
	cfg *config.Config,
	logger *zap.Logger,
	reportHandler *handlers.ReportHandler,
	connect database.Connector, // Used by the health check
	gatherer prometheus.Gatherer,
) {
	logger.Info("Setting up application routes...")

	app.Get("/health", func(c *fiber.Ctx) error {
		lg := mw.GetRequestFileLogger(c)
		healthStatus := fiber.Map{"status": "healthy", "timestamp": time.Now().UTC()}

		pingCtx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()
		db, err := connect(pingCtx)
		if err != nil {
			lg.Warn("Health check: log source unreachable", zap.Error(err))
			healthStatus["status"] = "degraded"
			healthStatus["dependencies"] = fiber.Map{cfg.DBDriver: "disconnected"}
			return c.Status(fiber.StatusServiceUnavailable).JSON(healthStatus)
		}
		db.Close()
		healthStatus["dependencies"] = fiber.Map{cfg.DBDriver: "connected"}
		return c.Status(fiber.StatusOK).JSON(healthStatus)
	})

	if gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api/v1")
	if cfg.JWTSecret != "" {
		api.Use(mw.Protected(cfg.JWTSecret))
	} else {
		logger.Warn("JWT_SECRET not set; report routes are not protected")
	}
	reportHandler.SetupReportRoutes(api)
}
