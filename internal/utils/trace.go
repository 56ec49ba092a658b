package utils

import (
	"go-pipelinereport/internal/config"

	"go.uber.org/zap"
)

// TraceConfigDetails logs the effective configuration at debug level with secrets masked.
func TraceConfigDetails(logger *zap.Logger, cfg *config.Config) {
	if logger == nil || cfg == nil {
		return
	}
	jwtSecret := "--- EMPTY (report API unauthenticated) ---"
	if cfg.JWTSecret != "" {
		jwtSecret = "*** MASKED ***"
	}
	logger.Debug("Loaded application configuration details",
		zap.String("AppEnv", cfg.AppEnv),
		zap.String("Port", cfg.Port),
		zap.String("JWTSecret", jwtSecret),
		zap.String("DBDriver", cfg.DBDriver),
		zap.String("DBDSN", MaskDSN(cfg.DBDSN)),
		zap.Int("DBMaxOpenConns", cfg.DBMaxOpenConns),
		zap.Int("DBMaxIdleConns", cfg.DBMaxIdleConns),
		zap.Int("DBConnMaxLifetimeMinutes", cfg.DBConnMaxLifetimeMinutes),
		zap.String("LogsTable", cfg.LogsTable),
		zap.Bool("FetchNewest", cfg.FetchNewest),
		zap.Duration("QueryTimeout", cfg.QueryTimeout),
		zap.Duration("RenderTimeout", cfg.RenderTimeout),
		zap.String("ReportFormat", cfg.ReportFormat),
		zap.String("ReportOutput", cfg.ReportOutput),
		zap.Bool("MarkdownEscapePipes", cfg.MarkdownEscapePipes),
		zap.String("LogFilePath", cfg.LogFilePath),
		zap.String("LogLevel", cfg.LogLevel),
		zap.Int("LogRotateIntervalHours", cfg.LogRotateInterval),
		zap.Int("LogMaxSizeMB", cfg.LogMaxSize),
		zap.String("CORS_AllowOrigins", cfg.CORSAllowOrigins),
	)
}
