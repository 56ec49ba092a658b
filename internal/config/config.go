package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go-pipelinereport/internal/pkg/validation"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds all configuration for the report generator
type Config struct {
	AppEnv           string
	Port             string
	CORSAllowOrigins string
	JWTSecret        string // Empty disables bearer auth on the report API

	// --- Source database ---
	DBDriver                 string `validate:"required,oneof=sqlite3 godror postgres"`
	DBDSN                    string `validate:"required"`
	DBMaxOpenConns           int    `validate:"min=1"`
	DBMaxIdleConns           int    `validate:"min=0"`
	DBConnMaxLifetimeMinutes int    `validate:"min=0"`
	LogsTable                string `validate:"required,sqlident"`
	FetchNewest              bool
	QueryTimeout             time.Duration
	RenderTimeout            time.Duration

	// --- Report ---
	ReportFormat        string `validate:"required,oneof=markdown-html html-table"`
	ReportOutput        string // Empty means the format default (output.md / output.html)
	ReportTitle         string `validate:"required,max=200"`
	MarkdownEscapePipes bool

	// --- Application log ---
	LogFilePath       string
	LogLevel          string
	LogRotateInterval int // Hour
	LogMaxSize        int // MB
	LogMaxBackups     int
	LogMaxAge         int // Days
	LogCompress       bool
}

// LoadConfig reads configuration from environment variables or .env file
func LoadConfig(logger *zap.Logger) (*Config, error) { // logger can be nil here
	if logger == nil {
		logger = zap.NewNop()
	}

	appEnv := getEnv("APP_ENV", "local")
	envFileName := fmt.Sprintf(".env.%s", appEnv)
	if _, err := os.Stat(envFileName); err == nil {
		if err := godotenv.Load(envFileName); err != nil {
			logger.Warn("Error loading .env file, continuing with environment variables", zap.String("file", envFileName), zap.Error(err))
		} else {
			logger.Info("Loaded configuration", zap.String("file", envFileName))
		}
	} else {
		logger.Debug("No .env file found for environment, relying on environment variables or defaults", zap.String("environment", appEnv))
	}

	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "local"),
		Port:             getEnv("PORT", "3000"),
		CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		JWTSecret:        getEnv("JWT_SECRET", ""),

		DBDriver:                 strings.ToLower(getEnv("DB_DRIVER", "sqlite3")),
		DBDSN:                    getEnv("DB_DSN", "./data/pipeline.db"),
		DBMaxOpenConns:           getEnvAsInt("DB_MAX_OPEN_CONNS", 2),
		DBMaxIdleConns:           getEnvAsInt("DB_MAX_IDLE_CONNS", 1),
		DBConnMaxLifetimeMinutes: getEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 60),
		LogsTable:                getEnv("LOGS_TABLE", "pipeline_logs"),
		FetchNewest:              getEnvAsBool("FETCH_NEWEST", false),
		QueryTimeout:             time.Duration(getEnvAsInt("QUERY_TIMEOUT_SECONDS", 30)) * time.Second,
		RenderTimeout:            time.Duration(getEnvAsInt("RENDER_TIMEOUT_SECONDS", 30)) * time.Second,

		ReportFormat:        strings.ToLower(getEnv("REPORT_FORMAT", "markdown-html")),
		ReportOutput:        getEnv("REPORT_OUTPUT", ""),
		ReportTitle:         getEnv("REPORT_TITLE", "Pipeline Execution Report"),
		MarkdownEscapePipes: getEnvAsBool("MARKDOWN_ESCAPE_PIPES", false),

		LogFilePath:       getEnv("LOG_FILE_PATH", "./logs/pipelinereport.log"),
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogRotateInterval: getEnvAsInt("LOG_ROTATE_INTERVAL", 24),
		LogMaxSize:        getEnvAsInt("LOG_MAX_SIZE", 50),
		LogMaxBackups:     getEnvAsInt("LOG_MAX_BACKUPS", 5),
		LogMaxAge:         getEnvAsInt("LOG_MAX_AGE", 30),
		LogCompress:       getEnvAsBool("LOG_COMPRESS", false),
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "dpanic": true, "panic": true, "fatal": true}
	if !validLevels[cfg.LogLevel] {
		logger.Warn("Invalid LOG_LEVEL specified, defaulting to 'info'", zap.String("invalidLevel", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration is invalid", zap.Error(err))
		return nil, err
	}
	if cfg.JWTSecret == "" && cfg.AppEnv == "production" {
		logger.Warn("JWT_SECRET is empty in production; the report API is unauthenticated.")
	}

	return cfg, nil
}

// Validate checks the struct tags; call it again after flags override fields.
func (c *Config) Validate() error {
	if err := validation.AsError(validation.ValidateStruct(c)); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Helper function to get env var or default
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Helper function to get env var as int or default
func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

// Helper function to get env var as bool or default
func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}
