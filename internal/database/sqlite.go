package database

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"go-pipelinereport/internal/config"

	_ "github.com/mattn/go-sqlite3" // SQLite Driver
	"go.uber.org/zap"
)

// OpenSQLite opens the SQLite log database read-only.
// A plain file path must point to an existing file; "file:" URIs are passed through untouched.
func OpenSQLite(cfg *config.Config, logger *zap.Logger) (*sql.DB, error) {
	dsn := cfg.DBDSN
	if !strings.HasPrefix(dsn, "file:") {
		if _, err := os.Stat(dsn); err != nil {
			logger.Error("SQLite database file is not accessible", zap.String("path", dsn), zap.Error(err))
			return nil, fmt.Errorf("sqlite database %s is not accessible: %w", dsn, err)
		}
		dsn = "file:" + dsn + "?mode=ro&_busy_timeout=5000"
	}

	logger.Debug("Opening SQLite database", zap.String("dsn", dsn))
	db, err := sql.Open(DriverSQLite, dsn)
	if err != nil {
		logger.Error("Failed to open SQLite database", zap.String("dsn", dsn), zap.Error(err))
		return nil, fmt.Errorf("failed to open sqlite database at %s: %w", dsn, err)
	}
	configurePool(db, cfg)
	return db, nil
}
