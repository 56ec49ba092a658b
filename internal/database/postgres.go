package database

import (
	"database/sql"
	"fmt"

	"go-pipelinereport/internal/config"

	_ "github.com/lib/pq" // Postgres Driver
	"go.uber.org/zap"
)

// OpenPostgres opens a Postgres pool handle from a URL or key=value DSN.
func OpenPostgres(cfg *config.Config, logger *zap.Logger) (*sql.DB, error) {
	logger.Debug("Opening Postgres database pool...")

	db, err := sql.Open(DriverPostgres, cfg.DBDSN)
	if err != nil {
		logger.Error("Failed to open Postgres connection pool", zap.Error(err))
		return nil, fmt.Errorf("failed to configure postgres connection pool: %w", err)
	}
	configurePool(db, cfg)
	return db, nil
}
