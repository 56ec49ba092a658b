package database

import (
	"database/sql"
	"fmt"

	"go-pipelinereport/internal/config"

	_ "github.com/godror/godror" // Oracle Driver
	"go.uber.org/zap"
)

// OpenOracle opens an Oracle pool handle. No connection is made until the first use.
func OpenOracle(cfg *config.Config, logger *zap.Logger) (*sql.DB, error) {
	logger.Debug("Opening Oracle database pool...")

	db, err := sql.Open(DriverOracle, cfg.DBDSN)
	if err != nil {
		logger.Error("Failed to open Oracle connection pool", zap.Error(err))
		return nil, fmt.Errorf("failed to configure oracle connection pool: %w", err)
	}
	configurePool(db, cfg)
	return db, nil
}
