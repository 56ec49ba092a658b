package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go-pipelinereport/internal/config"

	"go.uber.org/zap"
)

// Supported values of DB_DRIVER.
const (
	DriverSQLite   = "sqlite3"
	DriverOracle   = "godror"
	DriverPostgres = "postgres"
)

// Connector opens a fresh, verified handle to the source database.
// The caller owns the returned handle and must Close it.
type Connector func(ctx context.Context) (*sql.DB, error)

// NewConnector returns the Connector for cfg.DBDriver.
func NewConnector(cfg *config.Config, logger *zap.Logger) (Connector, error) {
	var open func(*config.Config, *zap.Logger) (*sql.DB, error)
	switch cfg.DBDriver {
	case DriverSQLite:
		open = OpenSQLite
	case DriverOracle:
		open = OpenOracle
	case DriverPostgres:
		open = OpenPostgres
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	return func(ctx context.Context) (*sql.DB, error) {
		db, err := open(cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			logger.Error("Source database ping failed", zap.String("driver", cfg.DBDriver), zap.Error(err))
			return nil, fmt.Errorf("failed to ping %s database: %w", cfg.DBDriver, err)
		}
		logger.Debug("Source database connection verified", zap.String("driver", cfg.DBDriver))
		return db, nil
	}, nil
}

// configurePool applies the pool limits shared by every driver.
func configurePool(db *sql.DB, cfg *config.Config) {
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.DBConnMaxLifetimeMinutes) * time.Minute)
}
