package repositories

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go-pipelinereport/internal/models"

	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// ErrSourceUnavailable is returned when the log table cannot be read because
// the database connection failed or timed out.
var ErrSourceUnavailable = errors.New("pipeline log source unavailable")

// PipelineLogRepository reads pipeline execution logs from the source database.
type PipelineLogRepository interface {
	// FetchRecent returns at most FetchLimit rows ordered by id ascending.
	FetchRecent(ctx context.Context) ([]models.PipelineLog, error)
}

type pipelineLogRepositoryImpl struct {
	db      *sql.DB
	dialect Dialect
	table   string
	newest  bool
	logger  *zap.Logger
}

// NewPipelineLogRepository creates a repository reading table through db.
func NewPipelineLogRepository(db *sql.DB, dialect Dialect, table string, newest bool, logger *zap.Logger) PipelineLogRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &pipelineLogRepositoryImpl{
		db:      db,
		dialect: dialect,
		table:   table,
		newest:  newest,
		logger:  logger,
	}
}

func (r *pipelineLogRepositoryImpl) FetchRecent(ctx context.Context) ([]models.PipelineLog, error) {
	query := r.dialect.RecentLogsQuery(r.table, r.newest)
	r.logger.Debug("Querying pipeline logs", zap.String("query", query))

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query pipeline logs", zap.String("table", r.table), zap.Error(err))
		return nil, wrapQueryError("pipeline log query failed", err)
	}
	defer rows.Close()

	logs := make([]models.PipelineLog, 0, FetchLimit)
	for rows.Next() {
		var (
			entry   models.PipelineLog
			symbol  sql.NullString
			status  sql.NullString
			message sql.NullString
			rawTS   interface{}
		)
		if err := rows.Scan(&entry.ID, &symbol, &status, &message, &rawTS); err != nil {
			r.logger.Error("Failed to scan pipeline log row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan pipeline log: %w", err)
		}
		entry.Symbol = symbol.String
		entry.Status = status.String
		if message.Valid {
			msg := message.String
			entry.Message = &msg
		}
		entry.RawTimestamp = rawTimestampText(rawTS)
		if ts, ok := coerceTimestamp(rawTS); ok {
			entry.Timestamp = sql.NullTime{Time: ts, Valid: true}
		} else {
			r.logger.Warn("Unparsable pipeline log timestamp; row will be excluded from the report",
				zap.Int64("id", entry.ID), zap.String("raw_ts", entry.RawTimestamp))
		}
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Error during iteration over pipeline log rows", zap.Error(err))
		return nil, wrapQueryError("pipeline log row iteration error", err)
	}

	r.logger.Debug("Fetched pipeline logs", zap.Int("count", len(logs)))
	return logs, nil
}

// coerceTimestamp converts a driver value into an instant. NULL, empty and
// unrecognised values report false.
func coerceTimestamp(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		// go-sqlite3 yields the zero time for DATETIME text it cannot parse.
		if t.IsZero() {
			return time.Time{}, false
		}
		return t.UTC(), true
	case []byte:
		v = string(t)
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return time.Time{}, false
		}
		sec := int64(t)
		return time.Unix(sec, int64((t-float64(sec))*float64(time.Second))).UTC(), true
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return time.Time{}, false
	}
	ts, err := cast.ToTimeE(v)
	if err != nil {
		return time.Time{}, false
	}
	return ts.UTC(), true
}

func rawTimestampText(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(t)
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return cast.ToString(t)
	}
}

func wrapQueryError(msg string, err error) error {
	if isConnectionError(err) {
		return fmt.Errorf("%s: %w: %w", msg, err, ErrSourceUnavailable)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) ||
		errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	for _, marker := range []string{
		"ora-03113", "ora-03114", "ora-125",
		"connection refused", "network error", "i/o error", "broken pipe",
		"reset by peer", "timeout", "database is locked", "unable to open database",
	} {
		if strings.Contains(errStr, marker) {
			return true
		}
	}
	return false
}
