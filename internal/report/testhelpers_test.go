package report

import (
	"database/sql"
	"time"

	"go-pipelinereport/internal/models"
)

var refNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func logAt(id int64, status string, msg *string, ts time.Time) models.PipelineLog {
	return models.PipelineLog{
		ID:           id,
		Symbol:       "ETL_DAILY",
		Status:       status,
		Message:      msg,
		Timestamp:    sql.NullTime{Time: ts, Valid: true},
		RawTimestamp: ts.Format(TimestampLayout),
	}
}

// exampleLogs is the three-row scenario: one old row outside the window.
func exampleLogs() []models.PipelineLog {
	return []models.PipelineLog{
		logAt(1, "ok", nil, refNow.Add(-1*time.Hour)),
		logAt(2, "fail", strPtr("timeout"), refNow.Add(-2*time.Hour)),
		logAt(3, "ok", nil, refNow.Add(-30*time.Hour)),
	}
}
