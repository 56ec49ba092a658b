package models

import (
	"database/sql"
	"time"
)

// StatusOK is the only status value counted as a successful execution.
const StatusOK = "ok"

// PipelineLog represents one row of the pipeline execution log table.
type PipelineLog struct {
	ID           int64        `json:"id"`
	Symbol       string       `json:"symbol"`
	Status       string       `json:"status"`
	Message      *string      `json:"message"`   // nil when the column is NULL
	Timestamp    sql.NullTime `json:"-"`         // Valid=false when the source value could not be coerced
	RawTimestamp string       `json:"timestamp"` // Source text, kept for unparsable values
}

// Succeeded reports whether the execution finished with status "ok".
func (l PipelineLog) Succeeded() bool {
	return l.Status == StatusOK
}

// MessageOrEmpty returns the message text, or "" for NULL.
func (l PipelineLog) MessageOrEmpty() string {
	if l.Message == nil {
		return ""
	}
	return *l.Message
}

// ReportRow is a PipelineLog projected for the HTML table report.
// NumberOfExecution repeats the size of the filtered set on every row.
type ReportRow struct {
	ID                int64     `json:"id"`
	Symbol            string    `json:"symbol"`
	Status            string    `json:"status"`
	Message           *string   `json:"message"`
	Timestamp         time.Time `json:"timestamp"`
	NumberOfExecution int       `json:"numberOfExecution"`
}
