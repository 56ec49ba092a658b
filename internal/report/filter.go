package report

import (
	"time"

	"go-pipelinereport/internal/models"
)

// Lookback is the fixed report window ending at the reference instant.
const Lookback = 24 * time.Hour

// FilterWindow keeps records whose timestamp is at or after now-Lookback.
// Records with an unparsable timestamp are never kept; their count is returned
// separately so callers can report them.
func FilterWindow(records []models.PipelineLog, now time.Time) (kept []models.PipelineLog, unparsable int) {
	threshold := now.Add(-Lookback)
	kept = make([]models.PipelineLog, 0, len(records))
	for _, rec := range records {
		if !rec.Timestamp.Valid {
			unparsable++
			continue
		}
		if rec.Timestamp.Time.Before(threshold) {
			continue
		}
		kept = append(kept, rec)
	}
	return kept, unparsable
}
