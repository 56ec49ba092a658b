package report

import "go-pipelinereport/internal/models"

// Summary holds the counts shown in the Markdown report.
type Summary struct {
	TotalExecutions      int      `json:"totalExecutions"`
	SuccessfulExecutions int      `json:"successfulExecutions"`
	FailedExecutions     int      `json:"failedExecutions"`
	ErrorMessages        []string `json:"errorMessages"`
}

// Summarize counts executions by outcome and collects the distinct non-null
// messages of failed executions in first-seen order.
func Summarize(records []models.PipelineLog) Summary {
	summary := Summary{
		TotalExecutions: len(records),
		ErrorMessages:   []string{},
	}
	seen := make(map[string]bool)
	for _, rec := range records {
		if rec.Succeeded() {
			summary.SuccessfulExecutions++
			continue
		}
		summary.FailedExecutions++
		if rec.Message == nil || seen[*rec.Message] {
			continue
		}
		seen[*rec.Message] = true
		summary.ErrorMessages = append(summary.ErrorMessages, *rec.Message)
	}
	return summary
}

// Project converts records to table rows, each carrying the total row count.
func Project(records []models.PipelineLog) []models.ReportRow {
	rows := make([]models.ReportRow, len(records))
	for i, rec := range records {
		rows[i] = models.ReportRow{
			ID:                rec.ID,
			Symbol:            rec.Symbol,
			Status:            rec.Status,
			Message:           rec.Message,
			Timestamp:         rec.Timestamp.Time,
			NumberOfExecution: len(records),
		}
	}
	return rows
}
