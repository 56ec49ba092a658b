// Package metrics defines the Prometheus instruments of report generation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics groups the report generation instruments.
type Metrics struct {
	// ReportsGenerated counts generation runs. Labels: format, outcome
	ReportsGenerated *prometheus.CounterVec
	// GenerationDuration observes run latency in seconds. Labels: format
	GenerationDuration *prometheus.HistogramVec
	// RecordsFetched is the row count of the last fetch.
	RecordsFetched prometheus.Gauge
	// RecordsInWindow is the row count left after the lookback filter.
	RecordsInWindow prometheus.Gauge
	// UnparsableTimestamps counts rows dropped for an unreadable timestamp.
	UnparsableTimestamps prometheus.Counter
}

// New registers the instruments on reg. A nil reg uses a private registry,
// which keeps repeated construction in tests from colliding.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &Metrics{
		ReportsGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pipelinereport_reports_generated_total",
			Help: "Report generation runs by format and outcome.",
		}, []string{"format", "outcome"}),
		GenerationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pipelinereport_generation_duration_seconds",
			Help:    "Wall time of a report generation run.",
			Buckets: prometheus.DefBuckets,
		}, []string{"format"}),
		RecordsFetched: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pipelinereport_records_fetched",
			Help: "Rows read from the log table by the last run.",
		}),
		RecordsInWindow: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pipelinereport_records_in_window",
			Help: "Rows inside the 24h lookback window in the last run.",
		}),
		UnparsableTimestamps: factory.NewCounter(prometheus.CounterOpts{
			Name: "pipelinereport_unparsable_timestamps_total",
			Help: "Rows excluded because their timestamp could not be parsed.",
		}),
	}
}

// ObserveRun records the outcome and duration of one run.
func (m *Metrics) ObserveRun(format string, started time.Time, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.ReportsGenerated.WithLabelValues(format, outcome).Inc()
	m.GenerationDuration.WithLabelValues(format).Observe(time.Since(started).Seconds())
}
