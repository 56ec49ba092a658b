package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRun("markdown-html", time.Now(), nil)
	m.ObserveRun("markdown-html", time.Now(), nil)
	m.ObserveRun("html-table", time.Now(), errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ReportsGenerated.WithLabelValues("markdown-html", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ReportsGenerated.WithLabelValues("html-table", OutcomeFailure)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.GenerationDuration))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.Contains(t, names, "pipelinereport_reports_generated_total")
	assert.Contains(t, names, "pipelinereport_generation_duration_seconds")
}

func TestNew_PrivateRegistry(t *testing.T) {
	assert.NotPanics(t, func() {
		New(nil)
		New(nil)
	})
}
