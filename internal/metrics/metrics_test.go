package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndRecord(t *testing.T) {
	registry := prometheus.NewRegistry()
	require.NoError(t, Register(registry))

	// registration is once-only; a second call must not re-register
	require.NoError(t, Register(prometheus.NewRegistry()))

	ObserveBackendQuery("GetMetricStatistics", "CPUUtilization", StatusOK, 50*time.Millisecond)
	ObserveBackendQuery("GetMetricData", "Invocations", StatusError, 10*time.Millisecond)
	AddDatapoints("utilization", 3)
	AddDatapoints("utilization", 0) // no-op
	IncEmptyResult("invocation")

	families, err := registry.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["endpoint_metrics_backend_queries_total"])
	assert.True(t, names["endpoint_metrics_backend_query_duration_seconds"])
	assert.True(t, names["endpoint_metrics_datapoints_total"])
	assert.True(t, names["endpoint_metrics_empty_results_total"])
}
