// Package metrics exposes self-instrumentation for the retriever: how many
// CloudWatch calls it makes, how long they take, and how much data they
// return. These describe the retriever itself, not the endpoint under
// observation.
package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/inferenceops/endpoint-metrics/internal/constants"
)

var (
	backendQueriesTotal  *prometheus.CounterVec
	backendQueryDuration *prometheus.HistogramVec
	datapointsTotal      *prometheus.CounterVec
	emptyResultsTotal    *prometheus.CounterVec

	// Thread-safe initialization guards
	initOnce sync.Once
	initErr  error
)

// Status label values for backend query counters.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Register creates and registers all self-instrumentation collectors with
// the given registry. Safe to call more than once; only the first call
// registers. Recording functions are no-ops until Register succeeds.
func Register(registry prometheus.Registerer) error {
	initOnce.Do(func() {
		backendQueriesTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: constants.EMBackendQueriesTotal,
				Help: "Total number of CloudWatch API calls issued by the collectors",
			},
			[]string{constants.LabelOperation, constants.LabelMetricName, constants.LabelStatus},
		)
		backendQueryDuration = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    constants.EMBackendQueryDuration,
				Help:    "Latency of CloudWatch API calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{constants.LabelOperation},
		)
		datapointsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: constants.EMDatapointsTotal,
				Help: "Total number of validated datapoints produced per collector",
			},
			[]string{constants.LabelCollector},
		)
		emptyResultsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: constants.EMEmptyResultsTotal,
				Help: "Collector invocations that found no datapoints in the window",
			},
			[]string{constants.LabelCollector},
		)

		for name, c := range map[string]prometheus.Collector{
			"backendQueriesTotal":  backendQueriesTotal,
			"backendQueryDuration": backendQueryDuration,
			"datapointsTotal":      datapointsTotal,
			"emptyResultsTotal":    emptyResultsTotal,
		} {
			if err := registry.Register(c); err != nil {
				initErr = fmt.Errorf("failed to register %s metric: %w", name, err)
				return
			}
		}
	})

	return initErr
}

// ObserveBackendQuery records one CloudWatch call.
func ObserveBackendQuery(operation, metricName, status string, elapsed time.Duration) {
	if backendQueriesTotal == nil || backendQueryDuration == nil {
		return
	}
	backendQueriesTotal.With(prometheus.Labels{
		constants.LabelOperation:  operation,
		constants.LabelMetricName: metricName,
		constants.LabelStatus:     status,
	}).Inc()
	backendQueryDuration.With(prometheus.Labels{
		constants.LabelOperation: operation,
	}).Observe(elapsed.Seconds())
}

// AddDatapoints records validated datapoints produced by a collector.
func AddDatapoints(collector string, n int) {
	if datapointsTotal == nil || n <= 0 {
		return
	}
	datapointsTotal.With(prometheus.Labels{constants.LabelCollector: collector}).Add(float64(n))
}

// IncEmptyResult records a collector invocation that found no data.
func IncEmptyResult(collector string) {
	if emptyResultsTotal == nil {
		return
	}
	emptyResultsTotal.With(prometheus.Labels{constants.LabelCollector: collector}).Inc()
}
