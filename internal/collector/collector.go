// Package collector retrieves utilization and invocation metrics for a
// SageMaker endpoint variant from CloudWatch and reshapes them into wide
// metric tables.
package collector

import (
	"time"

	"go.uber.org/zap"

	"github.com/inferenceops/endpoint-metrics/internal/cloudwatch"
	"github.com/inferenceops/endpoint-metrics/internal/metrictable"
)

// Collector names used in logs and self-instrumentation labels.
const (
	utilizationCollector = "utilization"
	invocationCollector  = "invocation"
)

// Collector queries the metric backend and produces wide metric tables.
// Safe for concurrent use; it holds no per-request state.
type Collector struct {
	api   cloudwatch.API
	log   *zap.Logger
	cache *TableCache
}

// Option configures a Collector.
type Option func(*Collector)

// WithCache gives the collector a merged-table cache with the given TTL,
// so repeated requests for the same window skip the backend entirely.
func WithCache(ttl time.Duration) Option {
	return func(c *Collector) {
		c.cache = NewTableCache(ttl, c.log)
	}
}

// New creates a Collector over the given backend API. The logger is
// required; pass zap.NewNop() to silence it.
func New(api cloudwatch.API, log *zap.Logger, opts ...Option) *Collector {
	c := &Collector{api: api, log: log}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// pivot spreads records into a wide table keyed by (timestamp, endpoint)
// with one column per metric name. The schema keeps every expected metric
// column even when some metric had no datapoints. Duplicate observations
// for the same cell keep the last value and are logged, not silently
// overwritten.
func (c *Collector) pivot(records []Record, schema []string) *metrictable.Table {
	t := metrictable.New(schema)
	for _, r := range records {
		if t.Set(r.Timestamp, r.EndpointName, r.MetricName, r.Value) {
			c.log.Warn("duplicate datapoint, keeping last value",
				zap.String("metric", r.MetricName),
				zap.Time("timestamp", r.Timestamp),
				zap.String("endpoint", r.EndpointName))
		}
	}
	return t
}
