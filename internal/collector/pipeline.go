package collector

import (
	"context"

	"go.uber.org/zap"

	"github.com/inferenceops/endpoint-metrics/internal/metrictable"
)

// EndpointMetrics retrieves utilization and invocation metrics for the
// endpoint variant and reconciles them into one wide table.
//
// The two collectors run sequentially; their tables are merged with outer
// join semantics on (timestamp, endpoint). Any error from either
// collector — backend failure, validation failure — is logged with the
// endpoint identity and converted to a nil result, indistinguishable from
// "no data" to the caller. A failure in one collector discards the
// other's data as well; there is no partial result.
func (c *Collector) EndpointMetrics(ctx context.Context, p Params) *metrictable.Table {
	p = p.WithDefaults()
	if err := p.Validate(); err != nil {
		c.log.Error("invalid endpoint metric parameters",
			zap.String("endpoint", p.EndpointName),
			zap.Error(err))
		return nil
	}

	if c.cache != nil {
		if t, ok := c.cache.Get(p); ok {
			c.log.Debug("returning cached endpoint metrics",
				zap.String("endpoint", p.EndpointName),
				zap.String("variant", p.VariantName))
			return t
		}
	}

	c.log.Info("retrieving endpoint utilization metrics",
		zap.String("endpoint", p.EndpointName),
		zap.String("variant", p.VariantName),
		zap.Time("start", p.StartTime),
		zap.Time("end", p.EndTime),
		zap.Int32("period", p.PeriodSeconds))
	util, err := c.CollectUtilization(ctx, p)
	if err != nil {
		c.log.Error("failed to retrieve utilization metrics",
			zap.String("endpoint", p.EndpointName),
			zap.Error(err))
		return nil
	}

	c.log.Info("retrieving endpoint invocation metrics",
		zap.String("endpoint", p.EndpointName),
		zap.String("variant", p.VariantName))
	inv, err := c.CollectInvocations(ctx, p)
	if err != nil {
		c.log.Error("failed to retrieve invocation metrics",
			zap.String("endpoint", p.EndpointName),
			zap.Error(err))
		return nil
	}

	merged := metrictable.Merge(util, inv, c.log)
	if !merged.Empty() {
		c.log.Info("reconciled endpoint metrics",
			zap.String("endpoint", p.EndpointName),
			zap.Int("rows", merged.Len()),
			zap.Int("columns", len(merged.Columns())))
		c.log.Debug("endpoint metrics head", zap.String("table", merged.Head(5)))
	}

	if c.cache != nil {
		c.cache.Set(p, merged)
	}
	return merged
}
