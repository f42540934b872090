package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	cw "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"

	"github.com/inferenceops/endpoint-metrics/internal/constants"
	"github.com/inferenceops/endpoint-metrics/internal/metrics"
	"github.com/inferenceops/endpoint-metrics/internal/metrictable"
)

// Statistic names accepted by GetMetricData.
const (
	statAverage = "Average"
	statSum     = "Sum"
)

// invocationStatistic returns the aggregation statistic for an invocation
// metric. Request and error counts are additive over a period, so they
// aggregate with Sum; latency is not additive and aggregates with Average.
func invocationStatistic(metric string) string {
	if metric == constants.MetricModelLatency {
		return statAverage
	}
	return statSum
}

// CollectInvocations retrieves the service-level invocation metrics
// (request count, 4XX/5XX errors, model latency, invocations per
// instance) for the endpoint variant, one GetMetricData call per metric,
// and pivots them into a wide table.
//
// GetMetricData returns parallel timestamp and value sequences per query
// rather than labeled datapoints; index alignment between the sequences is
// validated, and the empty-window behavior mirrors CollectUtilization.
func (c *Collector) CollectInvocations(ctx context.Context, p Params) (*metrictable.Table, error) {
	dims := dimensions(p)
	var records []Record

	for _, metric := range constants.InvocationMetricNames {
		stat := invocationStatistic(metric)
		c.log.Debug("querying invocation metric",
			zap.String("endpoint", p.EndpointName),
			zap.String("variant", p.VariantName),
			zap.String("metric", metric),
			zap.String("stat", stat),
			zap.Time("start", p.StartTime),
			zap.Time("end", p.EndTime),
			zap.Int32("period", p.PeriodSeconds))

		started := time.Now()
		out, err := c.api.GetMetricData(ctx, &cw.GetMetricDataInput{
			MetricDataQueries: []types.MetricDataQuery{
				{
					Id: aws.String("metric_" + metric),
					MetricStat: &types.MetricStat{
						Metric: &types.Metric{
							Namespace:  aws.String(constants.NamespaceSageMaker),
							MetricName: aws.String(metric),
							Dimensions: dims,
						},
						Period: aws.Int32(p.PeriodSeconds),
						Stat:   aws.String(stat),
					},
					ReturnData: aws.Bool(true),
				},
			},
			StartTime: aws.Time(p.StartTime),
			EndTime:   aws.Time(p.EndTime),
		})
		metrics.ObserveBackendQuery("GetMetricData", metric, queryStatus(err), time.Since(started))
		if err != nil {
			return nil, fmt.Errorf("get metric data for %s: %w", metric, err)
		}
		if len(out.MetricDataResults) != 1 {
			return nil, &ValidationError{
				MetricName: metric,
				Reason:     fmt.Sprintf("expected one metric data result, got %d", len(out.MetricDataResults)),
			}
		}
		res := out.MetricDataResults[0]
		c.log.Debug("invocation metric response",
			zap.String("metric", metric),
			zap.Int("datapoints", len(res.Timestamps)))

		recs, err := recordsFromDataResult(p.EndpointName, metric, res)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}

	if len(records) == 0 {
		c.log.Warn("no invocation datapoints found",
			zap.String("endpoint", p.EndpointName),
			zap.String("variant", p.VariantName))
		metrics.IncEmptyResult(invocationCollector)
		return metrictable.New(constants.InvocationMetricNames), nil
	}

	metrics.AddDatapoints(invocationCollector, len(records))
	return c.pivot(records, constants.InvocationMetricNames), nil
}
