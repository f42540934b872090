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

// CollectUtilization retrieves the instance-level utilization metrics
// (CPU, memory, disk, inference latency, GPU, GPU memory) for the endpoint
// variant, one GetMetricStatistics call per metric with the Average
// statistic, and pivots them into a wide table.
//
// A window with no datapoints for any metric is not an error: the result
// is an empty table that still carries the six-metric column schema.
func (c *Collector) CollectUtilization(ctx context.Context, p Params) (*metrictable.Table, error) {
	dims := dimensions(p)
	var records []Record

	for _, metric := range constants.UtilizationMetricNames {
		c.log.Debug("querying utilization metric",
			zap.String("endpoint", p.EndpointName),
			zap.String("variant", p.VariantName),
			zap.String("metric", metric),
			zap.Time("start", p.StartTime),
			zap.Time("end", p.EndTime),
			zap.Int32("period", p.PeriodSeconds))

		started := time.Now()
		out, err := c.api.GetMetricStatistics(ctx, &cw.GetMetricStatisticsInput{
			Namespace:  aws.String(constants.NamespaceEndpoints),
			MetricName: aws.String(metric),
			Dimensions: dims,
			StartTime:  aws.Time(p.StartTime),
			EndTime:    aws.Time(p.EndTime),
			Period:     aws.Int32(p.PeriodSeconds),
			Statistics: []types.Statistic{types.StatisticAverage},
		})
		metrics.ObserveBackendQuery("GetMetricStatistics", metric, queryStatus(err), time.Since(started))
		if err != nil {
			return nil, fmt.Errorf("get metric statistics for %s: %w", metric, err)
		}
		c.log.Debug("utilization metric response",
			zap.String("metric", metric),
			zap.Int("datapoints", len(out.Datapoints)))

		for _, dp := range out.Datapoints {
			rec, err := recordFromDatapoint(p.EndpointName, metric, dp)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
	}

	if len(records) == 0 {
		c.log.Warn("no utilization datapoints found",
			zap.String("endpoint", p.EndpointName),
			zap.String("variant", p.VariantName))
		metrics.IncEmptyResult(utilizationCollector)
		return metrictable.New(constants.UtilizationMetricNames), nil
	}

	metrics.AddDatapoints(utilizationCollector, len(records))
	return c.pivot(records, constants.UtilizationMetricNames), nil
}

// dimensions builds the two-dimension scope shared by every query.
func dimensions(p Params) []types.Dimension {
	return []types.Dimension{
		{Name: aws.String(constants.DimensionEndpointName), Value: aws.String(p.EndpointName)},
		{Name: aws.String(constants.DimensionVariantName), Value: aws.String(p.VariantName)},
	}
}

func queryStatus(err error) string {
	if err != nil {
		return metrics.StatusError
	}
	return metrics.StatusOK
}
