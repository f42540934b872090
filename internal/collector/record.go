package collector

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Record is one validated metric observation, tagged with the endpoint it
// belongs to. Records exist only between validation and pivoting.
type Record struct {
	EndpointName string
	Timestamp    time.Time
	MetricName   string
	Value        float64
}

// ValidationError reports a structurally malformed backend response for
// one metric. It fails the enclosing collector call; malformed datapoints
// are never coerced or dropped.
type ValidationError struct {
	MetricName string
	Reason     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid datapoint for metric %s: %s", e.MetricName, e.Reason)
}

// recordFromDatapoint validates one GetMetricStatistics datapoint and tags
// it with the endpoint and metric name.
func recordFromDatapoint(endpoint, metric string, dp types.Datapoint) (Record, error) {
	if dp.Timestamp == nil {
		return Record{}, &ValidationError{MetricName: metric, Reason: "missing timestamp"}
	}
	if dp.Average == nil {
		return Record{}, &ValidationError{MetricName: metric, Reason: "missing average value"}
	}
	return Record{
		EndpointName: endpoint,
		Timestamp:    *dp.Timestamp,
		MetricName:   metric,
		Value:        *dp.Average,
	}, nil
}

// recordsFromDataResult zips the parallel timestamp/value sequences of one
// GetMetricData result into records. Index alignment between the two
// sequences is the contract; a length mismatch fails validation rather
// than being truncated.
func recordsFromDataResult(endpoint, metric string, res types.MetricDataResult) ([]Record, error) {
	if len(res.Timestamps) != len(res.Values) {
		return nil, &ValidationError{
			MetricName: metric,
			Reason: fmt.Sprintf("timestamp/value length mismatch: %d timestamps, %d values",
				len(res.Timestamps), len(res.Values)),
		}
	}
	records := make([]Record, 0, len(res.Timestamps))
	for i := range res.Timestamps {
		records = append(records, Record{
			EndpointName: endpoint,
			Timestamp:    res.Timestamps[i],
			MetricName:   metric,
			Value:        res.Values[i],
		})
	}
	return records, nil
}
