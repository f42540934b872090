package metrictable

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ColumnSummary holds descriptive statistics for one metric column,
// computed over its non-null cells only.
type ColumnSummary struct {
	Metric string
	Count  int
	Mean   float64
	Min    float64
	Max    float64
	StdDev float64
}

// Summarize computes per-column statistics over the table. Columns with no
// observations report Count 0 and NaN statistics, so a metric that was
// absent for the whole window is visible rather than silently zero.
func (t *Table) Summarize() []ColumnSummary {
	summaries := make([]ColumnSummary, 0, len(t.metricColumns))
	for _, m := range t.metricColumns {
		var values []float64
		for _, k := range t.Keys() {
			if v, ok := t.Value(k.Timestamp, k.EndpointName, m); ok {
				values = append(values, v)
			}
		}
		s := ColumnSummary{Metric: m, Count: len(values)}
		if len(values) == 0 {
			s.Mean, s.Min, s.Max, s.StdDev = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		} else {
			s.Mean = stat.Mean(values, nil)
			s.Min = floats.Min(values)
			s.Max = floats.Max(values)
			s.StdDev = stat.StdDev(values, nil)
		}
		summaries = append(summaries, s)
	}
	return summaries
}
