package cmd

import (
	"fmt"
	"time"

	"github.com/inferenceops/endpoint-metrics/internal/metrictable"
)

type window struct {
	start time.Time
	end   time.Time
}

// parseWindow resolves the start/end flags, defaulting to the last hour.
func parseWindow(startFlag, endFlag string) (window, error) {
	w := window{end: time.Now().UTC()}
	var err error

	if endFlag != "" {
		w.end, err = time.Parse(time.RFC3339, endFlag)
		if err != nil {
			return window{}, fmt.Errorf("parse --end: %w", err)
		}
	}
	w.start = w.end.Add(-time.Hour)
	if startFlag != "" {
		w.start, err = time.Parse(time.RFC3339, startFlag)
		if err != nil {
			return window{}, fmt.Errorf("parse --start: %w", err)
		}
	}
	return w, nil
}

func printSummary(t *metrictable.Table) {
	fmt.Println()
	fmt.Printf("%-24s %8s %12s %12s %12s %12s\n", "Metric", "Count", "Mean", "Min", "Max", "StdDev")
	for _, s := range t.Summarize() {
		fmt.Printf("%-24s %8d %12.4f %12.4f %12.4f %12.4f\n",
			s.Metric, s.Count, s.Mean, s.Min, s.Max, s.StdDev)
	}
}
