package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/inferenceops/endpoint-metrics/internal/cloudwatch"
	"github.com/inferenceops/endpoint-metrics/internal/collector"
	"github.com/inferenceops/endpoint-metrics/internal/logger"
	"github.com/inferenceops/endpoint-metrics/internal/metrics"
)

var (
	endpointName string
	variantName  string
	startFlag    string
	endFlag      string
	period       int32
	region       string
	logLevel     string
	format       string
	showSummary  bool
	cacheTTL     time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "endpoint-metrics",
	Short: "Retrieve consolidated CloudWatch metrics for a SageMaker endpoint",
	Long: `endpoint-metrics queries CloudWatch for the utilization and invocation
metrics of a SageMaker endpoint variant over a time window and prints one
consolidated table: one row per timestamp, one column per metric.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&endpointName, "endpoint", "", "SageMaker endpoint name (required)")
	rootCmd.Flags().StringVar(&variantName, "variant", "", "endpoint variant name (required)")
	rootCmd.Flags().StringVar(&startFlag, "start", "", "window start, RFC3339 (default: one hour ago)")
	rootCmd.Flags().StringVar(&endFlag, "end", "", "window end, RFC3339 (default: now)")
	rootCmd.Flags().Int32Var(&period, "period", collector.DefaultPeriodSeconds, "sampling period in seconds")
	rootCmd.Flags().StringVar(&region, "region", "", "AWS region (default: from AWS config chain)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.Flags().StringVarP(&format, "output", "o", "table", "output format: table or csv")
	rootCmd.Flags().BoolVar(&showSummary, "summary", false, "print per-metric summary statistics")
	rootCmd.Flags().DurationVar(&cacheTTL, "cache-ttl", 0, "cache merged tables for this duration (0 disables)")

	cobra.CheckErr(rootCmd.MarkFlagRequired("endpoint"))
	cobra.CheckErr(rootCmd.MarkFlagRequired("variant"))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func run(cmd *cobra.Command, args []string) error {
	log, err := logger.New(logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	win, err := parseWindow(startFlag, endFlag)
	if err != nil {
		return err
	}

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return err
	}

	api, err := cloudwatch.New(cmd.Context(), region)
	if err != nil {
		return err
	}

	var opts []collector.Option
	if cacheTTL > 0 {
		opts = append(opts, collector.WithCache(cacheTTL))
	}
	c := collector.New(api, log, opts...)

	table := c.EndpointMetrics(cmd.Context(), collector.Params{
		EndpointName:  endpointName,
		VariantName:   variantName,
		StartTime:     win.start,
		EndTime:       win.end,
		PeriodSeconds: period,
	})
	if table == nil {
		return errors.New("no metrics available; see logs for details")
	}

	switch format {
	case "table":
		fmt.Print(table.RenderText())
	case "csv":
		out, err := table.RenderCSV()
		if err != nil {
			return err
		}
		fmt.Print(out)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	if showSummary {
		printSummary(table)
	}
	return nil
}
