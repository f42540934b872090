// Package cloudwatch wraps construction of the AWS CloudWatch client used
// as the metric backend.
package cloudwatch

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cw "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
)

// API is the subset of the CloudWatch client the collectors depend on.
// *cloudwatch.Client satisfies it; tests substitute a fake.
type API interface {
	GetMetricStatistics(ctx context.Context, in *cw.GetMetricStatisticsInput, opts ...func(*cw.Options)) (*cw.GetMetricStatisticsOutput, error)
	GetMetricData(ctx context.Context, in *cw.GetMetricDataInput, opts ...func(*cw.Options)) (*cw.GetMetricDataOutput, error)
}

// New builds a CloudWatch client from the default AWS configuration chain.
// Region may be empty, in which case the chain's region is used.
func New(ctx context.Context, region string) (*cw.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return cw.NewFromConfig(cfg), nil
}
