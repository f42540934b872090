// Package constants provides centralized constant definitions for the
// endpoint metrics retriever.
package constants

// CloudWatch namespaces for SageMaker endpoint metrics.
// Utilization metrics live in the per-endpoint namespace, invocation
// metrics in the service-level namespace.
const (
	// NamespaceEndpoints holds instance-level utilization metrics
	// (CPU, memory, disk, GPU) emitted per endpoint variant.
	NamespaceEndpoints = "/aws/sagemaker/Endpoints"

	// NamespaceSageMaker holds service-level invocation metrics
	// (request counts, errors, model latency).
	NamespaceSageMaker = "AWS/SageMaker"
)

// CloudWatch dimension names used to scope every query to a single
// endpoint variant.
const (
	DimensionEndpointName = "EndpointName"
	DimensionVariantName  = "VariantName"
)

// Utilization metric names queried via GetMetricStatistics.
// See https://docs.aws.amazon.com/sagemaker/latest/dg/monitoring-cloudwatch.html
// for the full list of metrics SageMaker publishes.
const (
	MetricCPUUtilization       = "CPUUtilization"
	MetricMemoryUtilization    = "MemoryUtilization"
	MetricDiskUtilization      = "DiskUtilization"
	MetricInferenceLatency     = "InferenceLatency"
	MetricGPUUtilization       = "GPUUtilization"
	MetricGPUMemoryUtilization = "GPUMemoryUtilization"
)

// Invocation metric names queried via GetMetricData.
const (
	MetricInvocations            = "Invocations"
	MetricInvocation4XXErrors    = "Invocation4XXErrors"
	MetricInvocation5XXErrors    = "Invocation5XXErrors"
	MetricModelLatency           = "ModelLatency"
	MetricInvocationsPerInstance = "InvocationsPerInstance"
)

// UtilizationMetricNames is the fixed column schema of the utilization
// table, in production order.
var UtilizationMetricNames = []string{
	MetricCPUUtilization,
	MetricMemoryUtilization,
	MetricDiskUtilization,
	MetricInferenceLatency,
	MetricGPUUtilization,
	MetricGPUMemoryUtilization,
}

// InvocationMetricNames is the fixed column schema of the invocation
// table, in production order.
var InvocationMetricNames = []string{
	MetricInvocations,
	MetricInvocation4XXErrors,
	MetricInvocation5XXErrors,
	MetricModelLatency,
	MetricInvocationsPerInstance,
}

// Self-instrumentation metric names.
// These expose the retriever's own backend traffic for monitoring and
// alerting, not the endpoint metrics themselves.
const (
	// EMBackendQueriesTotal is a counter of CloudWatch API calls.
	// Labels: operation, metric_name, status (ok/error)
	EMBackendQueriesTotal = "endpoint_metrics_backend_queries_total"

	// EMBackendQueryDuration is a histogram of CloudWatch call latency.
	// Labels: operation
	EMBackendQueryDuration = "endpoint_metrics_backend_query_duration_seconds"

	// EMDatapointsTotal is a counter of validated datapoints per collector.
	// Labels: collector (utilization/invocation)
	EMDatapointsTotal = "endpoint_metrics_datapoints_total"

	// EMEmptyResultsTotal counts collector invocations that found no data.
	// Labels: collector
	EMEmptyResultsTotal = "endpoint_metrics_empty_results_total"
)

// Label names for the self-instrumentation metrics.
const (
	LabelOperation  = "operation"
	LabelMetricName = "metric_name"
	LabelStatus     = "status"
	LabelCollector  = "collector"
)
