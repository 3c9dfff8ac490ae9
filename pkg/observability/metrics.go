package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// Metrics handles application metrics and monitoring
type Metrics struct {
	namespace string
	client    *cloudwatch.Client
}

// NewMetrics creates a new metrics instance
func NewMetrics(namespace string, client *cloudwatch.Client) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
	}
}

// RecordOperation records latency and count metrics for a graph operation
func (m *Metrics) RecordOperation(ctx context.Context, operation string, duration time.Duration, err error) {
	if m.client == nil {
		return // Skip if no client configured
	}

	status := "success"
	if err != nil {
		status = "failure"
	}

	dimensions := []types.Dimension{
		{
			Name:  aws.String("Operation"),
			Value: aws.String(operation),
		},
		{
			Name:  aws.String("Status"),
			Value: aws.String(status),
		},
	}

	metricData := []types.MetricDatum{
		{
			MetricName: aws.String("OperationLatency"),
			Dimensions: dimensions,
			Value:      aws.Float64(float64(duration.Milliseconds())),
			Unit:       types.StandardUnitMilliseconds,
			Timestamp:  aws.Time(time.Now()),
		},
		{
			MetricName: aws.String("OperationCount"),
			Dimensions: dimensions,
			Value:      aws.Float64(1),
			Unit:       types.StandardUnitCount,
			Timestamp:  aws.Time(time.Now()),
		},
	}

	input := &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: metricData,
	}

	// Metrics are best-effort: a failed put never affects the operation
	_, _ = m.client.PutMetricData(ctx, input)
}

// RecordGraphSize records the node and edge counts observed during a graph
// assembly, useful for capacity dashboards
func (m *Metrics) RecordGraphSize(ctx context.Context, nodeCount, edgeCount int) {
	if m.client == nil {
		return
	}

	metricData := []types.MetricDatum{
		{
			MetricName: aws.String("GraphNodeCount"),
			Value:      aws.Float64(float64(nodeCount)),
			Unit:       types.StandardUnitCount,
			Timestamp:  aws.Time(time.Now()),
		},
		{
			MetricName: aws.String("GraphEdgeCount"),
			Value:      aws.Float64(float64(edgeCount)),
			Unit:       types.StandardUnitCount,
			Timestamp:  aws.Time(time.Now()),
		},
	}

	input := &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: metricData,
	}

	_, _ = m.client.PutMetricData(ctx, input)
}
