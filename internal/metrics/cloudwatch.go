package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// CloudWatchAPI is the minimal interface for publishing metric data.
type CloudWatchAPI interface {
	PutMetricData(ctx context.Context, input *cloudwatch.PutMetricDataInput, opts ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// RunMetrics are the per-run datapoints published to CloudWatch.
type RunMetrics struct {
	HealthScore  int
	ErrorCount   int
	WarningCount int
	TotalCost    float64
	AlertCount   int
}

// Publisher emits custom metrics describing each analysis run.
type Publisher struct {
	api       CloudWatchAPI
	namespace string
}

// NewPublisher creates a publisher from an AWS config.
func NewPublisher(cfg awssdk.Config, namespace string) *Publisher {
	return &Publisher{api: cloudwatch.NewFromConfig(cfg), namespace: namespace}
}

// NewPublisherFromAPI creates a publisher with an injected API, for tests.
func NewPublisherFromAPI(api CloudWatchAPI, namespace string) *Publisher {
	return &Publisher{api: api, namespace: namespace}
}

// Publish sends the run's datapoints in a single PutMetricData call.
func (p *Publisher) Publish(ctx context.Context, m RunMetrics, now time.Time) error {
	ts := awssdk.Time(now.UTC())

	datum := func(name string, value float64, unit cwtypes.StandardUnit) cwtypes.MetricDatum {
		return cwtypes.MetricDatum{
			MetricName: awssdk.String(name),
			Value:      awssdk.Float64(value),
			Unit:       unit,
			Timestamp:  ts,
		}
	}

	input := &cloudwatch.PutMetricDataInput{
		Namespace: awssdk.String(p.namespace),
		MetricData: []cwtypes.MetricDatum{
			datum("HealthScore", float64(m.HealthScore), cwtypes.StandardUnitNone),
			datum("ErrorCount", float64(m.ErrorCount), cwtypes.StandardUnitCount),
			datum("WarningCount", float64(m.WarningCount), cwtypes.StandardUnitCount),
			datum("AlertCount", float64(m.AlertCount), cwtypes.StandardUnitCount),
			datum("TotalCost", m.TotalCost, cwtypes.StandardUnitNone),
		},
	}

	if _, err := p.api.PutMetricData(ctx, input); err != nil {
		return fmt.Errorf("put metric data (%s): %w", p.namespace, err)
	}

	slog.Info("Published run metrics", "namespace", p.namespace)
	return nil
}
