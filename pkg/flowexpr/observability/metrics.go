package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records flowexpr metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordEvaluation records a completed evaluation with its duration
	// and error status.
	RecordEvaluation(ctx context.Context, success bool, duration time.Duration)

	// RecordInterpolation records one resolved interpolation site.
	RecordInterpolation(ctx context.Context, success bool)

	// RecordHistoryAppend records a history append operation.
	RecordHistoryAppend(ctx context.Context, success bool)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	evaluations    metric.Int64Counter
	evalLatency    metric.Float64Histogram
	evalErrors     metric.Int64Counter
	interpolations metric.Int64Counter
	historyAppends metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("flowexpr")

	evaluations, err := meter.Int64Counter("flowexpr.evaluations",
		metric.WithDescription("Number of expression evaluations"),
	)
	if err != nil {
		return nil, err
	}

	evalLatency, err := meter.Float64Histogram("flowexpr.evaluation.latency_ms",
		metric.WithDescription("Evaluation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	evalErrors, err := meter.Int64Counter("flowexpr.evaluation.errors",
		metric.WithDescription("Number of failed evaluations"),
	)
	if err != nil {
		return nil, err
	}

	interpolations, err := meter.Int64Counter("flowexpr.interpolation.sites",
		metric.WithDescription("Number of resolved interpolation sites"),
	)
	if err != nil {
		return nil, err
	}

	historyAppends, err := meter.Int64Counter("flowexpr.history.appends",
		metric.WithDescription("Number of history append operations"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		evaluations:    evaluations,
		evalLatency:    evalLatency,
		evalErrors:     evalErrors,
		interpolations: interpolations,
		historyAppends: historyAppends,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordEvaluation records a completed evaluation.
func (m *otelMetrics) RecordEvaluation(ctx context.Context, success bool, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.Bool("success", success),
	}

	m.evaluations.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.evalLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if !success {
		m.evalErrors.Add(ctx, 1)
	}
}

// RecordInterpolation records one resolved interpolation site.
func (m *otelMetrics) RecordInterpolation(ctx context.Context, success bool) {
	m.interpolations.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("success", success),
	))
}

// RecordHistoryAppend records a history append.
func (m *otelMetrics) RecordHistoryAppend(ctx context.Context, success bool) {
	m.historyAppends.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("success", success),
	))
}
