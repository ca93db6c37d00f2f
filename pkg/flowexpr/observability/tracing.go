package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the flowexpr tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("flowexpr")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartEvalSpan starts a span for one full evaluation.
	// Returns the context with span and the span itself.
	StartEvalSpan(ctx context.Context, expression string) (context.Context, trace.Span)

	// StartSiteSpan starts a span for one nested interpolation site.
	// The site span should be a child of the evaluation span.
	StartSiteSpan(ctx context.Context, inner string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartEvalSpan starts a span for one full evaluation.
func (m *otelSpanManager) StartEvalSpan(ctx context.Context, expression string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "flowexpr.evaluate",
		trace.WithAttributes(
			attribute.String("expression", expression),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartSiteSpan starts a span for one nested interpolation site.
func (m *otelSpanManager) StartSiteSpan(ctx context.Context, inner string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "flowexpr.interpolate",
		trace.WithAttributes(
			attribute.String("inner", inner),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// Convenience functions that operate on the global tracer.
// These are useful for simple cases where you don't need the interface.

// StartEvalSpan starts a span for one full evaluation.
// Uses the global OTel tracer.
func StartEvalSpan(ctx context.Context, expression string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "flowexpr.evaluate",
		trace.WithAttributes(
			attribute.String("expression", expression),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartSiteSpan starts a span for one nested interpolation site.
// Uses the global OTel tracer.
func StartSiteSpan(ctx context.Context, inner string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "flowexpr.interpolate",
		trace.WithAttributes(
			attribute.String("inner", inner),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
