package flowexpr

import (
	"log/slog"

	"github.com/randalmurphal/flowexpr/pkg/flowexpr/bridge"
	"github.com/randalmurphal/flowexpr/pkg/flowexpr/history"
	"github.com/randalmurphal/flowexpr/pkg/flowexpr/observability"
)

// Option configures an Engine.
type Option func(*Engine)

// WithMaxDepth sets the nested interpolation limit.
// Default: DefaultMaxDepth
//
// Exceeding the limit fails the evaluation with ErrDepthExceeded.
// Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxDepth = n
		}
	}
}

// WithBridge connects the engine to the host runtime's named callables.
// The flow() and action() builtins dispatch through the bridge; without
// one, invoking them is an evaluation failure.
func WithBridge(b *bridge.Bridge) Option {
	return func(e *Engine) {
		e.bridge = b
	}
}

// WithUID replaces the generator behind the uid() builtin.
// Default: google/uuid
//
// Use this when the host runtime owns identifier generation.
func WithUID(fn func() string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.uid = fn
		}
	}
}

// WithLogger enables structured logging of evaluations.
// Default: no logging
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithSpans enables trace spans around evaluations and interpolation
// sites. Default: no-op
//
// Example:
//
//	engine := flowexpr.New(flowexpr.WithSpans(observability.NewSpanManager()))
func WithSpans(sm observability.SpanManager) Option {
	return func(e *Engine) {
		if sm != nil {
			e.spans = sm
		}
	}
}

// WithMetrics enables metrics recording for evaluations, interpolation
// sites, and history appends. Default: no-op
func WithMetrics(mr observability.MetricsRecorder) Option {
	return func(e *Engine) {
		if mr != nil {
			e.metrics = mr
		}
	}
}

// WithHistory records every evaluation to the given store.
// Default: no history
//
// Append failures are logged and never fail the evaluation.
func WithHistory(store history.Store) Option {
	return func(e *Engine) {
		e.history = store
	}
}
