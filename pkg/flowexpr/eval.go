package flowexpr

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/randalmurphal/flowexpr/pkg/flowexpr/bridge"
	"github.com/randalmurphal/flowexpr/pkg/flowexpr/history"
	"github.com/randalmurphal/flowexpr/pkg/flowexpr/observability"
)

// DefaultMaxDepth bounds nested interpolation. Cyclic or pathological
// input fails with ErrDepthExceeded instead of overflowing the stack.
const DefaultMaxDepth = 64

// Engine evaluates expressions against caller-supplied contexts.
//
// An Engine is immutable after New returns: the function library is
// fixed at construction and every call builds its own transient
// bindings, so concurrent calls need no locking.
type Engine struct {
	lib      map[string]any
	bridge   *bridge.Bridge
	uid      func() string
	maxDepth int
	logger   *slog.Logger
	spans    observability.SpanManager
	metrics  observability.MetricsRecorder
	history  history.Store
}

// New creates an Engine with the given options.
//
// Defaults: depth limit DefaultMaxDepth, uid() backed by google/uuid,
// no host bridge, no logging, no-op tracing and metrics, no history.
func New(opts ...Option) *Engine {
	e := &Engine{
		uid:      uuid.NewString,
		maxDepth: DefaultMaxDepth,
		spans:    observability.NoopSpanManager{},
		metrics:  observability.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.lib = newLibrary(e)
	return e
}

// defaultEngine backs the package-level Evaluate functions.
var defaultEngine = New()

// Evaluate evaluates an expression using the default engine.
func Evaluate(expression any, vars map[string]any) (any, error) {
	return defaultEngine.Evaluate(expression, vars)
}

// EvaluateContext evaluates an expression using the default engine,
// with ctx carried into tracing and host-bridge calls.
func EvaluateContext(ctx context.Context, expression any, vars map[string]any) (any, error) {
	return defaultEngine.EvaluateContext(ctx, expression, vars)
}

// Evaluate resolves expression against vars and returns the result.
//
// A nil expression yields nil. Non-string primitives (bool, integers,
// floats) are returned unchanged. Strings run the full pipeline:
// interpolation of {...} sites inside string literals, $variable
// resolution, then sandboxed evaluation. Any other type is an
// ErrUnsupportedType failure.
//
// vars is read-only from the engine's perspective and is never mutated.
func (e *Engine) Evaluate(expression any, vars map[string]any) (any, error) {
	return e.EvaluateContext(context.Background(), expression, vars)
}

// EvaluateContext is Evaluate with a caller-supplied context for
// tracing spans and host-bridge calls.
func (e *Engine) EvaluateContext(ctx context.Context, expression any, vars map[string]any) (any, error) {
	text := exprText(expression)
	observability.LogEvalStart(e.logger, text)

	ctx, span := e.spans.StartEvalSpan(ctx, text)
	start := time.Now()

	result, err := e.eval(ctx, expression, vars, 0)

	elapsed := time.Since(start)
	e.spans.EndSpanWithError(span, err)
	e.metrics.RecordEvaluation(ctx, err == nil, elapsed)

	if err != nil {
		observability.LogEvalError(e.logger, text, err, float64(elapsed.Milliseconds()))
	} else {
		observability.LogEvalComplete(e.logger, text, float64(elapsed.Milliseconds()))
	}

	e.record(ctx, text, result, err, elapsed)
	return result, err
}

// eval dispatches one pipeline pass at the given recursion depth.
func (e *Engine) eval(ctx context.Context, expression any, vars map[string]any, depth int) (any, error) {
	if depth > e.maxDepth {
		return nil, fmt.Errorf("%w: limit %d", ErrDepthExceeded, e.maxDepth)
	}

	switch v := expression.(type) {
	case nil:
		return nil, nil
	case string:
		return e.evalText(ctx, v, vars, depth)
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, expression)
	}
}

// evalText runs the three pipeline stages on expression text.
func (e *Engine) evalText(ctx context.Context, text string, vars map[string]any, depth int) (any, error) {
	text, err := e.interpolate(ctx, text, vars, depth)
	if err != nil {
		return nil, err
	}
	rewritten, bindings := resolveVariables(text, vars)
	return e.run(rewritten, bindings)
}

// record appends the evaluation to the history store, if one is
// configured. History failures are logged, never surfaced: the
// evaluation result stands on its own.
func (e *Engine) record(ctx context.Context, text string, result any, evalErr error, elapsed time.Duration) {
	if e.history == nil {
		return
	}

	rec := history.Record{
		ID:         e.uid(),
		Expression: text,
		DurationMS: float64(elapsed.Milliseconds()),
		Timestamp:  time.Now().UTC(),
	}
	if evalErr != nil {
		rec.Error = evalErr.Error()
	} else if data, err := json.Marshal(result); err == nil {
		rec.Result = data
	}

	err := e.history.Append(rec)
	e.metrics.RecordHistoryAppend(ctx, err == nil)
	if err != nil {
		observability.LogHistoryError(e.logger, err)
	}
}

// exprText renders the expression for logs, spans, and history records.
func exprText(expression any) string {
	if s, ok := expression.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", expression)
}
