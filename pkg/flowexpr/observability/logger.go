// Package observability provides structured logging, metrics, and
// tracing for flowexpr evaluations.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds flowexpr context to a logger.
// Returns a new logger with engine_id and expression fields.
func EnrichLogger(logger *slog.Logger, engineID, expression string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("engine_id", engineID),
		slog.String("expression", expression),
	)
}

// LogEvalStart logs the start of an evaluation.
func LogEvalStart(logger *slog.Logger, expression string) {
	if logger == nil {
		return
	}
	logger.Debug("evaluation starting",
		slog.String("expression", expression),
	)
}

// LogEvalComplete logs successful evaluation completion.
func LogEvalComplete(logger *slog.Logger, expression string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("evaluation completed",
		slog.String("expression", expression),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogEvalError logs evaluation failure.
func LogEvalError(logger *slog.Logger, expression string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("evaluation failed",
		slog.String("expression", expression),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogHistoryError logs a history append failure (non-fatal).
func LogHistoryError(logger *slog.Logger, err error) {
	if logger == nil {
		return
	}
	logger.Warn("history append failed",
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
