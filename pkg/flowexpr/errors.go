package flowexpr

import (
	"errors"
	"fmt"
)

// Sentinel errors for evaluation.
var (
	// ErrUnsupportedType indicates a non-string, non-primitive value was
	// passed where an expression was expected.
	ErrUnsupportedType = errors.New("unsupported expression type")

	// ErrComparisonRef indicates a comparison constructor was given a
	// non-numeric reference value.
	ErrComparisonRef = errors.New("comparison reference must be numeric")

	// ErrComparisonType indicates Compare was given a value whose concrete
	// type differs from the reference value's type.
	ErrComparisonType = errors.New("comparison operands have different types")

	// ErrDepthExceeded indicates nested interpolation recursed past the
	// engine's depth limit.
	ErrDepthExceeded = errors.New("interpolation depth exceeded")

	// ErrNoBridge indicates flow() or action() was invoked on an engine
	// without a host bridge.
	ErrNoBridge = errors.New("no host bridge configured")

	// ErrDivisionByZero indicates a division with a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")
)

// EvalError wraps a sandbox failure with the rewritten expression text.
// It covers unresolvable names, unsupported operations, and runtime
// errors raised during evaluation.
type EvalError struct {
	// Text is the fully rewritten expression handed to the sandbox.
	Text string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluating %q: %v", e.Text, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *EvalError) Unwrap() error {
	return e.Err
}

// InterpolationError wraps a failure raised while evaluating the text
// inside a {...} interpolation site.
type InterpolationError struct {
	// Inner is the text enclosed by the offending site.
	Inner string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *InterpolationError) Error() string {
	return fmt.Sprintf("inner expression %q: %v", e.Inner, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *InterpolationError) Unwrap() error {
	return e.Err
}
