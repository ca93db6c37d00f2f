/*
Package flowexpr evaluates short, author-written expressions against a
dialogue-flow context without exposing host capabilities.

# Overview

flowexpr is the expression engine used by flow runtimes to turn authored
text like

	"Hi {$speaker.name}, you have {len($messages)} messages"

into concrete values. It is deliberately not a scripting language: there
are no loops, no user-defined functions, no assignment, and no I/O. The
only reachable names are the variables resolved from the caller's context
and a fixed, closed library of built-in functions.

Evaluation runs a three-stage pipeline per call:

 1. Interpolation: quoted string literals are scanned for {...} sites,
    each site is recursively evaluated against the same context, and the
    result is spliced back in. Doubled braces ({{ and }}) escape literal
    braces.
 2. Variable resolution: $name references are looked up in the context
    and rewritten to sandbox-legal names. Missing variables resolve to
    nil rather than failing.
 3. Sandboxed evaluation: the rewritten text is compiled and run with
    expr-lang against a namespace containing exactly the resolved
    bindings and the built-in library. All expr builtins are disabled.

# Basic Usage

	result, err := flowexpr.Evaluate("$count + 1", map[string]any{"count": 2})
	// result: 3

	result, err = flowexpr.Evaluate(`"hello {$name}"`, map[string]any{"name": "Bob"})
	// result: "hello Bob"

Create an engine to configure behavior:

	engine := flowexpr.New(
	    flowexpr.WithMaxDepth(16),
	    flowexpr.WithBridge(hostBridge),
	    flowexpr.WithLogger(slog.Default()),
	)
	result, err := engine.Evaluate("flow('greeting')", nil)

# Built-in Library

The library is fixed at engine construction and never grows at runtime:

	len(v)                     length of a string, list, or mapping
	flow(args...)              host-runtime flow call (via bridge)
	action(args...)            host-runtime action call (via bridge)
	regex(pattern)             compile a regular expression
	search(pattern, s)         report whether pattern matches s
	findall(pattern, s)        all non-overlapping matches of pattern in s
	uid()                      fresh unique identifier
	str(v)                     stringify a value
	escape(s)                  escape braces and backslashes for re-interpolation
	isint(v) isfloat(v)        type predicates
	isbool(v) isstr(v)
	LESS_THAN(n)               deferred comparison constructors, each
	EQUAL_LESS_THAN(n)         returning a *Comparison to be applied
	GREATER_THAN(n)            later via Compare
	EQUAL_GREATER_THAN(n)
	NOT_EQUAL_TO(n)

# Deferred Comparisons

Comparison constructors capture an operator and a numeric reference value
for later application, typically by the surrounding runtime when matching
events:

	v, _ := flowexpr.Evaluate("LESS_THAN(5)", nil)
	cmp := v.(*flowexpr.Comparison)
	ok, err := cmp.Compare(3)   // true
	ok, err = cmp.Compare(3.0)  // error: int reference vs float64 value

Construction rejects non-numeric references, and Compare rejects values
whose concrete type differs from the reference's.

# Concurrency

An Engine holds no mutable state between calls. Concurrent evaluations
are independent as long as the caller does not mutate a context map while
a call using it is in flight.

# Errors

Failures carry the offending text and cause. Use errors.As with
*EvalError (sandbox failures, wrapping the rewritten expression) and
*InterpolationError (failures inside a {...} site, wrapping the inner
text), and errors.Is with the sentinel errors ErrUnsupportedType,
ErrComparisonRef, ErrComparisonType, ErrDepthExceeded, and ErrNoBridge.
*/
package flowexpr
