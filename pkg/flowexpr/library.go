package flowexpr

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// newLibrary builds the closed function table for one engine. The table
// is the sandbox boundary: these names, plus the resolved variable
// bindings, are the only names an expression can reach. It is built once
// at construction and never mutated.
func newLibrary(e *Engine) map[string]any {
	return map[string]any{
		"len":     builtinLen,
		"flow":    e.systemFunc("flow"),
		"action":  e.systemFunc("action"),
		"regex":   builtinRegex,
		"search":  builtinSearch,
		"findall": builtinFindall,
		"uid":     func() string { return e.uid() },
		"str":     Stringify,
		"escape":  builtinEscape,
		"isint":   builtinIsInt,
		"isfloat": builtinIsFloat,
		"isbool":  builtinIsBool,
		"isstr":   builtinIsStr,

		"LESS_THAN":          comparisonFunc(OpLessThan),
		"EQUAL_LESS_THAN":    comparisonFunc(OpLessOrEqual),
		"GREATER_THAN":       comparisonFunc(OpGreaterThan),
		"EQUAL_GREATER_THAN": comparisonFunc(OpGreaterOrEqual),
		"NOT_EQUAL_TO":       comparisonFunc(OpNotEqual),

		// Backs the rewritten / operator; see divisionPatcher.
		divideName: checkedDivide,
	}
}

// divideName is the library entry the / operator is rewritten to.
const divideName = "_divide"

// checkedDivide performs the evaluator's float division with a zero
// divisor turned into a reported failure instead of an infinity.
func checkedDivide(a, b any) (any, error) {
	x, okA := toFloat(a)
	y, okB := toFloat(b)
	if !okA || !okB {
		return nil, fmt.Errorf("invalid operation: %T / %T", a, b)
	}
	if y == 0 {
		return nil, ErrDivisionByZero
	}
	return x / y, nil
}

// toFloat widens any numeric value to float64.
func toFloat(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

// systemFunc returns the library entry for a named host callable.
// The behavior is owned by the surrounding flow runtime; without a
// bridge the call is a reported failure.
func (e *Engine) systemFunc(name string) func(args ...any) (any, error) {
	return func(args ...any) (any, error) {
		if e.bridge == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoBridge, name)
		}
		return e.bridge.Call(name, args...)
	}
}

// comparisonFunc returns a constructor for deferred comparisons with
// the given operator.
func comparisonFunc(op CompareOp) func(ref any) (*Comparison, error) {
	return func(ref any) (*Comparison, error) {
		return newComparison(op, ref)
	}
}

// builtinLen returns the length of a string, list, or mapping.
func builtinLen(v any) (int, error) {
	if s, ok := v.(string); ok {
		return len(s), nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), nil
	default:
		return 0, fmt.Errorf("len: unsupported type %T", v)
	}
}

// builtinRegex compiles a pattern for later use with search/findall.
func builtinRegex(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(pattern)
}

// builtinSearch reports whether pattern matches anywhere in s.
// pattern may be a string or a value produced by regex().
func builtinSearch(pattern any, s string) (bool, error) {
	re, err := toRegexp(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(s), nil
}

// builtinFindall returns all non-overlapping matches of pattern in s.
func builtinFindall(pattern any, s string) ([]string, error) {
	re, err := toRegexp(pattern)
	if err != nil {
		return nil, err
	}
	matches := re.FindAllString(s, -1)
	if matches == nil {
		matches = []string{}
	}
	return matches, nil
}

// toRegexp accepts either a pattern string or an already-compiled regexp.
func toRegexp(pattern any) (*regexp.Regexp, error) {
	switch p := pattern.(type) {
	case *regexp.Regexp:
		return p, nil
	case string:
		return regexp.Compile(p)
	default:
		return nil, fmt.Errorf("regex: unsupported pattern type %T", pattern)
	}
}

// builtinEscape escapes backslashes and doubled braces so a previously
// interpolated value survives another interpolation round verbatim.
func builtinEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "{{", `\{`)
	return strings.ReplaceAll(s, "}}", `\}`)
}

// builtinIsInt reports whether v is an integer.
func builtinIsInt(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

// builtinIsFloat reports whether v is a floating-point value.
func builtinIsFloat(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// builtinIsBool reports whether v is a boolean.
func builtinIsBool(v any) bool {
	_, ok := v.(bool)
	return ok
}

// builtinIsStr reports whether v is a string.
func builtinIsStr(v any) bool {
	_, ok := v.(string)
	return ok
}

// Stringify renders a value the way the str() builtin and interpolation
// sites do. nil renders as the empty string.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	default:
		return fmt.Sprintf("%v", val)
	}
}
