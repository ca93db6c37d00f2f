package flowexpr

import (
	"fmt"
	"reflect"
)

// CompareOp identifies a deferred comparison operator.
type CompareOp string

// Supported comparison operators.
const (
	OpLessThan       CompareOp = "<"
	OpLessOrEqual    CompareOp = "<="
	OpGreaterThan    CompareOp = ">"
	OpGreaterOrEqual CompareOp = ">="
	OpNotEqual       CompareOp = "!="
)

// Comparison is a deferred, partially applied comparison: an operator and
// a numeric reference value awaiting a concrete left-hand value.
//
// Comparisons are produced by the LESS_THAN family of library functions
// and consumed by a later Compare call, typically made by the surrounding
// runtime when matching events against authored conditions.
type Comparison struct {
	op  CompareOp
	ref any
}

// newComparison builds a Comparison, rejecting non-numeric references.
func newComparison(op CompareOp, ref any) (*Comparison, error) {
	if !isNumeric(ref) {
		return nil, fmt.Errorf("%w: got %T", ErrComparisonRef, ref)
	}
	return &Comparison{op: op, ref: ref}, nil
}

// Op returns the comparison operator.
func (c *Comparison) Op() CompareOp {
	return c.op
}

// Ref returns the reference value the comparison was constructed with.
func (c *Comparison) Ref() any {
	return c.ref
}

// Compare applies the comparison to value, with value on the left-hand
// side: LESS_THAN(5).Compare(3) asks whether 3 < 5.
//
// The value's concrete type must equal the reference value's concrete
// type. There is no coercion: an int value never compares against a
// float64 reference, and bool is not numeric even where the evaluator
// treats it as such.
func (c *Comparison) Compare(value any) (bool, error) {
	if reflect.TypeOf(value) != reflect.TypeOf(c.ref) {
		return false, fmt.Errorf("%w: %T vs %T", ErrComparisonType, value, c.ref)
	}

	l := reflect.ValueOf(value)
	r := reflect.ValueOf(c.ref)

	switch c.op {
	case OpLessThan:
		return numericLess(l, r), nil
	case OpLessOrEqual:
		return !numericLess(r, l), nil
	case OpGreaterThan:
		return numericLess(r, l), nil
	case OpGreaterOrEqual:
		return !numericLess(l, r), nil
	case OpNotEqual:
		return !numericEqual(l, r), nil
	default:
		return false, fmt.Errorf("unknown comparison operator: %s", c.op)
	}
}

// numericLess reports l < r. Both values have the same numeric kind;
// Compare checks that before calling.
func numericLess(l, r reflect.Value) bool {
	switch l.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return l.Int() < r.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return l.Uint() < r.Uint()
	case reflect.Float32, reflect.Float64:
		return l.Float() < r.Float()
	default:
		return false
	}
}

// numericEqual reports l == r with IEEE semantics: a NaN operand is
// equal to nothing, itself included.
func numericEqual(l, r reflect.Value) bool {
	switch l.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return l.Int() == r.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return l.Uint() == r.Uint()
	case reflect.Float32, reflect.Float64:
		return l.Float() == r.Float()
	default:
		return false
	}
}

// isNumeric reports whether v is an integer or floating-point value.
// bool has its own reflect kind, so true/false never pass.
func isNumeric(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
