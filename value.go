package xctid

import "fmt"

// Value is a single animatable value: either a Num or a Bool. The closed set
// lets interpolation match operand combinations exhaustively instead of
// falling through silently on unexpected types.
type Value interface {
	isValue()
}

// Num is a numeric value. Blended results are fractional, so integer inputs
// convert to Num at the boundary.
type Num float64

func (Num) isValue() {}

// Bool is a boolean value. Booleans cannot be blended; interpolation snaps
// to the nearer endpoint instead.
type Bool bool

func (Bool) isValue() {}

// MismatchError reports two input sequences of different lengths. It carries
// both sequences for diagnostics.
type MismatchError struct {
	From []Value
	To   []Value
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("mismatched interpolation arguments %v: %v", e.From, e.To)
}

// TypeMismatchError reports scalar operands that are not both numeric or
// both boolean.
type TypeMismatchError struct {
	From Value
	To   Value
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("cannot interpolate %T with %T", e.From, e.To)
}
