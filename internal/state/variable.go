package state

import "github.com/beliefsg/beliefsg/internal/bgerr"

// Variable is a named piece of game-specific bookkeeping that lives
// alongside the piece collections — a pot, per-player scores, whose turn
// started the betting round. The value is one of string, int, float64,
// bool, or a slice of one of those.
type Variable struct {
	name  string
	value any
}

// NewVariable builds a variable.
func NewVariable(name string, value any) Variable {
	return Variable{name: name, value: value}
}

// Name returns the variable's name.
func (v Variable) Name() string { return v.name }

// Value returns the variable's raw value.
func (v Variable) Value() any { return v.value }

// Int type-asserts the variable's value as an int, faulting on mismatch.
func (v Variable) Int() int {
	i, ok := v.value.(int)
	if !ok {
		bgerr.Fault("variable %q is not an int (got %T)", v.name, v.value)
	}
	return i
}

// IntSlice type-asserts the variable's value as a []int.
func (v Variable) IntSlice() []int {
	s, ok := v.value.([]int)
	if !ok {
		bgerr.Fault("variable %q is not a []int (got %T)", v.name, v.value)
	}
	return s
}

// Float64Slice type-asserts the variable's value as a []float64.
func (v Variable) Float64Slice() []float64 {
	s, ok := v.value.([]float64)
	if !ok {
		bgerr.Fault("variable %q is not a []float64 (got %T)", v.name, v.value)
	}
	return s
}

// Str type-asserts the variable's value as a string.
func (v Variable) Str() string {
	s, ok := v.value.(string)
	if !ok {
		bgerr.Fault("variable %q is not a string (got %T)", v.name, v.value)
	}
	return s
}

// Bool type-asserts the variable's value as a bool.
func (v Variable) Bool() bool {
	b, ok := v.value.(bool)
	if !ok {
		bgerr.Fault("variable %q is not a bool (got %T)", v.name, v.value)
	}
	return b
}
