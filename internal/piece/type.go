package piece

import "github.com/beliefsg/beliefsg/internal/bgerr"

// Type enumerates every value a piece of this kind can take — a deck of
// card ranks, the set of Stratego unit ranks, and so on. It is immutable
// and shared by every piece of this kind across a state.
type Type struct {
	values []Value
}

// NewType builds a type from its possible values, in the order callers
// will index them by.
func NewType(values []Value) *Type {
	return &Type{values: append([]Value(nil), values...)}
}

// Size returns the number of possible values.
func (t *Type) Size() int { return len(t.values) }

// Values returns the type's possible values, in index order.
func (t *Type) Values() []Value { return t.values }

// Contains reports whether value is one of this type's possible values.
func (t *Type) Contains(value Value) bool {
	for _, v := range t.values {
		if v.Equal(value) {
			return true
		}
	}
	return false
}

// IndexOf returns the index of value within this type. It faults if the
// value does not belong to the type.
func (t *Type) IndexOf(value Value) int {
	for i, v := range t.values {
		if v.Equal(value) {
			return i
		}
	}
	bgerr.Fault("piece value %s does not belong to this type", value)
	return -1
}

// ValueAt returns the value at the given index.
func (t *Type) ValueAt(index int) Value { return t.values[index] }
