// Package piece implements the value model: attributes, the composite
// piece values built from them, and the piece types that enumerate every
// value a kind of piece can take.
package piece

import "fmt"

// Attribute is a single named fact about a piece value — a suit, a rank, a
// numeric pip count. The value is one of int, float64, or string.
type Attribute struct {
	name  string
	value any
}

// NewAttribute builds an attribute. value must be an int, float64, or
// string; anything else is a programming error in the caller.
func NewAttribute(name string, value any) Attribute {
	switch value.(type) {
	case int, float64, string:
	default:
		panic(fmt.Sprintf("piece: attribute %q has unsupported value type %T", name, value))
	}
	return Attribute{name: name, value: value}
}

// Name returns the attribute's name.
func (a Attribute) Name() string { return a.name }

// Value returns the attribute's raw value.
func (a Attribute) Value() any { return a.value }

// Equal compares name and value.
func (a Attribute) Equal(other Attribute) bool {
	return a.name == other.name && a.value == other.value
}

func (a Attribute) String() string {
	return fmt.Sprintf("{%s, %v}", a.name, a.value)
}
