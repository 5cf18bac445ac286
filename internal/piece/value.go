package piece

import (
	"sort"
	"strings"

	"github.com/beliefsg/beliefsg/internal/bgerr"
)

// Value is a piece value: an ordered, deduplicated set of attributes. Two
// values compare equal iff their attribute sets compare equal after
// normalization, so callers never need to pre-sort or pre-dedupe.
type Value struct {
	attributes []Attribute
}

// NewValue builds a Value from a set of attributes, sorting them by name
// and, when a name repeats, keeping the last-declared entry for that name.
func NewValue(attributes []Attribute) Value {
	sorted := append([]Attribute(nil), attributes...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].name < sorted[j].name })

	deduped := make([]Attribute, 0, len(sorted))
	for i := 0; i < len(sorted); {
		j := i
		for j < len(sorted) && sorted[j].name == sorted[i].name {
			j++
		}
		// Keep the last-declared attribute among a run of same-named
		// attributes; the stable sort preserved declaration order within
		// the run, so sorted[j-1] is it.
		deduped = append(deduped, sorted[j-1])
		i = j
	}
	return Value{attributes: deduped}
}

// Attributes returns the value's normalized attribute list.
func (v Value) Attributes() []Attribute { return v.attributes }

// Attribute returns the named attribute. It faults if the value has none
// by that name.
func (v Value) Attribute(name string) Attribute {
	for _, a := range v.attributes {
		if a.name == name {
			return a
		}
	}
	bgerr.Fault("piece value %s has no attribute %q", v, name)
	return Attribute{}
}

// Equal compares two values attribute-by-attribute.
func (v Value) Equal(other Value) bool {
	if len(v.attributes) != len(other.attributes) {
		return false
	}
	for i, a := range v.attributes {
		if !a.Equal(other.attributes[i]) {
			return false
		}
	}
	return true
}

func (v Value) String() string {
	parts := make([]string, len(v.attributes))
	for i, a := range v.attributes {
		parts[i] = a.String()
	}
	return "{" + strings.Join(parts, " ") + "}"
}
