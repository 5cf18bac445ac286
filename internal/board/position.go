package board

import (
	"fmt"

	"github.com/beliefsg/beliefsg/internal/bgerr"
)

// Position names a cell on the play graph, and optionally a stack index
// within that cell when the cell holds more than one piece (a deck, a
// discard pile, a battle square with an attacker and a defender).
type Position struct {
	cellID     int
	stackID    int
	hasStackID bool
}

// NewPosition builds a bare cell reference with no stack index.
func NewPosition(cellID int) Position {
	return Position{cellID: cellID}
}

// NewStackPosition builds a reference to a specific piece within a cell's
// stack.
func NewStackPosition(cellID, stackID int) Position {
	return Position{cellID: cellID, stackID: stackID, hasStackID: true}
}

// CellID returns the cell this position refers to.
func (p Position) CellID() int { return p.cellID }

// HasStackID reports whether this position names a specific stack slot.
func (p Position) HasStackID() bool { return p.hasStackID }

// StackID returns the stack index. It faults if the position has none.
func (p Position) StackID() int {
	if !p.hasStackID {
		bgerr.Fault("position %v has no stack id", p)
	}
	return p.stackID
}

// WithStackID returns a copy of p pinned to the given stack index.
func (p Position) WithStackID(stackID int) Position {
	return NewStackPosition(p.cellID, stackID)
}

func (p Position) String() string {
	if p.hasStackID {
		return fmt.Sprintf("(%d, %d)", p.cellID, p.stackID)
	}
	return fmt.Sprintf("(%d)", p.cellID)
}
