package state

import (
	"github.com/beliefsg/beliefsg/internal/board"
	"github.com/beliefsg/beliefsg/internal/piece"
)

// Piece is a read-only snapshot of one piece as seen from a particular
// point of view: which values it could still take, the observers who
// have been told its true value, and the current belief-propagation
// marginal for each remaining candidate value.
type Piece struct {
	Type      *piece.Type
	Observers []board.PlayerID
	Values    []piece.Value
	Probs     []float64
}

// CanBe reports whether value is still among the piece's candidates.
func (p Piece) CanBe(value piece.Value) bool {
	for _, v := range p.Values {
		if v.Equal(value) {
			return true
		}
	}
	return false
}

// CanHave reports whether some candidate value carries this attribute.
func (p Piece) CanHave(attr piece.Attribute) bool {
	for _, v := range p.Values {
		if v.Attribute(attr.Name()).Equal(attr) {
			return true
		}
	}
	return false
}

// CanNotHave reports whether some candidate value lacks this attribute.
func (p Piece) CanNotHave(attr piece.Attribute) bool {
	for _, v := range p.Values {
		if !v.Attribute(attr.Name()).Equal(attr) {
			return true
		}
	}
	return false
}

// Probability returns the belief-propagation marginal for value, or 0 if
// value is not among the piece's candidates.
func (p Piece) Probability(value piece.Value) float64 {
	for i, v := range p.Values {
		if v.Equal(value) {
			return p.Probs[i]
		}
	}
	return 0
}
