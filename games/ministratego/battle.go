package ministratego

import (
	"math/rand"

	"github.com/beliefsg/beliefsg/internal/board"
	"github.com/beliefsg/beliefsg/internal/move"
	"github.com/beliefsg/beliefsg/internal/piece"
	"github.com/beliefsg/beliefsg/internal/state"
)

// Battle resolves combat between the two pieces occupying From: every
// pairing of the attacker's and defender's remaining candidate values
// branches separately, weighted by the product of their current
// marginals, and whichever piece the rank table says loses is removed
// (both, when their ranks are equal).
type Battle struct {
	From board.Position
}

// survives reports whether attacker would still be standing after
// fighting defender. Flags never survive a fight they're drawn into;
// bombs only fall to miners; miners only fall to soldiers; soldiers only
// fall to bombs. Equal ranks eliminate each other.
func survives(attacker, defender piece.Value) bool {
	if attacker.Equal(defender) {
		return false
	}
	switch {
	case attacker.Equal(flagValue):
		return false
	case attacker.Equal(bombValue):
		return !defender.Equal(minerValue)
	case attacker.Equal(minerValue):
		return !defender.Equal(soldierValue)
	case attacker.Equal(soldierValue):
		return !defender.Equal(bombValue)
	}
	return false
}

func resolveBattle(s *state.State, from board.Position, v1, v2 piece.Value) {
	pos0 := board.NewStackPosition(from.CellID(), 0)
	pos1 := board.NewStackPosition(from.CellID(), 1)
	s.AssignPieceValue(pos0, v1)
	s.AssignPieceValue(pos1, v2)

	survives1 := survives(v1, v2)
	survives2 := survives(v2, v1)
	switch {
	case !survives1 && !survives2:
		s.RemovePiece(pos0)
		s.RemovePiece(pos0)
	case !survives1:
		s.RemovePiece(pos0)
	case !survives2:
		s.RemovePiece(pos1)
	}
}

func (b Battle) Apply(s *state.State) []move.ProbTransition {
	pieces := s.GetPiecesAt(b.From)
	if len(pieces) < 2 {
		return []move.ProbTransition{{State: s, Probability: 1}}
	}

	var transitions []move.ProbTransition
	for _, v1 := range pieces[0].Values {
		for _, v2 := range pieces[1].Values {
			ns := s.Clone()
			prob := pieces[0].Probability(v1) * pieces[1].Probability(v2)
			resolveBattle(ns, b.From, v1, v2)
			transitions = append(transitions, move.ProbTransition{State: ns, Probability: prob})
		}
	}
	return transitions
}

func (b Battle) ApplyInPlace(s *state.State, rng *rand.Rand) {
	transitions := b.Apply(s)
	chosen := transitions[len(transitions)-1].State
	target := rng.Float64()
	for _, t := range transitions {
		target -= t.Probability
		if target <= 0 {
			chosen = t.State
			break
		}
	}
	*s = *chosen
}

func (b Battle) Equal(other move.Move) bool {
	o, ok := other.(Battle)
	return ok && o.From == b.From
}
