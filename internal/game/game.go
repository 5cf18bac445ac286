// Package game defines the interface every rulebook implements, and the
// shared joint-action application every rulebook gets for free: applying
// several players' simultaneous actions is the same left-to-right,
// branch-convolving algebra as a single action, just over the
// concatenation of everyone's moves.
package game

import (
	"math/rand"

	"github.com/beliefsg/beliefsg/internal/board"
	"github.com/beliefsg/beliefsg/internal/move"
	"github.com/beliefsg/beliefsg/internal/state"
)

// Game is a rulebook: the fixed topology and legal-action structure of one
// game. Implementations hold no mutable state of their own — all of that
// lives in the State the driver carries.
type Game interface {
	Name() string
	NumPlayers() int
	PlayGraph() board.PlayGraph
	InitialState(pov board.PointOfView) *state.State
	LegalActions(s *state.State, player board.PlayerID) []move.ProbAction
	IsTerminal(s *state.State) bool
	Returns(s *state.State) []float64
}

// ApplyJointAction returns the probability-weighted successors of
// applying every player's action, concatenated into one move sequence:
// simultaneous actions convolve exactly like a single action's moves do.
func ApplyJointAction(actions []move.Action, s *state.State) []move.ProbTransition {
	return concat(actions).Apply(s)
}

// ApplyJointActionInPlace mutates s by applying every player's action in
// turn, sampling among branches as it goes.
func ApplyJointActionInPlace(actions []move.Action, s *state.State, rng *rand.Rand) {
	concat(actions).ApplyInPlace(s, rng)
}

func concat(actions []move.Action) move.Action {
	var moves []move.Move
	for _, a := range actions {
		moves = append(moves, a.Moves()...)
	}
	return move.NewAction(moves...)
}
