package move

import (
	"math/rand"

	"github.com/beliefsg/beliefsg/internal/state"
)

// Action is an ordered sequence of moves applied left to right. Apply
// convolves each move's branches with the ones before it: the cartesian
// product of every move's possible outcomes, each weighted by the product
// of the probabilities along that path.
type Action struct {
	moves []Move
}

// NewAction builds an action from its moves, in application order.
func NewAction(moves ...Move) Action {
	return Action{moves: append([]Move(nil), moves...)}
}

// Moves returns the action's moves, in application order.
func (a Action) Moves() []Move { return a.moves }

// Equal compares two actions move-by-move.
func (a Action) Equal(other Action) bool {
	if len(a.moves) != len(other.moves) {
		return false
	}
	for i, m := range a.moves {
		if !m.Equal(other.moves[i]) {
			return false
		}
	}
	return true
}

// Apply returns the probability-weighted set of states reachable by
// applying every move in sequence, without mutating s.
func (a Action) Apply(s *state.State) []ProbTransition {
	current := []ProbTransition{{State: s, Probability: 1}}
	for _, m := range a.moves {
		var next []ProbTransition
		for _, branch := range current {
			for _, outcome := range m.Apply(branch.State) {
				next = append(next, ProbTransition{
					State:       outcome.State,
					Probability: branch.Probability * outcome.Probability,
				})
			}
		}
		current = next
	}
	return current
}

// ApplyInPlace mutates s by applying every move in sequence, sampling
// among branches as it goes.
func (a Action) ApplyInPlace(s *state.State, rng *rand.Rand) {
	for _, m := range a.moves {
		m.ApplyInPlace(s, rng)
	}
}

// ProbAction pairs a legal action with the probability of an agent (or
// chance) choosing it, as reported by a game's LegalActions.
type ProbAction struct {
	Action      Action
	Probability float64
}
