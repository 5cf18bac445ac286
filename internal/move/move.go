// Package move implements the move algebra: the small set of primitive
// state edits every game rulebook composes into its legal actions, plus
// the Action/ProbAction convolution that turns a sequence of (possibly
// branching) moves into the probability-weighted set of successor states.
package move

import (
	"math/rand"

	"github.com/beliefsg/beliefsg/internal/state"
)

// ProbTransition pairs a resulting state with the probability of having
// reached it.
type ProbTransition struct {
	State       *state.State
	Probability float64
}

// Move is one primitive edit to a belief state. Apply is the
// non-destructive form, used when a driver needs the full distribution
// over outcomes (e.g. to roll a public/private state forward in lockstep
// with the world); ApplyInPlace mutates s directly, sampling among
// branches when the move has more than one possible outcome.
type Move interface {
	Apply(s *state.State) []ProbTransition
	ApplyInPlace(s *state.State, rng *rand.Rand)
	Equal(other Move) bool
}

// sampleTransitions picks one transition from a weighted list according
// to its probabilities.
func sampleTransitions(transitions []ProbTransition, rng *rand.Rand) *state.State {
	if len(transitions) == 1 {
		return transitions[0].State
	}
	total := 0.0
	for _, t := range transitions {
		total += t.Probability
	}
	if total <= 0 {
		return transitions[rng.Intn(len(transitions))].State
	}
	target := rng.Float64() * total
	for _, t := range transitions {
		target -= t.Probability
		if target <= 0 {
			return t.State
		}
	}
	return transitions[len(transitions)-1].State
}
