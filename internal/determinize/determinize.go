// Package determinize provides the two sampling strategies for collapsing
// a belief state into a single fully-determined world: Uniform, which
// proposes each undetermined piece's value uniformly and reports the
// resulting importance weight, and MarginalGreedy, which samples directly
// from the piece's belief-propagation marginal. Both live as methods on
// *state.State, since the sampling needs direct access to each
// collection's constraint model and belief-propagation engine; this
// package is the stable, named entry point a driver or search agent
// reaches for instead of calling state internals directly.
package determinize

import (
	"math/rand"

	"github.com/beliefsg/beliefsg/internal/state"
)

// Uniform determinizes s in place, sampling each undetermined piece's
// value uniformly among its candidates, and returns the importance weight
// of the draw actually taken.
func Uniform(s *state.State, rng *rand.Rand) float64 {
	return s.Determinize(rng)
}

// MarginalGreedy determinizes s in place, sampling each undetermined
// piece's value from its current belief-propagation marginal, and returns
// the product of the sampled marginals.
func MarginalGreedy(s *state.State, rng *rand.Rand) float64 {
	return s.DeterminizeWithMarginals(rng)
}
