package state

import (
	"math/rand"

	"github.com/beliefsg/beliefsg/internal/metrics"
)

// Determinize samples a concrete value for every still-uncertain piece
// that occupies a cell, uniformly among each piece's remaining candidates,
// one piece at a time in cell order; pieces that have been removed from
// every cell are not sampled. Each collection's belief-propagation marginals are
// refreshed immediately after every assignment, so a later piece sharing
// a collection sees the narrowed domain before it is sampled. It returns
// the importance weight correcting for the uniform proposal: the product
// of the true marginal of every value actually sampled.
func (s *State) Determinize(rng *rand.Rand) float64 {
	metrics.Determinization(s.recorder)
	weight := 1.0
	for _, refs := range s.cells {
		for _, ref := range refs {
			col := s.collections[ref.collectionID]
			domain := col.model.Values(ref.pieceID)
			if len(domain) <= 1 {
				continue
			}
			chosen := domain[rng.Intn(len(domain))]
			weight *= col.engine.Probability(ref.pieceID, chosen)
			col.model.AssignValue(ref.pieceID, chosen)
			col.refreshBeliefs()
		}
	}
	return weight
}

// DeterminizeWithMarginals repeatedly picks, across every collection in
// the whole state, whichever still-undetermined piece currently has the
// single largest belief-propagation marginal among its own candidates,
// samples that piece's value from its marginal distribution, and
// refreshes beliefs before picking again. It returns the product of every
// sampled marginal.
func (s *State) DeterminizeWithMarginals(rng *rand.Rand) float64 {
	metrics.Determinization(s.recorder)
	weight := 1.0
	for {
		collectionID, pieceID, found := s.mostConfidentUndetermined()
		if !found {
			return weight
		}
		col := s.collections[collectionID]
		domain := col.model.Values(pieceID)
		weights := make([]float64, len(domain))
		total := 0.0
		for i, v := range domain {
			weights[i] = col.engine.Probability(pieceID, v)
			total += weights[i]
		}
		chosen := domain[len(domain)-1]
		if total > 0 {
			target := rng.Float64() * total
			for i, w := range weights {
				target -= w
				if target <= 0 {
					chosen = domain[i]
					break
				}
			}
		} else {
			chosen = domain[rng.Intn(len(domain))]
		}
		weight *= col.engine.Probability(pieceID, chosen)
		col.model.AssignValue(pieceID, chosen)
		col.refreshBeliefs()
	}
}

// mostConfidentUndetermined scans every piece in every collection and
// returns the one whose best remaining candidate value currently holds
// the largest belief-propagation marginal anywhere in the state.
func (s *State) mostConfidentUndetermined() (collectionID, pieceID int, found bool) {
	best := -1.0
	for ci, col := range s.collections {
		for id := range col.observers {
			domain := col.model.Values(id)
			if len(domain) <= 1 {
				continue
			}
			localBest := 0.0
			for _, v := range domain {
				if p := col.engine.Probability(id, v); p > localBest {
					localBest = p
				}
			}
			if localBest > best {
				best = localBest
				collectionID, pieceID, found = ci, id, true
			}
		}
	}
	return
}
