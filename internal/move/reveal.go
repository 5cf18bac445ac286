package move

import (
	"math/rand"

	"github.com/beliefsg/beliefsg/internal/board"
	"github.com/beliefsg/beliefsg/internal/state"
)

// Reveal tells Observers the true value of the piece (or every piece in a
// whole cell, when From names no stack index) at From. Because the mover
// does not know the true value either (that is the point — it is encoded
// only in the world state), a piece that becomes fully seen by Observers
// branches one-per-candidate-value, weighted by the piece's current
// marginal; a piece that stays unseen leaves a single branch unchanged.
// For a whole cell, Apply returns the product of every piece's branches,
// which grows multiplicatively with the number of pieces that become
// seen; ApplyInPlace samples one piece at a time and never builds that
// product.
type Reveal struct {
	From      board.Position
	Observers []board.PlayerID
}

func (m Reveal) Apply(s *state.State) []ProbTransition {
	return revealBranches(s, m.From, m.Observers, false)
}

func (m Reveal) ApplyInPlace(s *state.State, rng *rand.Rand) {
	for _, pos := range targetPositions(s, m.From) {
		*s = *sampleTransitions(revealBranches(s, pos, m.Observers, false), rng)
	}
}

func (m Reveal) Equal(other Move) bool {
	o, ok := other.(Reveal)
	if !ok || o.From != m.From || len(o.Observers) != len(m.Observers) {
		return false
	}
	for i := range m.Observers {
		if o.Observers[i] != m.Observers[i] {
			return false
		}
	}
	return true
}

// SetObservers replaces (rather than unions into) the piece's observer
// set: whoever could see it before forgets, and exactly Observers can see
// it going forward. It branches exactly like Reveal over the piece's
// current candidates.
type SetObservers struct {
	From      board.Position
	Observers []board.PlayerID
}

func (m SetObservers) Apply(s *state.State) []ProbTransition {
	return revealBranches(s, m.From, m.Observers, true)
}

func (m SetObservers) ApplyInPlace(s *state.State, rng *rand.Rand) {
	for _, pos := range targetPositions(s, m.From) {
		*s = *sampleTransitions(revealBranches(s, pos, m.Observers, true), rng)
	}
}

func (m SetObservers) Equal(other Move) bool {
	o, ok := other.(SetObservers)
	if !ok || o.From != m.From || len(o.Observers) != len(m.Observers) {
		return false
	}
	for i := range m.Observers {
		if o.Observers[i] != m.Observers[i] {
			return false
		}
	}
	return true
}

// revealBranches adds observers to every piece in From's stack (a single
// piece if From names a stack index), one position at a time. Whether
// adding the observer makes a given piece fully seen is checked per
// position per branch: if it does not, the piece's domain is unaffected
// and there is exactly one successor (probability 1) for that position.
// If it does, the branch splits one-per-candidate-value, weighted by the
// piece's current marginal for that value — computed fresh from the
// branch's own state, so a later piece in the same cell sees the domain
// already narrowed by an earlier piece's assignment within that branch.
// replace clears each piece's existing observers first (SetObservers'
// semantics); otherwise the observers merge into the existing set
// (Reveal's).
func revealBranches(s *state.State, from board.Position, observers []board.PlayerID, replace bool) []ProbTransition {
	positions := targetPositions(s, from)

	branches := []ProbTransition{{State: s, Probability: 1}}
	for _, pos := range positions {
		var next []ProbTransition
		for _, branch := range branches {
			ns := branch.State.Clone()
			if replace {
				ns.Hide(pos)
			}
			seen := ns.AddObservers(pos, observers)
			if !seen {
				next = append(next, ProbTransition{State: ns, Probability: branch.Probability})
				continue
			}
			p := ns.GetPieceAt(pos)
			for j, v := range p.Values {
				vs := ns.Clone()
				vs.AssignPieceValue(pos, v)
				next = append(next, ProbTransition{
					State:       vs,
					Probability: branch.Probability * p.Probs[j],
				})
			}
		}
		branches = next
	}
	return branches
}

func targetPositions(s *state.State, from board.Position) []board.Position {
	if from.HasStackID() {
		return []board.Position{from}
	}
	n := s.StackSize(from)
	out := make([]board.Position, n)
	for i := 0; i < n; i++ {
		out[i] = board.NewStackPosition(from.CellID(), i)
	}
	return out
}
