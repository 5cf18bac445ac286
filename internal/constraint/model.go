// Package constraint implements the collection-constraint engine: an
// arc-consistency propagator over exact multiset-count constraints. Given
// n pieces whose values are drawn from n_values possibilities, and a
// required count per value, it maintains each piece's domain (the set of
// values it could still take) consistent with every other piece's domain
// and with the global counts, faulting when propagation shows the counts
// can no longer be met. Propagation alone does not catch every
// unsatisfiable combination of domains; Satisfiable searches for a full
// assignment.
package constraint

import "github.com/beliefsg/beliefsg/internal/bgerr"

// Model holds a collection of n_pieces domains over n_values possible
// values, constrained so that exactly counts[v] pieces end up taking value
// v. It propagates to arc consistency after every restriction.
type Model struct {
	domains  [][]bool
	counts   []int
	nPieces  int
	nValues  int
	hasCount bool
}

// NewModel builds an unconstrained model: every piece's domain starts as
// every value.
func NewModel(nPieces, nValues int) *Model {
	m := &Model{
		domains: make([][]bool, nPieces),
		nPieces: nPieces,
		nValues: nValues,
	}
	for i := range m.domains {
		dom := make([]bool, nValues)
		for v := range dom {
			dom[v] = true
		}
		m.domains[i] = dom
	}
	return m
}

// Clone deep-copies the model, independent of the original.
func (m *Model) Clone() *Model {
	cp := &Model{
		domains:  make([][]bool, len(m.domains)),
		counts:   append([]int(nil), m.counts...),
		nPieces:  m.nPieces,
		nValues:  m.nValues,
		hasCount: m.hasCount,
	}
	for i, d := range m.domains {
		cp.domains[i] = append([]bool(nil), d...)
	}
	return cp
}

// Value returns the single value piece id is assigned to. It faults if
// the piece's domain is not a singleton.
func (m *Model) Value(id int) int {
	values := m.Values(id)
	if len(values) != 1 {
		bgerr.Fault("constraint: piece %d domain is not singleton (%d candidates)", id, len(values))
	}
	return values[0]
}

// Values returns the list of values still possible for piece id.
func (m *Model) Values(id int) []int {
	var out []int
	for v, ok := range m.domains[id] {
		if ok {
			out = append(out, v)
		}
	}
	return out
}

// Domain returns the raw possible/impossible bitmap for piece id.
func (m *Model) Domain(id int) []bool {
	return append([]bool(nil), m.domains[id]...)
}

// Domains returns every piece's domain.
func (m *Model) Domains() [][]bool {
	out := make([][]bool, m.nPieces)
	for i, d := range m.domains {
		out[i] = append([]bool(nil), d...)
	}
	return out
}

// RemoveValue restricts piece id's domain to exclude value, and propagates
// the resulting restriction to arc consistency. It faults if propagation
// finds the counts can no longer be met.
func (m *Model) RemoveValue(id, value int) {
	if !m.domains[id][value] {
		return
	}
	m.domains[id][value] = false
	m.propagate()
}

// AssignValue restricts piece id's domain to exactly value, and
// propagates the resulting restriction to arc consistency.
func (m *Model) AssignValue(id, value int) {
	dom := m.domains[id]
	changed := false
	for v := range dom {
		if v != value && dom[v] {
			dom[v] = false
			changed = true
		}
	}
	if !dom[value] {
		bgerr.Fault("constraint: assigning piece %d to value %d is infeasible", id, value)
	}
	if changed {
		m.propagate()
	}
}

// RemoveValues restricts piece id's domain to exclude every value in
// values, propagating once after all of them are applied.
func (m *Model) RemoveValues(id int, values []int) {
	changed := false
	for _, v := range values {
		if m.domains[id][v] {
			m.domains[id][v] = false
			changed = true
		}
	}
	if changed {
		m.propagate()
	}
}

// Widen replaces piece id's domain outright without propagating. Callers
// must follow up with Propagate once every piece that needs widening has
// been updated, since propagation only ever narrows and a half-widened
// model would otherwise look falsely inconsistent.
func (m *Model) Widen(id int, allowed []bool) {
	m.domains[id] = append([]bool(nil), allowed...)
}

// Propagate re-runs the count-consistency fixpoint. It faults if the
// current domains cannot satisfy the installed counts.
func (m *Model) Propagate() {
	m.propagate()
}

// AddCounts installs the exact-count constraint: exactly counts[v] pieces
// must take value v, for every v. It propagates immediately.
func (m *Model) AddCounts(counts []int) {
	m.counts = append([]int(nil), counts...)
	m.hasCount = true
	m.propagate()
}

// TryRemoveValue restricts piece id's domain to exclude value and
// propagates, reporting false instead of faulting if the restriction
// makes the model unsatisfiable. The model is left in whatever partially
// propagated state the fixpoint reached; callers that need to keep
// exploring after a false result should operate on a Clone.
func (m *Model) TryRemoveValue(id, value int) bool {
	if !m.domains[id][value] {
		return true
	}
	m.domains[id][value] = false
	return m.propagateQuiet()
}

// TryAssignValue restricts piece id's domain to exactly value and
// propagates, reporting false instead of faulting if the assignment is
// infeasible or makes the model unsatisfiable.
func (m *Model) TryAssignValue(id, value int) bool {
	dom := m.domains[id]
	if !dom[value] {
		return false
	}
	changed := false
	for v := range dom {
		if v != value && dom[v] {
			dom[v] = false
			changed = true
		}
	}
	if !changed {
		return true
	}
	return m.propagateQuiet()
}

// propagate runs the count-consistency fixpoint and faults if the counts
// become unsatisfiable.
func (m *Model) propagate() {
	if !m.propagateQuiet() {
		bgerr.Fault("constraint: domains are unsatisfiable against the installed counts")
	}
}

// propagateQuiet is the non-faulting body of propagate: for every value,
// if the number of pieces that could still take it equals its required
// count, they are all forced to it; if the number already forced to it
// equals the required count, it is removed from every other domain. It
// returns false instead of faulting the moment no consistent assignment
// can exist.
func (m *Model) propagateQuiet() bool {
	if !m.hasCount {
		for _, dom := range m.domains {
			if !anyTrue(dom) {
				return false
			}
		}
		return true
	}

	for {
		changed := false
		for v := 0; v < m.nValues; v++ {
			var possible, assigned []int
			for id, dom := range m.domains {
				if dom[v] {
					possible = append(possible, id)
					if isSingleton(dom) {
						assigned = append(assigned, id)
					}
				}
			}
			need := m.counts[v]
			if len(assigned) > need || len(possible) < need {
				return false
			}
			if len(assigned) == need {
				for id, dom := range m.domains {
					if dom[v] && !isSingleton(dom) {
						dom[v] = false
						changed = true
					}
				}
			}
			if len(possible) == need && need > 0 && len(possible) != len(assigned) {
				for _, id := range possible {
					if !isSingleton(m.domains[id]) {
						for v2 := range m.domains[id] {
							m.domains[id][v2] = v2 == v
						}
						changed = true
					}
				}
			}
		}
		for _, dom := range m.domains {
			if !anyTrue(dom) {
				return false
			}
		}
		if !changed {
			return true
		}
	}
}

// Status reports whether the model is failed (some domain is empty or the
// counts are unsatisfiable), solved (every domain is a singleton), or
// still branching (consistent but not yet fully assigned). It does not
// mutate the model's installed counts or domains beyond the propagation
// fixpoint itself.
type Status int

const (
	StatusFailed Status = iota
	StatusBranching
	StatusSolved
)

// Status runs the propagation fixpoint and classifies the result.
func (m *Model) Status() Status {
	if !m.propagateQuiet() {
		return StatusFailed
	}
	for _, dom := range m.domains {
		if !isSingleton(dom) {
			return StatusBranching
		}
	}
	return StatusSolved
}

// smallestOpenVariable returns the id of the non-singleton domain with the
// fewest remaining candidates, or -1 if every domain is already a
// singleton.
func (m *Model) smallestOpenVariable() int {
	best := -1
	bestSize := m.nValues + 1
	for id, dom := range m.domains {
		size := 0
		for _, ok := range dom {
			if ok {
				size++
			}
		}
		if size > 1 && size < bestSize {
			best = id
			bestSize = size
		}
	}
	return best
}

// Satisfiable reports whether at least one full assignment is consistent
// with the model's current domains and counts, via depth-first search
// branching on the smallest remaining domain. It never mutates the
// receiver.
func (m *Model) Satisfiable() bool {
	return m.Clone().dfs()
}

// dfs performs the search itself, mutating the receiver (a disposable
// clone) in place as it branches.
func (m *Model) dfs() bool {
	switch m.Status() {
	case StatusFailed:
		return false
	case StatusSolved:
		return true
	}

	id := m.smallestOpenVariable()
	for _, v := range m.Values(id) {
		branch := m.Clone()
		if branch.TryAssignValue(id, v) && branch.dfs() {
			return true
		}
	}
	return false
}

func anyTrue(dom []bool) bool {
	for _, ok := range dom {
		if ok {
			return true
		}
	}
	return false
}

func isSingleton(dom []bool) bool {
	count := 0
	for _, ok := range dom {
		if ok {
			count++
			if count > 1 {
				return false
			}
		}
	}
	return count == 1
}
