// Package state implements the belief state: a point of view (world,
// public, or a specific player's private view) over a set of piece
// collections placed on cells of a play graph, plus free-form game
// variables. Each collection tracks, per piece, the set of values still
// consistent with everything this point of view has observed, kept arc
// consistent by the constraint engine and given approximate marginals by
// loopy belief propagation.
package state

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/beliefsg/beliefsg/internal/bgerr"
	"github.com/beliefsg/beliefsg/internal/board"
	"github.com/beliefsg/beliefsg/internal/metrics"
	"github.com/beliefsg/beliefsg/internal/piece"
)

type pieceRef struct {
	collectionID int
	pieceID      int
}

// State is a belief state from one point of view.
type State struct {
	pov            board.PointOfView
	numPlayers     int
	currentPlayers []board.PlayerID
	cells          [][]pieceRef
	collections    []*collection
	variables      []Variable
	recorder       metrics.Recorder
}

// PointOfView returns which view this state represents.
func (s *State) PointOfView() board.PointOfView { return s.pov }

// SetRecorder attaches an optional metrics recorder to every collection's
// belief-propagation engine. A nil recorder (the default) disables
// metrics entirely.
func (s *State) SetRecorder(r metrics.Recorder) {
	s.recorder = r
	for _, col := range s.collections {
		col.engine.SetRecorder(r)
	}
}

// CurrentPlayers returns the players (or the chance player) who must act
// next. An empty slice means the state is terminal.
func (s *State) CurrentPlayers() []board.PlayerID {
	return append([]board.PlayerID(nil), s.currentPlayers...)
}

// SetCurrentPlayer sets a single current player.
func (s *State) SetCurrentPlayer(p board.PlayerID) {
	s.currentPlayers = []board.PlayerID{p}
}

// SetCurrentPlayers sets the full set of current players.
func (s *State) SetCurrentPlayers(players []board.PlayerID) {
	s.currentPlayers = append([]board.PlayerID(nil), players...)
}

// Clone deep-copies the state; the copy shares no mutable data with s.
func (s *State) Clone() *State {
	cp := &State{
		pov:            s.pov,
		numPlayers:     s.numPlayers,
		currentPlayers: append([]board.PlayerID(nil), s.currentPlayers...),
		variables:      append([]Variable(nil), s.variables...),
		recorder:       s.recorder,
	}
	cp.cells = make([][]pieceRef, len(s.cells))
	for i, refs := range s.cells {
		cp.cells[i] = append([]pieceRef(nil), refs...)
	}
	cp.collections = make([]*collection, len(s.collections))
	for i, c := range s.collections {
		cp.collections[i] = c.clone()
	}
	return cp
}

func (s *State) resolve(pos board.Position) pieceRef {
	refs := s.cells[pos.CellID()]
	idx := 0
	if pos.HasStackID() {
		idx = pos.StackID()
	} else if len(refs) != 1 {
		bgerr.Fault("state: position %s has no stack id but cell holds %d pieces", pos, len(refs))
	}
	if idx < 0 || idx >= len(refs) {
		bgerr.Fault("state: position %s stack index out of range (cell holds %d pieces)", pos, len(refs))
	}
	return refs[idx]
}

// GetPieceAt returns the single piece at pos. It faults if pos names a
// cell holding more than one piece without a stack index.
func (s *State) GetPieceAt(pos board.Position) Piece {
	ref := s.resolve(pos)
	return s.collections[ref.collectionID].pieceAt(ref.pieceID)
}

// StackSize returns how many pieces occupy pos's cell.
func (s *State) StackSize(pos board.Position) int {
	if pos.CellID() >= len(s.cells) {
		return 0
	}
	return len(s.cells[pos.CellID()])
}

// GetPiecesAt returns every piece in pos's cell, in stack order.
func (s *State) GetPiecesAt(pos board.Position) []Piece {
	refs := s.cells[pos.CellID()]
	out := make([]Piece, len(refs))
	for i, ref := range refs {
		out[i] = s.collections[ref.collectionID].pieceAt(ref.pieceID)
	}
	return out
}

// Variable returns the named variable. It faults if no such variable
// exists.
func (s *State) Variable(name string) Variable {
	for _, v := range s.variables {
		if v.Name() == name {
			return v
		}
	}
	bgerr.Fault("state: unknown variable %q", name)
	return Variable{}
}

// SetVariable replaces the named variable's value, or appends it if new.
func (s *State) SetVariable(v Variable) {
	for i, existing := range s.variables {
		if existing.Name() == v.Name() {
			s.variables[i] = v
			return
		}
	}
	s.variables = append(s.variables, v)
}

// popFromCell removes and returns a piece reference from pos's cell: the
// exact stack slot if pos names one, the sole occupant if the cell holds
// exactly one, or the top (last-pushed) occupant otherwise.
func (s *State) popFromCell(pos board.Position) pieceRef {
	cellID := pos.CellID()
	refs := s.cells[cellID]
	idx := len(refs) - 1
	if pos.HasStackID() {
		idx = pos.StackID()
	} else if len(refs) == 1 {
		idx = 0
	}
	if idx < 0 || idx >= len(refs) {
		bgerr.Fault("state: pop from empty or out-of-range cell %s", pos)
	}
	ref := refs[idx]
	s.cells[cellID] = append(refs[:idx], refs[idx+1:]...)
	return ref
}

func (s *State) pushToCell(pos board.Position, ref pieceRef) {
	for len(s.cells) <= pos.CellID() {
		s.cells = append(s.cells, nil)
	}
	s.cells[pos.CellID()] = append(s.cells[pos.CellID()], ref)
}

// MovePiece relocates a piece from one cell to another, appending it to
// the destination's stack.
func (s *State) MovePiece(from, to board.Position) {
	ref := s.popFromCell(from)
	s.pushToCell(to, ref)
}

// RemovePiece takes a piece out of play entirely. Its collection keeps
// tracking it (counts and domains are unaffected), it simply no longer
// occupies any cell.
func (s *State) RemovePiece(from board.Position) {
	s.popFromCell(from)
}

// RemovePieceValue removes value from the piece's candidate set.
func (s *State) RemovePieceValue(from board.Position, value piece.Value) {
	ref := s.resolve(from)
	col := s.collections[ref.collectionID]
	col.model.RemoveValue(ref.pieceID, col.pieceType.IndexOf(value))
	col.refreshBeliefs()
}

// RemovePieceValues removes every value in values from the piece's
// candidate set, refreshing beliefs once at the end.
func (s *State) RemovePieceValues(from board.Position, values []piece.Value) {
	ref := s.resolve(from)
	col := s.collections[ref.collectionID]
	indices := make([]int, len(values))
	for i, v := range values {
		indices[i] = col.pieceType.IndexOf(v)
	}
	col.model.RemoveValues(ref.pieceID, indices)
	col.refreshBeliefs()
}

// AssignPieceValue pins the piece at pos to exactly value.
func (s *State) AssignPieceValue(from board.Position, value piece.Value) {
	ref := s.resolve(from)
	col := s.collections[ref.collectionID]
	col.model.AssignValue(ref.pieceID, col.pieceType.IndexOf(value))
	col.refreshBeliefs()
}

// isSeen reports whether, from this state's point of view, a piece with
// the given observer set is fully visible.
func (s *State) isSeen(observers []board.PlayerID) bool {
	switch s.pov.Type() {
	case board.World:
		return true
	case board.Private:
		owner := s.pov.Player()
		for _, o := range observers {
			if o == owner {
				return true
			}
		}
		return false
	case board.Public:
		if s.numPlayers == 0 {
			return false
		}
		seen := make([]bool, s.numPlayers)
		for _, o := range observers {
			if int(o) >= 0 && int(o) < s.numPlayers {
				seen[o] = true
			}
		}
		for _, ok := range seen {
			if !ok {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// AddObservers merges observers into the piece's observer set and reports
// whether the piece is fully visible from this point of view after the
// merge (also true when it already was before), so the caller can narrow
// the domain accordingly.
func (s *State) AddObservers(from board.Position, observers []board.PlayerID) bool {
	ref := s.resolve(from)
	col := s.collections[ref.collectionID]
	col.observers[ref.pieceID] = unionPlayers(col.observers[ref.pieceID], observers)
	return s.isSeen(col.observers[ref.pieceID])
}

// RemoveObservers drops observers from the piece's observer set.
func (s *State) RemoveObservers(from board.Position, observers []board.PlayerID) {
	ref := s.resolve(from)
	col := s.collections[ref.collectionID]
	col.observers[ref.pieceID] = subtractPlayers(col.observers[ref.pieceID], observers)
}

// Hide clears the piece's observer set entirely.
func (s *State) Hide(from board.Position) {
	ref := s.resolve(from)
	s.collections[ref.collectionID].observers[ref.pieceID] = nil
}

// Shuffle re-randomizes which physical piece occupies each slot in pos's
// cell, from this point of view: pieces this view has not seen lose their
// individual identity and are widened back to the union of what was
// possible among them, while pieces already seen keep their known value.
func (s *State) Shuffle(pos board.Position) {
	refs := s.cells[pos.CellID()]
	byCollection := map[int][]int{}
	for _, ref := range refs {
		byCollection[ref.collectionID] = append(byCollection[ref.collectionID], ref.pieceID)
	}
	for collectionID, ids := range byCollection {
		col := s.collections[collectionID]
		var unseen []int
		union := make([]bool, col.pieceType.Size())
		for _, id := range ids {
			if s.isSeen(col.observers[id]) {
				continue
			}
			unseen = append(unseen, id)
			for _, v := range col.model.Values(id) {
				union[v] = true
			}
		}
		if len(unseen) == 0 {
			continue
		}
		for _, id := range unseen {
			pristine := col.originalModel.Domain(id)
			allowed := make([]bool, len(pristine))
			for v := range pristine {
				allowed[v] = pristine[v] && union[v]
			}
			col.model.Widen(id, allowed)
		}
		col.model.Propagate()
		col.refreshBeliefs()
	}
}

// AssignmentPossible reports whether, after additionally excluding
// notValues from every piece at pos, at least one joint assignment of
// that cell's collection(s) remains satisfiable. For a cell with a single
// piece this restricts and tests that piece's own collection; for a cell
// holding several pieces without a stack id (several pieces sharing a
// cell), it restricts every affected piece and requires every collection
// touched to remain jointly satisfiable. The check runs against disposable
// clones and never mutates s.
func (s *State) AssignmentPossible(from board.Position, notValues []piece.Value) bool {
	refs := s.cells[from.CellID()]
	if from.HasStackID() {
		ref := refs[from.StackID()]
		return s.collectionAssignmentPossible(ref.collectionID, map[int][]piece.Value{ref.pieceID: notValues})
	}

	byCollection := map[int]map[int][]piece.Value{}
	for _, ref := range refs {
		restrictions, ok := byCollection[ref.collectionID]
		if !ok {
			restrictions = map[int][]piece.Value{}
			byCollection[ref.collectionID] = restrictions
		}
		restrictions[ref.pieceID] = notValues
	}
	for collectionID, restrictions := range byCollection {
		if !s.collectionAssignmentPossible(collectionID, restrictions) {
			return false
		}
	}
	return true
}

// collectionAssignmentPossible clones collectionID's model, applies every
// per-piece restriction, and reports whether the restricted clone still
// admits at least one full, constraint-satisfying assignment.
func (s *State) collectionAssignmentPossible(collectionID int, restrictions map[int][]piece.Value) bool {
	col := s.collections[collectionID]
	clone := col.model.Clone()
	for id, notValues := range restrictions {
		for _, v := range notValues {
			if !clone.TryRemoveValue(id, col.pieceType.IndexOf(v)) {
				return false
			}
		}
	}
	return clone.Satisfiable()
}

// IsConsistentWith reports whether s knows no more than other does: every
// cell must align in size and collection-id assignment, every piece's
// domain in other must be a subset of its domain in s, the two piece's
// observer sets must match, and the two states' current players and
// variables must be identical.
func (s *State) IsConsistentWith(other *State) bool {
	if len(s.cells) != len(other.cells) {
		bgerr.Fault("state: IsConsistentWith on states with different cell layouts")
	}
	for cellID, refs := range s.cells {
		oRefs := other.cells[cellID]
		if len(refs) != len(oRefs) {
			return false
		}
		for i, ref := range refs {
			oRef := oRefs[i]
			if ref.collectionID != oRef.collectionID {
				return false
			}
			col := s.collections[ref.collectionID]
			oCol := other.collections[oRef.collectionID]
			selfDomain := col.model.Domain(ref.pieceID)
			otherDomain := oCol.model.Domain(oRef.pieceID)
			for v := range selfDomain {
				if !selfDomain[v] && otherDomain[v] {
					return false
				}
			}
			if !samePlayerSet(col.observers[ref.pieceID], oCol.observers[oRef.pieceID]) {
				return false
			}
		}
	}
	return reflect.DeepEqual(s.currentPlayers, other.currentPlayers) && reflect.DeepEqual(s.variables, other.variables)
}

// samePlayerSet reports whether a and b contain the same players,
// ignoring order.
func samePlayerSet(a, b []board.PlayerID) bool {
	if len(a) != len(b) {
		return false
	}
	for _, p := range a {
		found := false
		for _, q := range b {
			if p == q {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// IsDetermined reports whether every piece in every collection has a
// singleton domain.
func (s *State) IsDetermined() bool {
	for _, col := range s.collections {
		for id := range col.observers {
			if !col.isDetermined(id) {
				return false
			}
		}
	}
	return true
}

func (s *State) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "State(%s)", s.pov)
	for _, v := range s.variables {
		fmt.Fprintf(&b, " %s(%v)", v.Name(), v.Value())
	}
	return b.String()
}

func unionPlayers(a, b []board.PlayerID) []board.PlayerID {
	out := append([]board.PlayerID(nil), a...)
	for _, p := range b {
		found := false
		for _, q := range out {
			if p == q {
				found = true
				break
			}
		}
		if !found {
			out = append(out, p)
		}
	}
	return out
}

func subtractPlayers(a, b []board.PlayerID) []board.PlayerID {
	var out []board.PlayerID
	for _, p := range a {
		remove := false
		for _, q := range b {
			if p == q {
				remove = true
				break
			}
		}
		if !remove {
			out = append(out, p)
		}
	}
	return out
}
