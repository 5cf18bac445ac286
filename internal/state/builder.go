package state

import (
	"github.com/beliefsg/beliefsg/internal/board"
	"github.com/beliefsg/beliefsg/internal/piece"
)

type fixedPiece struct {
	pieceType *piece.Type
	value     piece.Value
	observers []board.PlayerID
	position  board.Position
}

// Builder assembles an initial State from a fixed, fully-known
// composition: a game rulebook declares every piece's true value, who (if
// anyone) starts out able to see it, and where it sits, and Build derives
// the right per-piece domain for the builder's point of view.
type Builder struct {
	pov        board.PointOfView
	numPlayers int

	initialPlayers []board.PlayerID
	pieces         []fixedPiece
	variables      []Variable
}

// NewBuilder starts a builder for the given point of view. numPlayers is
// the total seat count, needed to decide when a Public view has been told
// enough observers to count a piece as fully visible.
func NewBuilder(pov board.PointOfView, numPlayers int) *Builder {
	return &Builder{pov: pov, numPlayers: numPlayers}
}

// SetInitialPlayers sets who acts first (often just the chance player, to
// deal).
func (b *Builder) SetInitialPlayers(players []board.PlayerID) *Builder {
	b.initialPlayers = append([]board.PlayerID(nil), players...)
	return b
}

// AddPiece declares one piece of the true composition: its type, its true
// value, who can already see it, and which cell it starts in.
func (b *Builder) AddPiece(pt *piece.Type, value piece.Value, observers []board.PlayerID, position board.Position) *Builder {
	b.pieces = append(b.pieces, fixedPiece{
		pieceType: pt,
		value:     value,
		observers: append([]board.PlayerID(nil), observers...),
		position:  position,
	})
	return b
}

// AddVariable declares an initial game variable.
func (b *Builder) AddVariable(v Variable) *Builder {
	b.variables = append(b.variables, v)
	return b
}

// Build groups the declared pieces by type into collections, computes
// each collection's exact value counts from the true composition, narrows
// every piece this point of view can already see down to a singleton
// domain, and places every piece on its starting cell.
func (b *Builder) Build() *State {
	s := &State{
		pov:            b.pov,
		numPlayers:     b.numPlayers,
		currentPlayers: append([]board.PlayerID(nil), b.initialPlayers...),
		variables:      append([]Variable(nil), b.variables...),
	}

	maxCell := -1
	for _, fp := range b.pieces {
		if fp.position.CellID() > maxCell {
			maxCell = fp.position.CellID()
		}
	}
	s.cells = make([][]pieceRef, maxCell+1)

	// Group pieces by type, preserving declaration order within a group.
	// /!\ this grouping ignores piece position — two pieces of the same
	// type declared far apart in the board still land in one collection.
	order := make([]*piece.Type, 0)
	groups := make(map[*piece.Type][]fixedPiece)
	for _, fp := range b.pieces {
		if _, ok := groups[fp.pieceType]; !ok {
			order = append(order, fp.pieceType)
		}
		groups[fp.pieceType] = append(groups[fp.pieceType], fp)
	}

	for _, pt := range order {
		group := groups[pt]
		counts := make([]int, pt.Size())
		for _, fp := range group {
			counts[pt.IndexOf(fp.value)]++
		}
		col := newCollection(pt, len(group), counts)
		collectionID := len(s.collections)

		for i, fp := range group {
			col.observers[i] = fp.observers
			if s.isSeen(fp.observers) {
				col.model.AssignValue(i, pt.IndexOf(fp.value))
			}
		}
		col.refreshBeliefs()
		s.collections = append(s.collections, col)

		for i, fp := range group {
			s.cells[fp.position.CellID()] = append(s.cells[fp.position.CellID()], pieceRef{
				collectionID: collectionID,
				pieceID:      i,
			})
		}
	}

	return s
}
