package state

import (
	"github.com/beliefsg/beliefsg/internal/board"
	"github.com/beliefsg/beliefsg/internal/bp"
	"github.com/beliefsg/beliefsg/internal/constraint"
	"github.com/beliefsg/beliefsg/internal/piece"
)

// collection bundles one piece type's constraint model, belief-propagation
// engine, and per-piece observer lists. originalModel is never mutated
// after construction; it is the pristine domain Shuffle widens back to.
type collection struct {
	pieceType     *piece.Type
	originalModel *constraint.Model
	model         *constraint.Model
	engine        *bp.BP
	observers     [][]board.PlayerID
	counts        []int
}

func newCollection(pt *piece.Type, nPieces int, counts []int) *collection {
	m := constraint.NewModel(nPieces, pt.Size())
	m.AddCounts(counts)
	observers := make([][]board.PlayerID, nPieces)
	engine := bp.New(nPieces, pt.Size(), counts)
	engine.UpdateProbabilities(m.Domains())
	return &collection{
		pieceType:     pt,
		originalModel: m.Clone(),
		model:         m,
		engine:        engine,
		observers:     observers,
		counts:        append([]int(nil), counts...),
	}
}

func (c *collection) clone() *collection {
	observers := make([][]board.PlayerID, len(c.observers))
	for i, o := range c.observers {
		observers[i] = append([]board.PlayerID(nil), o...)
	}
	return &collection{
		pieceType:     c.pieceType,
		originalModel: c.originalModel.Clone(),
		model:         c.model.Clone(),
		engine:        c.engine.Clone(),
		observers:     observers,
		counts:        append([]int(nil), c.counts...),
	}
}

// refreshBeliefs re-runs belief propagation against the collection's
// current domains. Called after any operation that narrows a domain.
func (c *collection) refreshBeliefs() {
	c.engine.UpdateProbabilities(c.model.Domains())
}

func (c *collection) pieceAt(id int) Piece {
	domain := c.model.Values(id)
	values := make([]piece.Value, len(domain))
	probs := make([]float64, len(domain))
	for i, v := range domain {
		values[i] = c.pieceType.ValueAt(v)
		probs[i] = c.engine.Probability(id, v)
	}
	return Piece{
		Type:      c.pieceType,
		Observers: append([]board.PlayerID(nil), c.observers[id]...),
		Values:    values,
		Probs:     probs,
	}
}

func (c *collection) isDetermined(id int) bool {
	return len(c.model.Values(id)) == 1
}
