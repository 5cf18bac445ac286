// Package goofspiel implements Goofspiel, the bidding card game: each
// player privately holds a full suit and simultaneously wagers a card
// against an openly revealed prize card each round, with ties splitting
// the prize.
package goofspiel

import (
	"github.com/beliefsg/beliefsg/internal/board"
	"github.com/beliefsg/beliefsg/internal/move"
	"github.com/beliefsg/beliefsg/internal/piece"
	"github.com/beliefsg/beliefsg/internal/state"
)

const numRanks = 13

// Game is Goofspiel's rulebook, parameterized by player count.
//
// Cells 0..n-1 are each player's hand. Cells n..2n-1 are where players
// place the card they just wagered. Cell 2n is the undealt prize deck,
// cell 2n+1 is the currently revealed prize card.
type Game struct {
	numPlayers int
	cardTypes  []*piece.Type
	playGraph  board.PlayGraph
}

// New builds a Goofspiel game for numPlayers players. Panics (a
// programmer error, not a runtime fault) if numPlayers < 2.
func New(numPlayers int) *Game {
	if numPlayers < 2 {
		panic("goofspiel: must be played with at least 2 players")
	}
	g := &Game{numPlayers: numPlayers}
	g.playGraph = board.NewPlayGraph(make([][]int, 2*numPlayers+2))
	for i := 0; i < numPlayers+1; i++ {
		g.cardTypes = append(g.cardTypes, newSuit())
	}
	return g
}

func newSuit() *piece.Type {
	values := make([]piece.Value, numRanks)
	for r := 1; r <= numRanks; r++ {
		values[r-1] = piece.NewValue([]piece.Attribute{piece.NewAttribute("rank", r)})
	}
	return piece.NewType(values)
}

func rank(v piece.Value) int {
	return v.Attribute("rank").Value().(int)
}

func (g *Game) Name() string               { return "Goofspiel" }
func (g *Game) NumPlayers() int            { return g.numPlayers }
func (g *Game) PlayGraph() board.PlayGraph { return g.playGraph }

func (g *Game) allPlayers() []board.PlayerID {
	out := make([]board.PlayerID, g.numPlayers)
	for i := range out {
		out[i] = board.PlayerID(i)
	}
	return out
}

func (g *Game) InitialState(pov board.PointOfView) *state.State {
	b := state.NewBuilder(pov, g.numPlayers)
	b.SetInitialPlayers([]board.PlayerID{board.ChancePlayerID})

	for p := 0; p < g.numPlayers; p++ {
		for r := 1; r <= numRanks; r++ {
			b.AddPiece(g.cardTypes[p], piece.NewValue([]piece.Attribute{piece.NewAttribute("rank", r)}),
				[]board.PlayerID{board.PlayerID(p)}, board.NewPosition(p))
		}
	}
	for r := 1; r <= numRanks; r++ {
		b.AddPiece(g.cardTypes[g.numPlayers], piece.NewValue([]piece.Attribute{piece.NewAttribute("rank", r)}),
			nil, board.NewPosition(2*g.numPlayers))
	}

	b.AddVariable(state.NewVariable("scores", make([]float64, g.numPlayers)))
	return b.Build()
}

func isCurrent(s *state.State, player board.PlayerID) bool {
	for _, p := range s.CurrentPlayers() {
		if p == player {
			return true
		}
	}
	return false
}

func (g *Game) LegalActions(s *state.State, player board.PlayerID) []move.ProbAction {
	if !isCurrent(s, player) {
		return nil
	}

	prizeSlot := board.NewPosition(2*g.numPlayers + 1)
	deck := board.NewPosition(2 * g.numPlayers)

	if player == board.ChancePlayerID {
		if s.StackSize(prizeSlot) == 0 {
			moves := []move.Move{
				move.MovePiece{From: deck, To: prizeSlot},
				move.Reveal{From: board.NewStackPosition(prizeSlot.CellID(), 0), Observers: g.allPlayers()},
				move.SetNextPlayers{Players: g.allPlayers()},
			}
			return []move.ProbAction{{Action: move.NewAction(moves...), Probability: 1}}
		}

		var moves []move.Move
		maxRank := -1
		var maxPlayers []board.PlayerID
		for p := 0; p < g.numPlayers; p++ {
			pos := board.NewPosition(g.numPlayers + p)
			r := rank(s.GetPieceAt(pos).Values[0])
			switch {
			case r > maxRank:
				maxRank = r
				maxPlayers = []board.PlayerID{board.PlayerID(p)}
			case r == maxRank:
				maxPlayers = append(maxPlayers, board.PlayerID(p))
			}
			moves = append(moves, move.RemovePiece{From: pos})
		}

		prizeRank := rank(s.GetPieceAt(prizeSlot).Values[0])
		scores := append([]float64(nil), s.Variable("scores").Float64Slice()...)
		for _, p := range maxPlayers {
			scores[p] += float64(prizeRank) / float64(len(maxPlayers))
		}
		moves = append(moves, move.SetVariable{Variable: state.NewVariable("scores", scores)})
		moves = append(moves, move.RemovePiece{From: prizeSlot})

		if s.StackSize(deck) == 0 {
			moves = append(moves, move.SetNextPlayers{Players: nil})
		} else {
			moves = append(moves,
				move.MovePiece{From: deck, To: prizeSlot},
				move.Reveal{From: prizeSlot, Observers: g.allPlayers()},
				move.SetNextPlayers{Players: g.allPlayers()},
			)
		}
		return []move.ProbAction{{Action: move.NewAction(moves...), Probability: 1}}
	}

	hand := board.NewPosition(int(player))
	actions := make([]move.ProbAction, s.StackSize(hand))
	for i := range actions {
		moves := []move.Move{
			move.MovePiece{From: board.NewStackPosition(hand.CellID(), i), To: board.NewPosition(g.numPlayers + int(player))},
			move.Reveal{From: board.NewPosition(g.numPlayers + int(player)), Observers: g.allPlayers()},
			move.SetNextPlayers{Players: []board.PlayerID{board.ChancePlayerID}},
		}
		actions[i] = move.ProbAction{Action: move.NewAction(moves...), Probability: 1}
	}
	return actions
}

func (g *Game) IsTerminal(s *state.State) bool {
	return len(s.CurrentPlayers()) == 0
}

func (g *Game) Returns(s *state.State) []float64 {
	if !g.IsTerminal(s) {
		return make([]float64, g.numPlayers)
	}
	return s.Variable("scores").Float64Slice()
}
