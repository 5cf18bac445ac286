// Package kuhn implements Kuhn Poker: a three-card, two-player betting
// game small enough to be the canonical smoke test for a belief-state
// engine's dealing, betting, and showdown plumbing.
package kuhn

import (
	"github.com/beliefsg/beliefsg/internal/board"
	"github.com/beliefsg/beliefsg/internal/move"
	"github.com/beliefsg/beliefsg/internal/piece"
	"github.com/beliefsg/beliefsg/internal/state"
)

// Game is Kuhn Poker's rulebook.
type Game struct {
	cardType  *piece.Type
	playGraph board.PlayGraph
}

// New builds a Kuhn Poker game.
func New() *Game {
	return &Game{
		cardType: piece.NewType([]piece.Value{
			piece.NewValue([]piece.Attribute{piece.NewAttribute("rank", "J")}),
			piece.NewValue([]piece.Attribute{piece.NewAttribute("rank", "Q")}),
			piece.NewValue([]piece.Attribute{piece.NewAttribute("rank", "K")}),
		}),
		playGraph: board.NewPlayGraph([][]int{{}, {}, {}}),
	}
}

func (g *Game) Name() string            { return "Kuhn Poker" }
func (g *Game) NumPlayers() int         { return 2 }
func (g *Game) PlayGraph() board.PlayGraph { return g.playGraph }

// Cell 0 is the undealt deck; cells 1 and 2 are player 0's and player 1's
// hands.
func (g *Game) InitialState(pov board.PointOfView) *state.State {
	b := state.NewBuilder(pov, 2)
	b.SetInitialPlayers([]board.PlayerID{board.ChancePlayerID})
	for i := 0; i < g.cardType.Size(); i++ {
		b.AddPiece(g.cardType, g.cardType.ValueAt(i), nil, board.NewPosition(0))
	}
	b.AddVariable(state.NewVariable("pot", 2))
	b.AddVariable(state.NewVariable("players_money", []int{-1, -1}))
	b.AddVariable(state.NewVariable("first_better", int(board.InvalidPlayerID)))
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

// LegalActions reports the deal (for chance) or the check/bet/call/fold
// choices available to the acting player.
func (g *Game) LegalActions(s *state.State, player board.PlayerID) []move.ProbAction {
	if !isCurrent(s, player) {
		return nil
	}

	if player == board.ChancePlayerID {
		remaining := s.StackSize(board.NewPosition(0))
		dealTo := board.PlayerID(g.cardType.Size() - remaining)
		moves := []move.Move{
			move.MovePiece{From: board.NewPosition(0), To: board.NewPosition(int(dealTo) + 1)},
			move.Reveal{From: board.NewPosition(int(dealTo) + 1), Observers: []board.PlayerID{dealTo}},
		}
		if dealTo == 1 {
			moves = append(moves, move.SetNextPlayer{Player: 0})
		}
		return []move.ProbAction{{Action: move.NewAction(moves...), Probability: 1}}
	}

	firstBetter := board.PlayerID(s.Variable("first_better").Int())
	if firstBetter == board.InvalidPlayerID {
		var checkMoves []move.Move
		if player == 1 {
			checkMoves = []move.Move{
				move.Reveal{From: board.NewPosition(1), Observers: []board.PlayerID{0, 1}},
				move.Reveal{From: board.NewPosition(2), Observers: []board.PlayerID{0, 1}},
				move.SetNextPlayers{Players: nil},
			}
		} else {
			checkMoves = []move.Move{move.SetNextPlayer{Player: 1 - player}}
		}

		pot := s.Variable("pot").Int()
		money := append([]int(nil), s.Variable("players_money").IntSlice()...)
		money[player] -= 1
		betMoves := []move.Move{
			move.SetVariable{Variable: state.NewVariable("first_better", int(player))},
			move.SetVariable{Variable: state.NewVariable("pot", pot+1)},
			move.SetVariable{Variable: state.NewVariable("players_money", money)},
			move.SetNextPlayer{Player: 1 - player},
		}

		return []move.ProbAction{
			{Action: move.NewAction(checkMoves...), Probability: 1},
			{Action: move.NewAction(betMoves...), Probability: 1},
		}
	}

	pot := s.Variable("pot").Int()
	money := append([]int(nil), s.Variable("players_money").IntSlice()...)
	money[player] -= 1
	callMoves := []move.Move{
		move.SetVariable{Variable: state.NewVariable("pot", pot+1)},
		move.SetVariable{Variable: state.NewVariable("players_money", money)},
		move.Reveal{From: board.NewPosition(1), Observers: []board.PlayerID{0, 1}},
		move.Reveal{From: board.NewPosition(2), Observers: []board.PlayerID{0, 1}},
		move.SetNextPlayers{Players: nil},
	}
	foldMoves := []move.Move{
		move.Reveal{From: board.NewPosition(1), Observers: []board.PlayerID{0, 1}},
		move.Reveal{From: board.NewPosition(2), Observers: []board.PlayerID{0, 1}},
		move.SetNextPlayers{Players: nil},
	}
	return []move.ProbAction{
		{Action: move.NewAction(callMoves...), Probability: 1},
		{Action: move.NewAction(foldMoves...), Probability: 1},
	}
}

func (g *Game) IsTerminal(s *state.State) bool {
	return len(s.CurrentPlayers()) == 0
}

// Returns reports each player's final bankroll. Following
// original_source/src/games/kuhn_poker.cpp, the full pot is added to the
// winner's players_money with nothing further subtracted. players_money
// already holds minus each player's ante and bets, so the winner's return
// is their net gain and the two returns sum to zero.
func (g *Game) Returns(s *state.State) []float64 {
	if !g.IsTerminal(s) {
		return []float64{0, 0}
	}
	money := append([]int(nil), s.Variable("players_money").IntSlice()...)
	pot := s.Variable("pot").Int()
	firstBetter := board.PlayerID(s.Variable("first_better").Int())

	value1 := s.GetPieceAt(board.NewPosition(1)).Values[0]
	value2 := s.GetPieceAt(board.NewPosition(2)).Values[0]

	if firstBetter == board.InvalidPlayerID {
		if wins(value1, value2) {
			money[0] += pot
		} else {
			money[1] += pot
		}
	} else if pot == 4 {
		if wins(value1, value2) {
			money[0] += pot
		} else {
			money[1] += pot
		}
	} else {
		money[firstBetter] += pot
	}
	return []float64{float64(money[0]), float64(money[1])}
}

func rankValue(rank string) piece.Value {
	return piece.NewValue([]piece.Attribute{piece.NewAttribute("rank", rank)})
}

func wins(first, second piece.Value) bool {
	if first.Equal(rankValue("K")) {
		return true
	}
	if first.Equal(rankValue("Q")) {
		return second.Equal(rankValue("J"))
	}
	return false
}
