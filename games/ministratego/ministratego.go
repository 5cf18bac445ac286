// Package ministratego implements the battle-only core of Mini Stratego
// on a 5x5 board: both sides deploy a Flag, a Bomb, a Miner, and two
// Soldiers, then alternate moving a mobile piece (Miner or Soldier) into
// an empty or enemy-occupied neighboring square, triggering Battle on
// contact.
package ministratego

import (
	"github.com/beliefsg/beliefsg/internal/board"
	"github.com/beliefsg/beliefsg/internal/move"
	"github.com/beliefsg/beliefsg/internal/piece"
	"github.com/beliefsg/beliefsg/internal/state"
)

const boardDim = 5

var (
	flagValue    = piece.NewValue([]piece.Attribute{piece.NewAttribute("rank", "Flag")})
	bombValue    = piece.NewValue([]piece.Attribute{piece.NewAttribute("rank", "Bomb")})
	minerValue   = piece.NewValue([]piece.Attribute{piece.NewAttribute("rank", "Miner")})
	soldierValue = piece.NewValue([]piece.Attribute{piece.NewAttribute("rank", "Soldier")})

	unitValues = []piece.Value{flagValue, bombValue, minerValue, soldierValue, soldierValue}
)

// defaultBoringMoveLimit is how many consecutive non-capturing moves end
// the game in a draw. The original rulebook hardcodes 20; left
// configurable here since nothing about the rule fixes that number.
const defaultBoringMoveLimit = 20

// Game is Mini Stratego's rulebook.
type Game struct {
	blueType, redType *piece.Type
	playGraph         board.PlayGraph
	boringMoveLimit   int
}

// New builds a Mini Stratego game. boringMoveLimit <= 0 uses the default
// of 20 consecutive non-capturing moves before a draw.
func New(boringMoveLimit int) *Game {
	if boringMoveLimit <= 0 {
		boringMoveLimit = defaultBoringMoveLimit
	}

	adjacency := make([][]int, 0, boardDim*boardDim+2)
	for i := 0; i < boardDim; i++ {
		for j := 0; j < boardDim; j++ {
			var neighbors []int
			if i > 0 {
				neighbors = append(neighbors, (i-1)*boardDim+j)
			}
			if i < boardDim-1 {
				neighbors = append(neighbors, (i+1)*boardDim+j)
			}
			if j > 0 {
				neighbors = append(neighbors, i*boardDim+j-1)
			}
			if j < boardDim-1 {
				neighbors = append(neighbors, i*boardDim+j+1)
			}
			adjacency = append(adjacency, neighbors)
		}
	}
	adjacency = append(adjacency, []int{0, 1, 2, 3, 4})
	adjacency = append(adjacency, []int{20, 21, 22, 23, 24})

	return &Game{
		blueType:        piece.NewType([]piece.Value{flagValue, bombValue, minerValue, soldierValue}),
		redType:         piece.NewType([]piece.Value{flagValue, bombValue, minerValue, soldierValue}),
		playGraph:       board.NewPlayGraph(adjacency),
		boringMoveLimit: boringMoveLimit,
	}
}

func (g *Game) Name() string               { return "Mini Stratego" }
func (g *Game) NumPlayers() int            { return 2 }
func (g *Game) PlayGraph() board.PlayGraph { return g.playGraph }

// Cells 0-24 are the 5x5 board, row-major. Cell 25 is blue's deployment
// queue, cell 26 is red's.
func (g *Game) InitialState(pov board.PointOfView) *state.State {
	b := state.NewBuilder(pov, 2)
	b.SetInitialPlayers([]board.PlayerID{0})
	b.AddVariable(state.NewVariable("boring_moves", 0))

	for _, v := range unitValues {
		b.AddPiece(g.blueType, v, []board.PlayerID{0}, board.NewPosition(25))
	}
	for _, v := range unitValues {
		b.AddPiece(g.redType, v, []board.PlayerID{1}, board.NewPosition(26))
	}
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

func (g *Game) typeOf(player board.PlayerID) *piece.Type {
	if player == 0 {
		return g.blueType
	}
	return g.redType
}

func (g *Game) LegalActions(s *state.State, player board.PlayerID) []move.ProbAction {
	if !isCurrent(s, player) {
		return nil
	}

	deployPos := board.NewPosition(25 + int(player))
	if s.StackSize(deployPos) > 0 {
		var actions []move.ProbAction
		for _, neighbor := range g.playGraph.NeighborPositions(deployPos) {
			if s.StackSize(neighbor) > 0 {
				continue
			}
			moves := []move.Move{move.MovePiece{From: deployPos, To: neighbor}}
			if s.StackSize(deployPos) == 1 {
				moves = append(moves, move.SetNextPlayer{Player: 1 - player})
			}
			actions = append(actions, move.ProbAction{Action: move.NewAction(moves...), Probability: 1})
		}
		return actions
	}

	currentType := g.typeOf(player)
	var actions []move.ProbAction
	for cellID := 0; cellID < boardDim*boardDim; cellID++ {
		pos := board.NewPosition(cellID)
		pieces := s.GetPiecesAt(pos)
		for stackIdx, p := range pieces {
			if p.Type != currentType {
				continue
			}
			if !p.CanBe(minerValue) && !p.CanBe(soldierValue) {
				continue
			}
			actionProb := p.Probability(minerValue) + p.Probability(soldierValue)
			from := board.NewStackPosition(cellID, stackIdx)

			for _, neighbor := range g.playGraph.NeighborPositions(pos) {
				neighborPieces := s.GetPiecesAt(neighbor)
				switch {
				case len(neighborPieces) == 0:
					moves := []move.Move{
						move.RemovePieceValue{From: from, Value: flagValue},
						move.RemovePieceValue{From: from, Value: bombValue},
						move.MovePiece{From: from, To: neighbor},
						move.SetVariable{Variable: state.NewVariable("boring_moves", s.Variable("boring_moves").Int()+1)},
						move.SetNextPlayer{Player: 1 - player},
					}
					actions = append(actions, move.ProbAction{Action: move.NewAction(moves...), Probability: actionProb})
				case len(neighborPieces) == 1 && neighborPieces[0].Type != currentType:
					moves := []move.Move{
						move.RemovePieceValue{From: from, Value: flagValue},
						move.RemovePieceValue{From: from, Value: bombValue},
						move.MovePiece{From: from, To: neighbor},
						move.Reveal{From: neighbor, Observers: []board.PlayerID{0, 1}},
						Battle{From: neighbor},
						move.SetVariable{Variable: state.NewVariable("boring_moves", 0)},
						move.SetNextPlayer{Player: 1 - player},
					}
					actions = append(actions, move.ProbAction{Action: move.NewAction(moves...), Probability: actionProb})
				}
			}
		}
	}
	return actions
}

func (g *Game) flagsStillUp(s *state.State) (blueFlag, redFlag bool) {
	for cellID := 0; cellID < boardDim*boardDim+2; cellID++ {
		for _, p := range s.GetPiecesAt(board.NewPosition(cellID)) {
			if p.Type == g.blueType && p.CanBe(flagValue) {
				blueFlag = true
			}
			if p.Type == g.redType && p.CanBe(flagValue) {
				redFlag = true
			}
		}
	}
	return
}

func (g *Game) IsTerminal(s *state.State) bool {
	if s.Variable("boring_moves").Int() >= g.boringMoveLimit {
		return true
	}
	blueFlag, redFlag := g.flagsStillUp(s)

	players := s.CurrentPlayers()
	if len(players) == 0 {
		return true
	}
	return !redFlag || !blueFlag || len(g.LegalActions(s, players[0])) == 0
}

func (g *Game) Returns(s *state.State) []float64 {
	if s.Variable("boring_moves").Int() >= g.boringMoveLimit {
		return []float64{0, 0}
	}

	players := s.CurrentPlayers()
	if actions := g.LegalActions(s, players[0]); len(actions) == 0 {
		if players[0] == 0 {
			return []float64{-1, 1}
		}
		return []float64{1, -1}
	}

	blueFlag, redFlag := g.flagsStillUp(s)
	if !redFlag {
		return []float64{-1, 1}
	}
	if !blueFlag {
		return []float64{1, -1}
	}
	return []float64{0, 0}
}
