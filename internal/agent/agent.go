// Package agent defines the interface every decision-maker implements:
// random play, determinized Monte Carlo, and determinized UCT all satisfy
// it, and a driver only ever talks to agents through it.
package agent

import (
	"github.com/beliefsg/beliefsg/internal/board"
	"github.com/beliefsg/beliefsg/internal/game"
	"github.com/beliefsg/beliefsg/internal/move"
	"github.com/beliefsg/beliefsg/internal/state"
)

// Agent chooses an action for one seat, given that seat's private belief
// state and the table's public belief state.
type Agent interface {
	SetGame(g game.Game)
	SetPlayer(p board.PlayerID)
	Act(private, public *state.State) move.Action
}
