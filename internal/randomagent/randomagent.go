// Package randomagent implements the simplest possible Agent: pick
// uniformly among whatever the rulebook reports as legal.
package randomagent

import (
	"math/rand"

	"github.com/beliefsg/beliefsg/internal/board"
	"github.com/beliefsg/beliefsg/internal/game"
	"github.com/beliefsg/beliefsg/internal/move"
	"github.com/beliefsg/beliefsg/internal/state"
)

// Agent picks a uniformly random legal action each turn.
type Agent struct {
	game   game.Game
	player board.PlayerID
	rng    *rand.Rand
}

// New builds a random agent seeded from rng.
func New(rng *rand.Rand) *Agent {
	return &Agent{rng: rng}
}

func (a *Agent) SetGame(g game.Game)         { a.game = g }
func (a *Agent) SetPlayer(p board.PlayerID)  { a.player = p }

func (a *Agent) Act(private, _ *state.State) move.Action {
	actions := a.game.LegalActions(private, a.player)
	return actions[a.rng.Intn(len(actions))].Action
}
