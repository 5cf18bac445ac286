// Package mc implements the determinized Monte Carlo agent: sample a
// handful of fully-determined worlds from the private belief state, then
// for each candidate action estimate its expected return by random
// rollout from each determinized sample, and play the action with the
// best average.
package mc

import (
	"math/rand"

	"github.com/beliefsg/beliefsg/internal/board"
	"github.com/beliefsg/beliefsg/internal/determinize"
	"github.com/beliefsg/beliefsg/internal/game"
	"github.com/beliefsg/beliefsg/internal/move"
	"github.com/beliefsg/beliefsg/internal/state"
)

// RolloutCap bounds how many joint actions a single random playout may
// take before it is cut off and scored as-is.
const RolloutCap = 200

// Agent is the determinized Monte Carlo search agent.
type Agent struct {
	game    game.Game
	player  board.PlayerID
	rng     *rand.Rand
	samples int
	iters   int
	useProb bool
}

// New builds a determinized MC agent. samples is how many determinized
// worlds to draw per decision; iters is the rollout budget for each
// candidate action, split evenly across samples; useProb selects marginal-weighted determinization
// over uniform.
func New(rng *rand.Rand, samples, iters int, useProb bool) *Agent {
	if samples <= 0 {
		samples = 10
	}
	if iters <= 0 {
		iters = 1000
	}
	return &Agent{rng: rng, samples: samples, iters: iters, useProb: useProb}
}

func (a *Agent) SetGame(g game.Game)        { a.game = g }
func (a *Agent) SetPlayer(p board.PlayerID) { a.player = p }

type actionInfo struct {
	action      move.Action
	totalReward float64
	visits      int
}

func (a *Agent) Act(private, _ *state.State) move.Action {
	legal := a.game.LegalActions(private, a.player)
	if len(legal) == 1 {
		return legal[0].Action
	}

	infos := make([]actionInfo, len(legal))
	for i, pa := range legal {
		infos[i].action = pa.Action
	}

	samples := make([]*state.State, a.samples)
	for i := range samples {
		s := private.Clone()
		if a.useProb {
			determinize.MarginalGreedy(s, a.rng)
		} else {
			determinize.Uniform(s, a.rng)
		}
		samples[i] = s
	}

	perSample := a.iters / a.samples
	if perSample == 0 {
		perSample = 1
	}

	for i := range infos {
		for _, sample := range samples {
			for k := 0; k < perSample; k++ {
				s := sample.Clone()
				joint := a.jointActionWithOwnChoice(s, infos[i].action)
				game.ApplyJointActionInPlace(joint, s, a.rng)
				a.rollout(s)
				infos[i].totalReward += a.game.Returns(s)[a.player]
				infos[i].visits++
			}
		}
	}

	best := infos[0]
	bestAvg := best.totalReward / float64(best.visits)
	for _, info := range infos[1:] {
		avg := info.totalReward / float64(info.visits)
		if avg > bestAvg {
			best, bestAvg = info, avg
		}
	}
	return best.action
}

// jointActionWithOwnChoice builds the joint action for the current
// players of s, substituting ownAction for this agent's own seat and a
// uniformly random legal action for everyone else.
func (a *Agent) jointActionWithOwnChoice(s *state.State, ownAction move.Action) []move.Action {
	players := s.CurrentPlayers()
	joint := make([]move.Action, len(players))
	for i, p := range players {
		if p == a.player {
			joint[i] = ownAction
			continue
		}
		legal := a.game.LegalActions(s, p)
		joint[i] = legal[a.rng.Intn(len(legal))].Action
	}
	return joint
}

func (a *Agent) rollout(s *state.State) {
	for i := 0; i < RolloutCap && !a.game.IsTerminal(s); i++ {
		players := s.CurrentPlayers()
		joint := make([]move.Action, len(players))
		for j, p := range players {
			legal := a.game.LegalActions(s, p)
			joint[j] = legal[a.rng.Intn(len(legal))].Action
		}
		game.ApplyJointActionInPlace(joint, s, a.rng)
	}
}
