// Package uct implements the determinized UCT agent: draw several
// determinized worlds from the private belief state, grow an independent
// UCB1 search tree in each, and choose whichever of the acting player's
// candidate actions accumulated the most visits summed across every tree.
package uct

import (
	"math"
	"math/rand"

	"github.com/beliefsg/beliefsg/internal/board"
	"github.com/beliefsg/beliefsg/internal/determinize"
	"github.com/beliefsg/beliefsg/internal/game"
	"github.com/beliefsg/beliefsg/internal/metrics"
	"github.com/beliefsg/beliefsg/internal/move"
	"github.com/beliefsg/beliefsg/internal/state"
)

// RolloutCap bounds a random rollout's joint-action count.
const RolloutCap = 200

// Agent is the determinized UCT search agent.
type Agent struct {
	game       game.Game
	player     board.PlayerID
	rng        *rand.Rand
	samples    int
	iterations int
	useProb    bool
	recorder   metrics.Recorder
}

// SetRecorder attaches an optional metrics recorder. A nil recorder (the
// default) disables metrics entirely.
func (a *Agent) SetRecorder(r metrics.Recorder) { a.recorder = r }

// New builds a determinized UCT agent. samples is how many independent
// determinized search trees to grow; iterations is how many playouts each
// tree gets; useProb selects marginal-weighted determinization over
// uniform.
func New(rng *rand.Rand, samples, iterations int, useProb bool) *Agent {
	if samples <= 0 {
		samples = 10
	}
	if iterations <= 0 {
		iterations = 1000
	}
	return &Agent{rng: rng, samples: samples, iterations: iterations, useProb: useProb}
}

func (a *Agent) SetGame(g game.Game)        { a.game = g }
func (a *Agent) SetPlayer(p board.PlayerID) { a.player = p }

func (a *Agent) Act(private, _ *state.State) move.Action {
	legal := a.game.LegalActions(private, a.player)
	if len(legal) == 1 {
		return legal[0].Action
	}

	roots := make([]*node, a.samples)
	for i := range roots {
		s := private.Clone()
		if a.useProb {
			determinize.MarginalGreedy(s, a.rng)
		} else {
			determinize.Uniform(s, a.rng)
		}
		roots[i] = newNode(a.game, s, nil, nil)
	}

	for _, root := range roots {
		for i := 0; i < a.iterations; i++ {
			a.runPlayout(root)
		}
	}

	type tally struct {
		action move.Action
		visits int
	}
	var tallies []tally
	for _, root := range roots {
		players := root.state.CurrentPlayers()
		idx := -1
		for i, p := range players {
			if p == a.player {
				idx = i
				break
			}
		}
		if idx < 0 {
			continue
		}
		for _, info := range root.actions[idx] {
			found := false
			for i := range tallies {
				if tallies[i].action.Equal(info.action) {
					tallies[i].visits += info.visits
					found = true
					break
				}
			}
			if !found {
				tallies = append(tallies, tally{action: info.action, visits: info.visits})
			}
		}
	}

	best := tallies[0]
	for _, t := range tallies[1:] {
		if t.visits > best.visits {
			best = t
		}
	}
	return best.action
}

func (a *Agent) runPlayout(root *node) {
	metrics.UCTIteration(a.recorder)
	leaf := a.selectAndExpand(root)
	result := a.simulate(leaf)
	backpropagate(leaf, result)
}

// selectJointAction picks one action per current player: for a lone
// chance node, the least-visited branch (to spread exploration evenly
// across an unweighted set of outcomes); otherwise UCB1 per seat, with an
// unvisited action always winning outright.
func (a *Agent) selectJointAction(n *node) []move.Action {
	players := n.state.CurrentPlayers()
	if len(players) == 1 && players[0] == board.ChancePlayerID {
		best := n.actions[0][0]
		for _, info := range n.actions[0] {
			if info.visits < best.visits {
				best = info
			}
		}
		return []move.Action{best.action}
	}

	joint := make([]move.Action, len(n.actions))
	logTotal := math.Log(math.Max(1, float64(n.visits)))
	for i, infos := range n.actions {
		bestScore := math.Inf(-1)
		bestIdx := -1
		for j, info := range infos {
			if info.visits == 0 {
				bestIdx = j
				break
			}
			score := info.sumResults/float64(info.visits) + math.Sqrt(2*logTotal/float64(info.visits))
			if score > bestScore {
				bestScore = score
				bestIdx = j
			}
		}
		joint[i] = infos[bestIdx].action
	}
	return joint
}

func (a *Agent) selectAndExpand(n *node) *node {
	for !a.game.IsTerminal(n.state) {
		joint := a.selectJointAction(n)
		if child := n.findSuccessor(joint); child != nil {
			n = child
			continue
		}
		newState := n.state.Clone()
		game.ApplyJointActionInPlace(joint, newState, a.rng)
		child := newNode(a.game, newState, n, joint)
		n.successors = append(n.successors, successorEdge{jointAction: joint, child: child})
		return child
	}
	return n
}

func (a *Agent) simulate(n *node) []float64 {
	s := n.state.Clone()
	for i := 0; i < RolloutCap && !a.game.IsTerminal(s); i++ {
		players := s.CurrentPlayers()
		joint := make([]move.Action, len(players))
		for j, p := range players {
			legal := a.game.LegalActions(s, p)
			joint[j] = legal[a.rng.Intn(len(legal))].Action
		}
		game.ApplyJointActionInPlace(joint, s, a.rng)
	}
	return a.game.Returns(s)
}

func backpropagate(n *node, result []float64) {
	for n != nil {
		n.visits++
		if n.parentJointAction != nil && n.parent != nil {
			players := n.parent.state.CurrentPlayers()
			for i, act := range n.parentJointAction {
				infos := n.parent.actions[i]
				for j := range infos {
					if infos[j].action.Equal(act) {
						infos[j].visits++
						infos[j].sumResults += result[players[i]]
						break
					}
				}
			}
		}
		n = n.parent
	}
}
