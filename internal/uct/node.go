package uct

import (
	"github.com/beliefsg/beliefsg/internal/game"
	"github.com/beliefsg/beliefsg/internal/move"
	"github.com/beliefsg/beliefsg/internal/state"
)

// actionInfo tracks one candidate action's visit and reward statistics at
// a single current player's slot within a node.
type actionInfo struct {
	action      move.Action
	visits      int
	sumResults  float64
}

// successorEdge remembers which joint action leads to which already
// expanded child.
type successorEdge struct {
	jointAction []move.Action
	child       *node
}

// node is one state in the UCT search tree, rooted at a determinized
// sample of the acting player's private belief state.
type node struct {
	state             *state.State
	parent            *node
	parentJointAction []move.Action
	visits            int
	actions           [][]actionInfo
	successors        []successorEdge
}

func newNode(g game.Game, s *state.State, parent *node, parentJointAction []move.Action) *node {
	n := &node{state: s, parent: parent, parentJointAction: parentJointAction}
	if g.IsTerminal(s) {
		return n
	}
	players := s.CurrentPlayers()
	n.actions = make([][]actionInfo, len(players))
	for i, p := range players {
		legal := g.LegalActions(s, p)
		infos := make([]actionInfo, len(legal))
		for j, pa := range legal {
			infos[j] = actionInfo{action: pa.Action}
		}
		n.actions[i] = infos
	}
	return n
}

func (n *node) isFullyExpanded() bool {
	for _, infos := range n.actions {
		for _, info := range infos {
			if info.visits <= 0 {
				return false
			}
		}
	}
	return true
}

func (n *node) findSuccessor(joint []move.Action) *node {
	for _, e := range n.successors {
		if jointEqual(e.jointAction, joint) {
			return e.child
		}
	}
	return nil
}

func jointEqual(a, b []move.Action) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
