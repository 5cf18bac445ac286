package kuhn

import (
	"math/rand"
	"testing"

	"github.com/beliefsg/beliefsg/internal/board"
	"github.com/beliefsg/beliefsg/internal/game"
	"github.com/beliefsg/beliefsg/internal/move"
)

func TestInitialStateDealsThreeCards(t *testing.T) {
	g := New()
	s := g.InitialState(board.NewWorldView())
	if got := s.StackSize(board.NewPosition(0)); got != 3 {
		t.Fatalf("expected 3 undealt cards, got %d", got)
	}
	players := s.CurrentPlayers()
	if len(players) != 1 || players[0] != board.ChancePlayerID {
		t.Fatalf("expected chance to act first, got %v", players)
	}
}

func TestChanceDealingAdvancesToPlayerZero(t *testing.T) {
	g := New()
	s := g.InitialState(board.NewWorldView())
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 2; i++ {
		legal := g.LegalActions(s, board.ChancePlayerID)
		if len(legal) != 1 {
			t.Fatalf("deal %d: expected exactly one chance action, got %d", i, len(legal))
		}
		game.ApplyJointActionInPlace([]move.Action{legal[0].Action}, s, rng)
	}

	if s.StackSize(board.NewPosition(0)) != 1 {
		t.Fatalf("expected 1 card left undealt, got %d", s.StackSize(board.NewPosition(0)))
	}
	players := s.CurrentPlayers()
	if len(players) != 1 || players[0] != 0 {
		t.Fatalf("expected player 0 to act after dealing, got %v", players)
	}
}

// TestKuhnPlayoutTerminates drives a full random playout (both chance deals
// plus a full betting round) and checks the engine reaches a terminal state
// with a zero-sum result.
func TestKuhnPlayoutTerminates(t *testing.T) {
	g := New()
	s := g.InitialState(board.NewWorldView())
	rng := rand.New(rand.NewSource(42))

	steps := 0
	for !g.IsTerminal(s) {
		steps++
		if steps > 20 {
			t.Fatal("playout did not terminate")
		}
		players := s.CurrentPlayers()
		joint := make([]move.Action, len(players))
		for i, p := range players {
			legal := g.LegalActions(s, p)
			if len(legal) == 0 {
				t.Fatalf("no legal actions for player %d", p)
			}
			joint[i] = legal[rng.Intn(len(legal))].Action
		}
		game.ApplyJointActionInPlace(joint, s, rng)
	}

	returns := g.Returns(s)
	if len(returns) != 2 {
		t.Fatalf("expected 2 returns, got %d", len(returns))
	}
	if returns[0]+returns[1] != 0 {
		t.Fatalf("expected zero-sum returns, got %v", returns)
	}
}

func TestWinsRanking(t *testing.T) {
	j := rankValue("J")
	q := rankValue("Q")
	k := rankValue("K")
	if !wins(k, j) || !wins(k, q) {
		t.Fatal("king should beat jack and queen")
	}
	if !wins(q, j) {
		t.Fatal("queen should beat jack")
	}
	if wins(j, q) || wins(j, k) || wins(q, k) {
		t.Fatal("lower rank should not win")
	}
}
