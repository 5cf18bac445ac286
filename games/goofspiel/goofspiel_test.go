package goofspiel

import (
	"math/rand"
	"testing"

	"github.com/beliefsg/beliefsg/internal/board"
	"github.com/beliefsg/beliefsg/internal/game"
	"github.com/beliefsg/beliefsg/internal/move"
)

func TestInitialStateDealsFullHands(t *testing.T) {
	g := New(3)
	s := g.InitialState(board.NewWorldView())
	for p := 0; p < 3; p++ {
		if got := s.StackSize(board.NewPosition(p)); got != numRanks {
			t.Fatalf("player %d: expected %d cards, got %d", p, numRanks, got)
		}
	}
	if got := s.StackSize(board.NewPosition(2 * 3)); got != numRanks {
		t.Fatalf("expected %d prize cards, got %d", numRanks, got)
	}
}

func TestFullPlayoutSplitsTies(t *testing.T) {
	g := New(2)
	s := g.InitialState(board.NewWorldView())
	rng := rand.New(rand.NewSource(3))

	steps := 0
	for !g.IsTerminal(s) {
		steps++
		if steps > 500 {
			t.Fatal("goofspiel playout did not terminate")
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

	scores := g.Returns(s)
	total := 0.0
	for _, sc := range scores {
		total += sc
	}
	wantTotal := float64(numRanks * (numRanks + 1) / 2)
	if total != wantTotal {
		t.Fatalf("expected scores to sum to %v (every prize claimed), got %v (%v)", wantTotal, total, scores)
	}
}
