package ministratego

import (
	"math/rand"
	"testing"

	"github.com/beliefsg/beliefsg/internal/board"
	"github.com/beliefsg/beliefsg/internal/piece"
	"github.com/beliefsg/beliefsg/internal/state"
)

func oneOnOne(t *testing.T, g *Game, v1, v2 piece.Value) *state.State {
	t.Helper()
	b := state.NewBuilder(board.NewWorldView(), 2)
	b.AddPiece(g.blueType, v1, nil, board.NewPosition(0))
	b.AddPiece(g.redType, v2, nil, board.NewPosition(0))
	return b.Build()
}

func TestBattleSoldierLosesToBomb(t *testing.T) {
	g := New(0)
	s := oneOnOne(t, g, soldierValue, bombValue)

	transitions := (Battle{From: board.NewPosition(0)}).Apply(s)
	if len(transitions) != 1 {
		t.Fatalf("expected 1 transition for a fully-known battle, got %d", len(transitions))
	}
	survivors := transitions[0].State.GetPiecesAt(board.NewPosition(0))
	if len(survivors) != 1 || !survivors[0].CanBe(bombValue) {
		t.Fatalf("expected only the bomb to survive, got %v", survivors)
	}
}

func TestBattleMinerDefusesBomb(t *testing.T) {
	g := New(0)
	s := oneOnOne(t, g, minerValue, bombValue)

	transitions := (Battle{From: board.NewPosition(0)}).Apply(s)
	survivors := transitions[0].State.GetPiecesAt(board.NewPosition(0))
	if len(survivors) != 1 || !survivors[0].CanBe(minerValue) {
		t.Fatalf("expected only the miner to survive, got %v", survivors)
	}
}

func TestBattleEqualRanksMutuallyDestroy(t *testing.T) {
	g := New(0)
	s := oneOnOne(t, g, soldierValue, soldierValue)

	transitions := (Battle{From: board.NewPosition(0)}).Apply(s)
	survivors := transitions[0].State.GetPiecesAt(board.NewPosition(0))
	if len(survivors) != 0 {
		t.Fatalf("expected both soldiers to fall, got %v", survivors)
	}
}

func TestFlagNeverSurvivesContact(t *testing.T) {
	if survives(flagValue, soldierValue) {
		t.Fatal("flag should never survive being the attacker in a battle")
	}
}

func TestDeploymentPhaseHandsOffAfterFifthPiece(t *testing.T) {
	g := New(0)
	s := g.InitialState(board.NewWorldView())
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 5; i++ {
		legal := g.LegalActions(s, 0)
		if len(legal) == 0 {
			t.Fatalf("deployment step %d: no legal actions for player 0", i)
		}
		legal[rng.Intn(len(legal))].Action.ApplyInPlace(s, rng)
	}

	players := s.CurrentPlayers()
	if len(players) != 1 || players[0] != 1 {
		t.Fatalf("expected player 1 to deploy next, got %v", players)
	}
	if s.StackSize(board.NewPosition(25)) != 0 {
		t.Fatalf("expected blue's deployment queue to be empty")
	}
}
