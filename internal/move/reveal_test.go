package move

import (
	"testing"

	"github.com/beliefsg/beliefsg/internal/board"
	"github.com/beliefsg/beliefsg/internal/piece"
	"github.com/beliefsg/beliefsg/internal/state"
)

func cardType() *piece.Type {
	return piece.NewType([]piece.Value{
		piece.NewValue([]piece.Attribute{piece.NewAttribute("rank", "J")}),
		piece.NewValue([]piece.Attribute{piece.NewAttribute("rank", "Q")}),
		piece.NewValue([]piece.Attribute{piece.NewAttribute("rank", "K")}),
	})
}

// undealtHand builds Kuhn Poker's three-card deck, from player 1's private
// point of view, with one card alone at cell 0 and the other two at cell 1
// and nobody having observed any of them — the shape Kuhn Poker's dealing
// leaves behind for the card that lands in player 0's hand.
func undealtHand(t *testing.T) (*state.State, *piece.Type) {
	t.Helper()
	ct := cardType()
	b := state.NewBuilder(board.NewPrivateView(1), 2)
	b.AddPiece(ct, ct.ValueAt(0), nil, board.NewPosition(0))
	b.AddPiece(ct, ct.ValueAt(1), nil, board.NewPosition(1))
	b.AddPiece(ct, ct.ValueAt(2), nil, board.NewPosition(1))
	return b.Build(), ct
}

// TestRevealToOtherPlayerIsSingleBranch reproduces the Kuhn Poker dealing
// scenario from player 1's point of view: dealing player 0's card reveals
// it only to player 0, so from player 1's own view the piece never
// becomes seen and Reveal must not branch at all.
func TestRevealToOtherPlayerIsSingleBranch(t *testing.T) {
	s, _ := undealtHand(t)

	transitions := (Reveal{From: board.NewPosition(0), Observers: []board.PlayerID{0}}).Apply(s)
	if len(transitions) != 1 {
		t.Fatalf("expected exactly 1 branch when the reveal target stays unseen, got %d", len(transitions))
	}
	if transitions[0].Probability != 1 {
		t.Fatalf("expected probability 1 for the single branch, got %v", transitions[0].Probability)
	}
	p := transitions[0].State.GetPieceAt(board.NewPosition(0))
	if len(p.Values) != 3 {
		t.Fatalf("expected the piece's domain to stay unresolved at 3 candidates, got %d", len(p.Values))
	}
}

// TestRevealToOwnerBranchesPerValue covers the complementary case: once
// the reveal target is the state's own owning player, the piece becomes
// seen and Reveal must branch once per remaining candidate value,
// weighted by that value's current marginal.
func TestRevealToOwnerBranchesPerValue(t *testing.T) {
	s, ct := undealtHand(t)
	// undealtHand builds from player 1's view; rebuild from player 0's.
	b := state.NewBuilder(board.NewPrivateView(0), 2)
	b.AddPiece(ct, ct.ValueAt(0), nil, board.NewPosition(0))
	b.AddPiece(ct, ct.ValueAt(1), nil, board.NewPosition(1))
	b.AddPiece(ct, ct.ValueAt(2), nil, board.NewPosition(1))
	s = b.Build()

	transitions := (Reveal{From: board.NewPosition(0), Observers: []board.PlayerID{0}}).Apply(s)
	if len(transitions) != ct.Size() {
		t.Fatalf("expected one branch per candidate value (%d), got %d", ct.Size(), len(transitions))
	}
	total := 0.0
	for _, tr := range transitions {
		total += tr.Probability
		p := tr.State.GetPieceAt(board.NewPosition(0))
		if len(p.Values) != 1 {
			t.Fatalf("expected the revealed piece to be pinned to a single value, got %d candidates", len(p.Values))
		}
	}
	if total < 0.999 || total > 1.001 {
		t.Fatalf("expected branch probabilities to sum to 1, got %v", total)
	}
}

// TestSetObserversReplacesObserverSet checks that SetObservers drops
// whoever could see the piece before in favor of exactly the new set.
func TestSetObserversReplacesObserverSet(t *testing.T) {
	ct := cardType()
	b := state.NewBuilder(board.NewPrivateView(0), 2)
	b.AddPiece(ct, ct.ValueAt(0), []board.PlayerID{0}, board.NewPosition(0))
	s := b.Build()

	transitions := (SetObservers{From: board.NewPosition(0), Observers: []board.PlayerID{1}}).Apply(s)
	if len(transitions) != 1 {
		t.Fatalf("expected 1 branch when the new observer set still leaves the piece unseen from player 0, got %d", len(transitions))
	}
}
