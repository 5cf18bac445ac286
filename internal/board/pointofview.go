package board

import (
	"fmt"

	"github.com/beliefsg/beliefsg/internal/bgerr"
)

// ViewType distinguishes the three belief states a driver keeps in
// lockstep: the fully-determined world state, each player's private view,
// and the common-knowledge public view.
type ViewType int

const (
	World ViewType = iota
	Public
	Private
)

func (t ViewType) String() string {
	switch t {
	case World:
		return "world"
	case Public:
		return "public"
	case Private:
		return "private"
	default:
		return "unknown"
	}
}

// PointOfView tags a State with which of the three views it represents,
// and — for Private — which player it belongs to.
type PointOfView struct {
	viewType ViewType
	playerID PlayerID
	hasOwner bool
}

// NewWorldView builds the fully-determined point of view.
func NewWorldView() PointOfView { return PointOfView{viewType: World} }

// NewPublicView builds the common-knowledge point of view.
func NewPublicView() PointOfView { return PointOfView{viewType: Public} }

// NewPrivateView builds player-owned point of view.
func NewPrivateView(player PlayerID) PointOfView {
	return PointOfView{viewType: Private, playerID: player, hasOwner: true}
}

// Type reports which of the three views this is.
func (v PointOfView) Type() ViewType { return v.viewType }

// Player returns the owning player. It faults for a non-Private view.
func (v PointOfView) Player() PlayerID {
	if !v.hasOwner {
		bgerr.Fault("point of view %v has no owning player", v)
	}
	return v.playerID
}

func (v PointOfView) String() string {
	if v.hasOwner {
		return fmt.Sprintf("%s(%d)", v.viewType, v.playerID)
	}
	return v.viewType.String()
}
