package driver

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/beliefsg/beliefsg/internal/agent"
	"github.com/beliefsg/beliefsg/internal/board"
	"github.com/beliefsg/beliefsg/internal/move"
	"github.com/beliefsg/beliefsg/internal/randomagent"
	"github.com/beliefsg/beliefsg/games/kuhn"
)

func TestStepDealsBothCardsBeforeAnyPlayerActs(t *testing.T) {
	g := kuhn.New()
	rng := rand.New(rand.NewSource(5))
	agents := map[board.PlayerID]agent.Agent{
		0: randomagent.New(rng),
		1: randomagent.New(rng),
	}
	d := New(g, agents, rng)

	for i := 0; i < 2; i++ {
		ok, err := d.Step()
		require.NoError(t, err)
		require.True(t, ok)
	}
	require.Equal(t, []board.PlayerID{0}, d.World().CurrentPlayers())
}

func TestStepAbortsOnIllegalAction(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockAgent := NewMockAgent(ctrl)
	mockAgent.EXPECT().SetGame(gomock.Any())
	mockAgent.EXPECT().SetPlayer(gomock.Any())
	mockAgent.EXPECT().Act(gomock.Any(), gomock.Any()).
		Return(move.NewAction(move.SetNextPlayer{Player: 0}))

	g := kuhn.New()
	rng := rand.New(rand.NewSource(9))
	agents := map[board.PlayerID]agent.Agent{
		0: mockAgent,
		1: randomagent.New(rng),
	}
	d := New(g, agents, rng)

	for i := 0; i < 2; i++ {
		ok, err := d.Step()
		require.NoError(t, err)
		require.True(t, ok)
	}

	ok, err := d.Step()
	require.False(t, ok)
	require.Error(t, err)
}
