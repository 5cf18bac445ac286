// Package driver steps a game forward: it keeps the world, the public
// view, and every player's private view in lockstep, asking each current
// player's agent for an action, resolving chance's moves by weighted
// sample, and rolling every view forward consistently with whatever
// actually happened in the world.
package driver

import (
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/beliefsg/beliefsg/internal/agent"
	"github.com/beliefsg/beliefsg/internal/bgerr"
	"github.com/beliefsg/beliefsg/internal/board"
	"github.com/beliefsg/beliefsg/internal/game"
	"github.com/beliefsg/beliefsg/internal/metrics"
	"github.com/beliefsg/beliefsg/internal/move"
	"github.com/beliefsg/beliefsg/internal/obslog"
	"github.com/beliefsg/beliefsg/internal/state"
)

// Driver owns one playthrough of a game.
type Driver struct {
	game     game.Game
	agents   map[board.PlayerID]agent.Agent
	rng      *rand.Rand
	world    *state.State
	public   *state.State
	private  map[board.PlayerID]*state.State
	matchID  uuid.UUID
	logger   *zap.Logger
	recorder metrics.Recorder
	step     int
}

// Option configures optional ambient wiring (logging, metrics) on a
// Driver. The engine itself never requires either.
type Option func(*Driver)

// WithLogger attaches a structured logger; the default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// WithRecorder attaches a metrics recorder; the default is nil (disabled).
func WithRecorder(r metrics.Recorder) Option {
	return func(d *Driver) { d.recorder = r }
}

// New builds a driver for g, wiring each agent to its seat and building
// the initial world/public/private states.
func New(g game.Game, agents map[board.PlayerID]agent.Agent, rng *rand.Rand, opts ...Option) *Driver {
	d := &Driver{
		game:    g,
		agents:  agents,
		rng:     rng,
		world:   g.InitialState(board.NewWorldView()),
		public:  g.InitialState(board.NewPublicView()),
		private: make(map[board.PlayerID]*state.State, g.NumPlayers()),
		matchID: uuid.New(),
		logger:  obslog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.world.SetRecorder(d.recorder)
	d.public.SetRecorder(d.recorder)
	for p := board.PlayerID(0); int(p) < g.NumPlayers(); p++ {
		d.private[p] = g.InitialState(board.NewPrivateView(p))
		d.private[p].SetRecorder(d.recorder)
		agents[p].SetGame(g)
		agents[p].SetPlayer(p)
	}
	d.logger.Info("match started",
		zap.String("match_id", d.matchID.String()),
		zap.String("game", g.Name()),
		zap.Int("num_players", g.NumPlayers()),
	)
	return d
}

// MatchID returns this playthrough's unique identifier, used only in log
// fields and metrics labels.
func (d *Driver) MatchID() uuid.UUID { return d.matchID }

// World returns the fully-determined state, for observers/tests.
func (d *Driver) World() *state.State { return d.world }

// Public returns the common-knowledge state.
func (d *Driver) Public() *state.State { return d.public }

// Private returns player p's private state.
func (d *Driver) Private(p board.PlayerID) *state.State { return d.private[p] }

// IsTerminal reports whether the game's rulebook considers the world
// state terminal.
func (d *Driver) IsTerminal() bool { return d.game.IsTerminal(d.world) }

// Returns reports the final per-player payoff. Only meaningful once
// IsTerminal is true.
func (d *Driver) Returns() []float64 { return d.game.Returns(d.world) }

// Step advances the game by one joint action: every current player (or
// chance) chooses a move, the world resolves it deterministically (the
// world is always fully determined, so its own Apply never actually
// branches), and the public/private views are each rolled forward by
// picking, among their own possible branches, the one still consistent
// with what just became true in the world. A driver-level fault (an
// illegal agent action, or no view branch left consistent with the world)
// ends the step with an error instead of panicking.
func (d *Driver) Step() (ok bool, err error) {
	defer bgerr.Recover(&err)
	defer func() {
		if err != nil {
			metrics.DriverStepAborted(d.recorder)
			d.logger.Warn("step aborted",
				zap.String("match_id", d.matchID.String()),
				zap.Int("step", d.step),
				zap.Error(err),
			)
		}
	}()

	currentPlayers := d.world.CurrentPlayers()
	if len(currentPlayers) == 0 {
		d.logger.Info("match complete",
			zap.String("match_id", d.matchID.String()),
			zap.Int("steps", d.step),
		)
		return false, nil
	}

	actions := make([]move.Action, len(currentPlayers))
	for i, p := range currentPlayers {
		if p == board.ChancePlayerID {
			legal := d.game.LegalActions(d.world, p)
			actions[i] = sampleProbAction(legal, d.rng)
			continue
		}
		a := d.agents[p].Act(d.private[p], d.public)
		if !actionIsLegal(d.game.LegalActions(d.private[p], p), a) {
			return false, bgerr.New("driver: player %d chose an action outside LegalActions", p)
		}
		actions[i] = a
	}

	game.ApplyJointActionInPlace(actions, d.world, d.rng)

	d.public, err = rollForward(d.public, actions, d.world)
	if err != nil {
		return false, err
	}
	for p, priv := range d.private {
		d.private[p], err = rollForward(priv, actions, d.world)
		if err != nil {
			return false, err
		}
	}
	d.step++
	d.logger.Debug("step applied",
		zap.String("match_id", d.matchID.String()),
		zap.Int("step", d.step),
	)
	return true, nil
}

// rollForward applies actions to view, then picks the first resulting
// branch, in the order ApplyJointAction returns them, that is still
// consistent with the world's new (fully determined) truth.
func rollForward(view *state.State, actions []move.Action, world *state.State) (*state.State, error) {
	branches := game.ApplyJointAction(actions, view)
	for _, b := range branches {
		if b.State.IsConsistentWith(world) {
			return b.State, nil
		}
	}
	return nil, bgerr.New("driver: no view branch remained consistent with the world after the move")
}

func sampleProbAction(actions []move.ProbAction, rng *rand.Rand) move.Action {
	if len(actions) == 1 {
		return actions[0].Action
	}
	total := 0.0
	for _, a := range actions {
		total += a.Probability
	}
	target := rng.Float64() * total
	for _, a := range actions {
		target -= a.Probability
		if target <= 0 {
			return a.Action
		}
	}
	return actions[len(actions)-1].Action
}

func actionIsLegal(legal []move.ProbAction, a move.Action) bool {
	for _, l := range legal {
		if l.Action.Equal(a) {
			return true
		}
	}
	return false
}
