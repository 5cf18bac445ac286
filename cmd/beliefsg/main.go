// Command beliefsg plays matches of a belief-state game between search
// agents, reporting per-episode returns and optionally exposing engine
// metrics over HTTP.
package main

import (
	"fmt"
	"math/rand"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/beliefsg/beliefsg/games/goofspiel"
	"github.com/beliefsg/beliefsg/games/kuhn"
	"github.com/beliefsg/beliefsg/games/ministratego"
	"github.com/beliefsg/beliefsg/internal/agent"
	"github.com/beliefsg/beliefsg/internal/board"
	"github.com/beliefsg/beliefsg/internal/config"
	"github.com/beliefsg/beliefsg/internal/driver"
	"github.com/beliefsg/beliefsg/internal/game"
	"github.com/beliefsg/beliefsg/internal/mc"
	"github.com/beliefsg/beliefsg/internal/metrics"
	"github.com/beliefsg/beliefsg/internal/obslog"
	"github.com/beliefsg/beliefsg/internal/randomagent"
	"github.com/beliefsg/beliefsg/internal/uct"
)

// agentKind selects the search strategy used by every seat. Per-seat
// agent selection isn't exposed yet — there's no scenario in this repo
// that needs mixed agent kinds at the same table.
var agentKind string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "beliefsg: loading config:", err)
		cfg = &config.MatchConfig{}
	}

	cmd := &cobra.Command{
		Use:   "beliefsg",
		Short: "Play matches of a belief-state game between search agents",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Game, "game", cfg.Game, "game to play: kuhn, goofspiel, ministratego")
	flags.IntVar(&cfg.Episodes, "episodes", cfg.Episodes, "number of episodes to play")
	flags.Int64Var(&cfg.Seed, "seed", cfg.Seed, "RNG seed")
	flags.IntVar(&cfg.UCTSamples, "uct-samples", cfg.UCTSamples, "UCT determinized sample count")
	flags.IntVar(&cfg.UCTIterations, "uct-iterations", cfg.UCTIterations, "UCT playouts per determinized tree")
	flags.IntVar(&cfg.MCSamples, "mc-samples", cfg.MCSamples, "MC determinized sample count")
	flags.IntVar(&cfg.MCIterations, "mc-iterations", cfg.MCIterations, "MC rollout budget per candidate action")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	flags.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "address to serve /metrics on; empty disables it")
	flags.StringVar(&agentKind, "agent", "random", "agent kind for every seat: random, mc, uct")

	return cmd
}

func run(cfg *config.MatchConfig) error {
	logger := obslog.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	var recorder metrics.Recorder
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics listener stopped", zap.Error(err))
			}
		}()
		logger.Info("metrics listener started", zap.String("addr", cfg.MetricsAddr))
	}

	g, err := buildGame(cfg.Game)
	if err != nil {
		return err
	}

	for episode := 0; episode < cfg.Episodes; episode++ {
		rng := rand.New(rand.NewSource(cfg.Seed + int64(episode)))
		agents := buildAgents(g, rng, cfg)
		d := driver.New(g, agents, rng, driver.WithLogger(logger), driver.WithRecorder(recorder))

		for !d.IsTerminal() {
			ok, stepErr := d.Step()
			if stepErr != nil {
				logger.Error("episode aborted",
					zap.String("match_id", d.MatchID().String()),
					zap.Error(stepErr),
				)
				break
			}
			if !ok {
				break
			}
		}
		fmt.Printf("episode %d (%s): returns=%v\n", episode, d.MatchID(), d.Returns())
	}
	return nil
}

func buildGame(name string) (game.Game, error) {
	switch name {
	case "kuhn":
		return kuhn.New(), nil
	case "goofspiel":
		return goofspiel.New(2), nil
	case "ministratego":
		return ministratego.New(0), nil
	default:
		return nil, fmt.Errorf("beliefsg: unknown game %q", name)
	}
}

func buildAgents(g game.Game, rng *rand.Rand, cfg *config.MatchConfig) map[board.PlayerID]agent.Agent {
	agents := make(map[board.PlayerID]agent.Agent, g.NumPlayers())
	for p := board.PlayerID(0); int(p) < g.NumPlayers(); p++ {
		agents[p] = buildAgent(rng, cfg)
	}
	return agents
}

func buildAgent(rng *rand.Rand, cfg *config.MatchConfig) agent.Agent {
	switch agentKind {
	case "mc":
		return mc.New(rng, cfg.MCSamples, cfg.MCIterations, true)
	case "uct":
		return uct.New(rng, cfg.UCTSamples, cfg.UCTIterations, true)
	default:
		return randomagent.New(rng)
	}
}
