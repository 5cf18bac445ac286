// Package config loads match configuration from the environment, with
// cmd/beliefsg's CLI flags layered on top taking precedence.
package config

import (
	"github.com/caarlos0/env/v11"

	"github.com/beliefsg/beliefsg/internal/bgerr"
)

// MatchConfig controls one run of the driver loop: which game, how many
// episodes, the search budgets for the two agent kinds, and ambient
// logging/metrics knobs.
type MatchConfig struct {
	Game          string `env:"GAME" envDefault:"kuhn"`
	Episodes      int    `env:"EPISODES" envDefault:"1"`
	Seed          int64  `env:"SEED" envDefault:"1"`
	UCTSamples    int    `env:"UCT_SAMPLES" envDefault:"10"`
	UCTIterations int    `env:"UCT_ITERATIONS" envDefault:"1000"`
	MCSamples     int    `env:"MC_SAMPLES" envDefault:"10"`
	MCIterations  int    `env:"MC_ITERATIONS" envDefault:"1000"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	MetricsAddr   string `env:"METRICS_ADDR" envDefault:""`
}

// Load populates a MatchConfig from BELIEFSG_-prefixed environment
// variables, falling back to each field's default.
func Load() (*MatchConfig, error) {
	cfg := &MatchConfig{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "BELIEFSG_"}); err != nil {
		return nil, bgerr.Wrap(err, "config: parsing environment")
	}
	return cfg, nil
}
