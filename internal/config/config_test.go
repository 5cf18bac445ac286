package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game != "kuhn" {
		t.Fatalf("expected default game kuhn, got %q", cfg.Game)
	}
	if cfg.Episodes != 1 {
		t.Fatalf("expected default episodes 1, got %d", cfg.Episodes)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level info, got %q", cfg.LogLevel)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("BELIEFSG_GAME", "goofspiel")
	t.Setenv("BELIEFSG_EPISODES", "25")
	t.Setenv("BELIEFSG_SEED", "99")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game != "goofspiel" {
		t.Fatalf("expected goofspiel, got %q", cfg.Game)
	}
	if cfg.Episodes != 25 {
		t.Fatalf("expected 25 episodes, got %d", cfg.Episodes)
	}
	if cfg.Seed != 99 {
		t.Fatalf("expected seed 99, got %d", cfg.Seed)
	}
}
