// Package obslog wraps go.uber.org/zap with the small set of structured
// loggers this repo needs: the belief engine itself never logs (it is a
// pure library), only the driver and CLI do, and only at step
// boundaries, faults, and match completion.
package obslog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production-style JSON logger at the given level ("debug",
// "info", "warn", "error"; unrecognized values fall back to "info").
func New(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(level))
	logger, err := cfg.Build()
	if err != nil {
		// zap.NewProductionConfig().Build() only fails on a broken sink
		// configuration, which New never constructs; surfacing a working
		// no-op logger here is safer than panicking out of a logging helper.
		return zap.NewNop()
	}
	return logger
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Nop returns a logger that discards everything, for tests and library
// callers that don't want driver logging.
func Nop() *zap.Logger { return zap.NewNop() }
