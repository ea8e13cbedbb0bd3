// Package logger provides a single place to construct the structured loggers
// used throughout ignite. Every component takes a *zap.SugaredLogger rather
// than constructing its own, so callers can swap in a development logger, a
// no-op logger for tests, or a production logger without touching internal
// packages.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a structured logger tagged with the given service name. It uses
// a human-readable development encoder when IGNITE_DEBUG is set and a
// production JSON encoder otherwise, falling back to a no-op logger if zap
// can't build one (e.g. the process has no writable stderr) since a database
// shouldn't fail to open just because logging couldn't start.
func New(service string) *zap.SugaredLogger {
	if isDebug() {
		return NewDevelopment(service)
	}

	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	log, err := cfg.Build()
	if err != nil {
		log = zap.NewNop()
	}

	return log.Sugar().With("service", service)
}

// NewDevelopment builds a human-readable logger for local debugging,
// writing to stderr with capitalized level names.
func NewDevelopment(service string) *zap.SugaredLogger {
	log, err := zap.NewDevelopment()
	if err != nil {
		log = zap.NewNop()
	}
	return log.Sugar().With("service", service)
}

// NewNop returns a logger that discards everything, used by tests and by
// callers that don't want ignite's internal logging at all.
func NewNop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// isDebug reports whether the process environment asks for verbose logging.
// Kept as a small helper rather than inlined so the decision point is named.
func isDebug() bool {
	return os.Getenv("IGNITE_DEBUG") != ""
}
