// Package logger wraps zap construction so callers get a configured
// structured logger with one call.
package logger

import (
	"go.uber.org/zap"
)

// Logger carries the underlying zap logger.
type Logger struct {
	// Log is the structured logger to pass into components.
	Log *zap.Logger
}

// New returns a Logger with a no-op zap logger; call Init to make it
// real.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init replaces the logger with a production zap logger at the given
// level ("debug", "info", "warn", "error").
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	log, err := cfg.Build()
	if err != nil {
		return err
	}

	l.Log = log
	return nil
}
