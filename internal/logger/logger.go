// Package logger configures structured logging for the console.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps the configured zap logger.
type Logger struct {
	// Log is the underlying zap logger, nil until Init is called.
	Log *zap.Logger
}

// New returns an uninitialized Logger.
func New() *Logger {
	return &Logger{}
}

// Init builds a production zap logger at the given level ("Debug", "Info",
// "Warn", "Error"). It must be called before Log is used.
func (l *Logger) Init(level string) error {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true

	log, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	l.Log = log
	return nil
}
