// Package logging holds the process-wide zerolog logger shared by the
// collection packages and the CLI.
package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// Logger is the global logger. It discards everything until a caller
// installs another logger with SetGlobalLogger.
var Logger zerolog.Logger

func init() {
	SetGlobalLogger(zerolog.Nop())
}

// SetGlobalLogger replaces the global logger and makes it the default
// context logger.
func SetGlobalLogger(logger zerolog.Logger) {
	Logger = logger
	zerolog.DefaultContextLogger = &Logger
}

// Trace and Debug log through the global logger. The collection packages
// only emit events at these levels.
func Trace() *zerolog.Event { return Logger.Trace() }

func Debug() *zerolog.Event { return Logger.Debug() }

// Ctx returns the logger attached to ctx, falling back to the global logger.
func Ctx(ctx context.Context) *zerolog.Logger { return zerolog.Ctx(ctx) }
