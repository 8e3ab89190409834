package fxlog

import (
	"log/slog"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// Logger routes fx lifecycle events through the process-wide slog logger.
func Logger() fx.Option {
	return fx.WithLogger(func() fxevent.Logger {
		return &fxevent.SlogLogger{Logger: slog.With(slog.String("component", "fx"))}
	})
}
