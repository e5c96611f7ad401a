package daemon

import (
	"log/slog"

	"lumen/internal/logging"
	"lumen/internal/mode"
)

// modeLogger records every mode transition and forwards it to next.
type modeLogger struct {
	logger *slog.Logger
	next   mode.Observer
}

func (o modeLogger) ModeChanged(from, to mode.Mode) {
	o.logger.Info("mode changed",
		logging.String(logging.FieldEventType, "mode_changed"),
		logging.String(logging.FieldPreviousMode, from.String()),
		logging.String(logging.FieldMode, to.String()),
	)
	if o.next != nil {
		o.next.ModeChanged(from, to)
	}
}
