package workflow

import (
	"errors"
	"slices"
	"time"

	"lumen/internal/mode"
)

// State is the worker's published view of the state machine plus dispatch
// counters. LastError keeps the most recent rejection until another one
// replaces it.
type State struct {
	Mode            mode.Mode
	Timers          []mode.TimerEntry
	Transitions     uint64
	Applied         uint64
	Rejected        uint64
	LastCommandID   string
	LastCommandKind string
	LastError       string
	UpdatedAt       time.Time
}

func (s *State) clone() State {
	if s == nil {
		return State{}
	}
	out := *s
	out.Timers = slices.Clone(s.Timers)
	return out
}

func rejectionHint(err error) string {
	switch {
	case errors.Is(err, mode.ErrInvalidMode):
		return "use one of STATIC, CLOCK, TIMER"
	case errors.Is(err, mode.ErrUnknownCommand):
		return "use set-mode, set-timer, or clear-timer"
	case errors.Is(err, mode.ErrInvalidTimer):
		return "set-timer needs an RFC3339 'at'; ids and labels must be strings"
	default:
		return "check logs for details"
	}
}
