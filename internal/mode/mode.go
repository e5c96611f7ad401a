package mode

import (
	"errors"
	"fmt"
)

// Mode is the current operating state.
type Mode string

const (
	Static Mode = "STATIC"
	Clock  Mode = "CLOCK"
	Timer  Mode = "TIMER"
)

var (
	// ErrInvalidMode is returned for set-mode targets outside the known modes.
	ErrInvalidMode = errors.New("invalid mode")
	// ErrUnknownCommand is returned for command kinds the machine does not handle.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrInvalidTimer is returned for malformed set-timer or clear-timer parameters.
	ErrInvalidTimer = errors.New("invalid timer")
)

// All lists the modes in declaration order.
func All() []Mode {
	return []Mode{Static, Clock, Timer}
}

// Parse converts a raw value into a Mode. Matching is exact.
func Parse(value string) (Mode, error) {
	switch Mode(value) {
	case Static, Clock, Timer:
		return Mode(value), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, value)
	}
}

func (m Mode) String() string { return string(m) }
