package mode

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"lumen/internal/command"
)

// TimerEntry is one scheduled timer in the timer list.
type TimerEntry struct {
	ID    string    `json:"id"`
	Label string    `json:"label,omitempty"`
	At    time.Time `json:"at"`
}

// Observer is notified after every applied set-mode command, including
// transitions into the mode that is already current.
type Observer interface {
	ModeChanged(from, to Mode)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(from, to Mode)

func (f ObserverFunc) ModeChanged(from, to Mode) { f(from, to) }

// Snapshot is a point-in-time copy of machine state.
type Snapshot struct {
	Mode        Mode         `json:"mode"`
	Timers      []TimerEntry `json:"timers"`
	Transitions uint64       `json:"transitions"`
}

// Machine holds the current mode and the timer list.
type Machine struct {
	mode        Mode
	timers      []TimerEntry
	transitions uint64
	observer    Observer
}

// NewMachine returns a machine in STATIC mode. observer may be nil.
func NewMachine(observer Observer) *Machine {
	return &Machine{mode: Static, observer: observer}
}

// Mode returns the current mode.
func (m *Machine) Mode() Mode {
	return m.mode
}

// Timers returns a copy of the timer list.
func (m *Machine) Timers() []TimerEntry {
	return slices.Clone(m.timers)
}

// Snapshot copies the machine state.
func (m *Machine) Snapshot() Snapshot {
	timers := slices.Clone(m.timers)
	if timers == nil {
		timers = []TimerEntry{}
	}
	return Snapshot{Mode: m.mode, Timers: timers, Transitions: m.transitions}
}

// Apply executes one command. A returned error means the command was
// rejected and the machine is unchanged.
func (m *Machine) Apply(cmd command.Command) error {
	switch cmd.Kind() {
	case command.KindSetMode:
		return m.applySetMode(cmd)
	case command.KindSetTimer:
		return m.applySetTimer(cmd)
	case command.KindClearTimer:
		return m.applyClearTimer(cmd)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Kind())
	}
}

func (m *Machine) applySetMode(cmd command.Command) error {
	raw, ok := cmd.StringParam(command.ParamMode)
	if !ok {
		value, _ := cmd.Param(command.ParamMode)
		return fmt.Errorf("%w: %v", ErrInvalidMode, value)
	}
	target, err := Parse(raw)
	if err != nil {
		return err
	}
	previous := m.mode
	m.mode = target
	m.transitions++
	if m.observer != nil {
		m.observer.ModeChanged(previous, target)
	}
	return nil
}

func (m *Machine) applySetTimer(cmd command.Command) error {
	rawAt, ok := cmd.StringParam(command.ParamAt)
	if !ok {
		return fmt.Errorf("%w: %s must be an RFC3339 string", ErrInvalidTimer, command.ParamAt)
	}
	at, err := time.Parse(time.RFC3339, rawAt)
	if err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrInvalidTimer, command.ParamAt, err)
	}

	entry := TimerEntry{At: at.UTC()}
	if _, present := cmd.Param(command.ParamLabel); present {
		label, ok := cmd.StringParam(command.ParamLabel)
		if !ok {
			return fmt.Errorf("%w: %s must be a string", ErrInvalidTimer, command.ParamLabel)
		}
		entry.Label = label
	}
	if _, present := cmd.Param(command.ParamID); present {
		id, ok := cmd.StringParam(command.ParamID)
		if !ok || id == "" {
			return fmt.Errorf("%w: %s must be a non-empty string", ErrInvalidTimer, command.ParamID)
		}
		entry.ID = id
	} else {
		entry.ID = uuid.NewString()
	}

	// Re-using an id replaces that entry in place.
	if idx := m.timerIndex(entry.ID); idx >= 0 {
		m.timers[idx] = entry
		return nil
	}
	m.timers = append(m.timers, entry)
	return nil
}

func (m *Machine) applyClearTimer(cmd command.Command) error {
	if _, present := cmd.Param(command.ParamID); !present {
		m.timers = nil
		return nil
	}
	id, ok := cmd.StringParam(command.ParamID)
	if !ok {
		return fmt.Errorf("%w: %s must be a string", ErrInvalidTimer, command.ParamID)
	}
	if idx := m.timerIndex(id); idx >= 0 {
		m.timers = slices.Delete(m.timers, idx, idx+1)
	}
	return nil
}

func (m *Machine) timerIndex(id string) int {
	return slices.IndexFunc(m.timers, func(entry TimerEntry) bool { return entry.ID == id })
}
