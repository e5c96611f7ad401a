package api

import (
	"time"

	"lumen/internal/workflow"
)

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// Response is the success envelope.
type Response struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// ErrorResponse is the failure envelope. Error duplicates the HTTP status.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   int    `json:"error"`
}

// CommandRequest is the body accepted by the generic creation endpoint.
type CommandRequest struct {
	Kind   string         `json:"kind"`
	Params map[string]any `json:"params,omitempty"`
}

// ModeRequest is the body accepted by the mode-change endpoint.
type ModeRequest struct {
	Mode string `json:"mode"`
}

// TimerRequest is the body accepted by the timer endpoint.
type TimerRequest struct {
	At    string `json:"at"`
	Label string `json:"label,omitempty"`
	ID    string `json:"id,omitempty"`
}

// Timer is one entry of the timer list.
type Timer struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	At    string `json:"at"`
}

// State describes the worker's view of the state machine.
type State struct {
	Running         bool    `json:"running"`
	Mode            string  `json:"mode"`
	Timers          []Timer `json:"timers"`
	Transitions     uint64  `json:"transitions"`
	Applied         uint64  `json:"applied"`
	Rejected        uint64  `json:"rejected"`
	LastCommandID   string  `json:"lastCommandId,omitempty"`
	LastCommandKind string  `json:"lastCommandKind,omitempty"`
	LastError       string  `json:"lastError,omitempty"`
	UpdatedAt       string  `json:"updatedAt,omitempty"`
}

// StateResponse wraps State in the success envelope.
type StateResponse struct {
	Message string `json:"message"`
	Data    State  `json:"data"`
}

// FromState converts a worker snapshot to its wire form.
func FromState(state workflow.State, running bool) State {
	timers := make([]Timer, 0, len(state.Timers))
	for _, entry := range state.Timers {
		timers = append(timers, Timer{
			ID:    entry.ID,
			Label: entry.Label,
			At:    entry.At.UTC().Format(time.RFC3339Nano),
		})
	}
	out := State{
		Running:         running,
		Mode:            state.Mode.String(),
		Timers:          timers,
		Transitions:     state.Transitions,
		Applied:         state.Applied,
		Rejected:        state.Rejected,
		LastCommandID:   state.LastCommandID,
		LastCommandKind: state.LastCommandKind,
		LastError:       state.LastError,
	}
	if !state.UpdatedAt.IsZero() {
		out.UpdatedAt = state.UpdatedAt.UTC().Format(dateTimeFormat)
	}
	return out
}
