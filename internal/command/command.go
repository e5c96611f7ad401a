package command

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind tags the action a Command requests.
type Kind string

const (
	KindSetMode    Kind = "set-mode"
	KindSetTimer   Kind = "set-timer"
	KindClearTimer Kind = "clear-timer"
)

// Parameter keys understood by the mode state machine.
const (
	ParamMode  = "mode"
	ParamAt    = "at"
	ParamLabel = "label"
	ParamID    = "id"
)

// ErrEmptyKind is returned when a command is built without a kind.
var ErrEmptyKind = errors.New("command kind is required")

// Command is one requested action. The zero value is not valid; use New.
type Command struct {
	id        string
	kind      Kind
	params    map[string]any
	submitted time.Time
}

// New builds a Command with a fresh identifier. Unknown kinds are allowed;
// they are rejected later by the state machine, not here.
func New(kind Kind, params map[string]any) (Command, error) {
	kind = Kind(strings.TrimSpace(string(kind)))
	if kind == "" {
		return Command{}, ErrEmptyKind
	}
	return Command{
		id:        uuid.NewString(),
		kind:      kind,
		params:    cloneParams(params),
		submitted: time.Now().UTC(),
	}, nil
}

// SetMode builds a set-mode command for the given target value.
func SetMode(mode string) Command {
	cmd, _ := New(KindSetMode, map[string]any{ParamMode: mode})
	return cmd
}

func (c Command) ID() string { return c.id }

func (c Command) Kind() Kind { return c.kind }

// Submitted reports when the command was constructed.
func (c Command) Submitted() time.Time { return c.submitted }

// Param returns a copy of a single parameter value.
func (c Command) Param(key string) (any, bool) {
	value, ok := c.params[key]
	if !ok {
		return nil, false
	}
	return cloneValue(value), true
}

// StringParam returns a parameter that must be a string.
func (c Command) StringParam(key string) (string, bool) {
	value, ok := c.params[key]
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	return s, ok
}

// Params returns a copy of all parameters.
func (c Command) Params() map[string]any {
	return cloneParams(c.params)
}

// IsZero reports whether c was never constructed.
func (c Command) IsZero() bool {
	return c.id == "" && c.kind == ""
}

// cloneParams deep-copies the map and slice shapes produced by encoding/json
// so nested values cannot be mutated through a retained reference.
func cloneParams(params map[string]any) map[string]any {
	if params == nil {
		return nil
	}
	out := make(map[string]any, len(params))
	for key, value := range params {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return cloneParams(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
