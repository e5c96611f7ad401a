package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldEventType classifies a log line for filtering (e.g. command_rejected).
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step an operator should take.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldCommandID identifies a queued command.
	FieldCommandID = "command_id"
	// FieldCommandKind is the kind tag of a queued command.
	FieldCommandKind = "command_kind"
	// FieldMode is the operating mode after a transition.
	FieldMode = "mode"
	// FieldPreviousMode is the operating mode before a transition.
	FieldPreviousMode = "previous_mode"
	// FieldRemoteAddr is the client address of an API request.
	FieldRemoteAddr = "remote_addr"
)
