package workflow

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"lumen/internal/command"
	"lumen/internal/logging"
	"lumen/internal/mode"
)

// Source yields queued commands without blocking.
type Source interface {
	TryDequeue() (command.Command, bool)
}

// Applier is the state the worker drives.
type Applier interface {
	Apply(command.Command) error
	Snapshot() mode.Snapshot
}

// Worker is the sequential consumer of the command queue.
type Worker struct {
	source   Source
	machine  Applier
	logger   *slog.Logger
	interval time.Duration

	onApplied func(command.Command, error)

	// Written only by the worker goroutine.
	applied  uint64
	rejected uint64

	state atomic.Pointer[State]
}

// Option configures optional Worker behavior.
type Option func(*Worker)

// WithOnApplied registers a hook called on the worker goroutine after each
// command, with the rejection error or nil.
func WithOnApplied(fn func(command.Command, error)) Option {
	return func(w *Worker) {
		w.onApplied = fn
	}
}

// NewWorker constructs a worker. A non-positive interval falls back to 50ms.
func NewWorker(source Source, machine Applier, logger *slog.Logger, interval time.Duration, opts ...Option) *Worker {
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	w := &Worker{
		source:   source,
		machine:  machine,
		logger:   logging.NewComponentLogger(logger, "worker"),
		interval: interval,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.publish(command.Command{}, nil)
	return w
}

// Interval returns the polling cadence.
func (w *Worker) Interval() time.Duration {
	return w.interval
}

// State returns the most recently published state.
func (w *Worker) State() State {
	return w.state.Load().clone()
}

// Run processes commands until stop is closed. Every command available when
// stop is observed is applied before Run returns.
func (w *Worker) Run(stop <-chan struct{}) {
	w.logger.Info("command worker started", logging.Duration("poll_interval", w.interval))

	timer := time.NewTimer(w.interval)
	defer timer.Stop()

	for {
		stopped := false
		select {
		case <-stop:
			stopped = true
		case <-timer.C:
		}

		w.drain()

		if stopped || closed(stop) {
			w.logger.Info("command worker stopped",
				logging.Uint64("applied", w.applied),
				logging.Uint64("rejected", w.rejected),
			)
			return
		}
		timer.Reset(w.interval)
	}
}

func (w *Worker) drain() int {
	count := 0
	for {
		cmd, ok := w.source.TryDequeue()
		if !ok {
			return count
		}
		w.process(cmd)
		count++
	}
}

func (w *Worker) process(cmd command.Command) {
	err := w.apply(cmd)
	if err != nil {
		w.rejected++
		logging.WarnWithContext(w.logger, "command rejected", "command_rejected",
			logging.String(logging.FieldCommandID, cmd.ID()),
			logging.String(logging.FieldCommandKind, string(cmd.Kind())),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, rejectionHint(err)),
			logging.String(logging.FieldImpact, "command discarded; state unchanged"),
		)
	} else {
		w.applied++
		w.logger.Debug("command applied",
			logging.String(logging.FieldCommandID, cmd.ID()),
			logging.String(logging.FieldCommandKind, string(cmd.Kind())),
			logging.Duration("latency", time.Since(cmd.Submitted())),
		)
	}
	w.publish(cmd, err)
	if w.onApplied != nil {
		w.onApplied(cmd, err)
	}
}

// apply shields the loop from panics raised by mode observers.
func (w *Worker) apply(cmd command.Command) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("apply %s panicked: %v", cmd.Kind(), r)
		}
	}()
	return w.machine.Apply(cmd)
}

func (w *Worker) publish(cmd command.Command, err error) {
	snap := w.machine.Snapshot()
	state := &State{
		Mode:        snap.Mode,
		Timers:      snap.Timers,
		Transitions: snap.Transitions,
		Applied:     w.applied,
		Rejected:    w.rejected,
		UpdatedAt:   time.Now().UTC(),
	}
	if previous := w.state.Load(); previous != nil {
		state.LastError = previous.LastError
		state.LastCommandID = previous.LastCommandID
		state.LastCommandKind = previous.LastCommandKind
	}
	if !cmd.IsZero() {
		state.LastCommandID = cmd.ID()
		state.LastCommandKind = string(cmd.Kind())
	}
	if err != nil {
		state.LastError = err.Error()
	}
	w.state.Store(state)
}

func closed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}
