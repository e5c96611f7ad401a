package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gofrs/flock"

	"lumen/internal/command"
	"lumen/internal/config"
	"lumen/internal/logging"
	"lumen/internal/mode"
	"lumen/internal/queue"
	"lumen/internal/workflow"
)

var (
	// ErrAlreadyRunning is returned by Start on a running daemon.
	ErrAlreadyRunning = errors.New("daemon already running")
	// ErrStopped is returned by Start once the stop signal has been raised.
	ErrStopped = errors.New("daemon already stopped")
	// ErrLocked is returned when another process holds the instance lock.
	ErrLocked = errors.New("another lumen daemon instance is already running")
)

// Daemon wires the queue, state machine, and worker into one lifecycle.
type Daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	queue   *queue.Queue
	machine *mode.Machine
	worker  *workflow.Worker

	lockPath string
	lock     *flock.Flock

	mu      sync.Mutex
	started bool
	stopped bool
	stop    *stopSignal
	done    chan struct{}

	running atomic.Bool
}

type options struct {
	observer   mode.Observer
	workerOpts []workflow.Option
}

// Option configures optional Daemon behavior.
type Option func(*options)

// WithObserver registers an observer notified after every mode transition.
// It runs on the worker goroutine.
func WithObserver(observer mode.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithWorkerOptions passes options through to the worker.
func WithWorkerOptions(opts ...workflow.Option) Option {
	return func(o *options) {
		o.workerOpts = append(o.workerOpts, opts...)
	}
}

// New constructs a daemon with initialized dependencies. Nothing runs until
// Start.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("daemon requires config")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	q := queue.New()
	machine := mode.NewMachine(modeLogger{
		logger: logging.NewComponentLogger(logger, "mode"),
		next:   o.observer,
	})
	worker := workflow.NewWorker(q, machine, logger, cfg.PollInterval(), o.workerOpts...)

	lockPath := cfg.LockPath()
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		queue:    q,
		machine:  machine,
		worker:   worker,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
		stop:     newStopSignal(),
	}, nil
}

// Start acquires the instance lock and launches the worker goroutine.
// Cancelling ctx raises the stop signal; Stop must still be called to release
// the lock.
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running.Load() {
		return ErrAlreadyRunning
	}
	if d.started {
		return ErrStopped
	}

	if err := d.cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}
	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return ErrLocked
	}

	d.started = true
	d.done = make(chan struct{})
	d.running.Store(true)
	go func() {
		defer close(d.done)
		defer d.running.Store(false)
		d.worker.Run(d.stop.Done())
	}()

	if ctx != nil {
		done := d.done
		go func() {
			select {
			case <-ctx.Done():
				d.stop.Set()
			case <-done:
			}
		}()
	}

	d.logger.Info("lumen daemon started",
		logging.String("lock", d.lockPath),
		logging.Duration("poll_interval", d.worker.Interval()),
	)
	return nil
}

// Stop raises the stop signal, waits for the worker to exit, and releases the
// lock. Commands still queued afterwards are never applied. Safe to call more
// than once.
func (d *Daemon) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.started || d.stopped {
		return
	}
	d.stopped = true
	d.stop.Set()
	<-d.done

	if err := d.lock.Unlock(); err != nil {
		logging.WarnWithContext(d.logger, "failed to release daemon lock", "lock_release_failed",
			logging.String("lock", d.lockPath),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "remove the lock file if no daemon is running"),
		)
	}

	if pending := d.queue.Len(); pending > 0 {
		logging.WarnWithContext(d.logger, "commands left unapplied at shutdown", "queue_abandoned",
			logging.Int("pending", pending),
			logging.String(logging.FieldErrorHint, "resubmit after restarting the daemon"),
			logging.String(logging.FieldImpact, "queued commands were discarded"),
		)
	}
	state := d.worker.State()
	d.logger.Info("lumen daemon stopped",
		logging.String(logging.FieldMode, state.Mode.String()),
		logging.Uint64("applied", state.Applied),
		logging.Uint64("rejected", state.Rejected),
	)
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	return nil
}

// Enqueue hands a command to the worker. It never blocks on the worker and
// never fails; validation happens when the command is applied.
func (d *Daemon) Enqueue(cmd command.Command) {
	d.queue.Enqueue(cmd)
}

// Pending reports how many commands are waiting in the queue.
func (d *Daemon) Pending() int {
	return d.queue.Len()
}

// State returns the worker's last published state.
func (d *Daemon) State() workflow.State {
	return d.worker.State()
}

// Running reports whether the worker goroutine is active.
func (d *Daemon) Running() bool {
	return d.running.Load()
}

// LockPath returns the instance lock location.
func (d *Daemon) LockPath() string {
	return d.lockPath
}
