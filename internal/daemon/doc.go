// Package daemon owns the long-running lumen process: the command queue, the
// mode state machine, the worker goroutine that connects them, and the HTTP
// API that feeds the queue.
//
// Daemon enforces single-instance execution with a flock on
// <runtime_dir>/lumen.lock. Start launches the worker; Stop raises the stop
// signal, waits for the worker to drain what it has already picked up, and
// releases the lock. The stop signal is one-shot, so a stopped Daemon is not
// restarted; construct a new one instead.
//
// APIServer accepts submissions and hands them to Daemon.Enqueue. It never
// waits on the worker: a 200 response means "queued", not "applied".
package daemon
