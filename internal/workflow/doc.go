// Package workflow runs the single command worker.
//
// The Worker waits on a stop channel with a bounded timeout, and on every
// wake drains the command queue to empty, applying each command to the mode
// state machine in dequeue order. Only after the queue is empty does it check
// whether stop was requested, so nothing queued before the stop request is
// left behind, and dispatch latency is bounded by one poll interval.
//
// The worker goroutine is the only code that touches the state machine.
// Readers get an immutable State published after each command through an
// atomic pointer. Rejected commands are logged and discarded; nothing is
// retried and nothing is reported back to the producer.
package workflow
