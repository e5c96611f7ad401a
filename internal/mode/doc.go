// Package mode implements the operating-mode state machine driven by the
// command worker.
//
// A Machine starts in STATIC and moves between STATIC, CLOCK, and TIMER only
// when a set-mode command is applied. It also owns the timer list, which
// set-timer and clear-timer mutate in any mode; the list survives mode
// switches. The list is storage only: nothing here schedules or fires timers.
//
// A Machine is not safe for concurrent use. The worker goroutine is its sole
// owner, so no locking is done here.
package mode
