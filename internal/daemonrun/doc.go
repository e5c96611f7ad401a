// Package daemonrun hosts the foreground process body behind "lumen daemon":
// signal handling, logger construction, preflight, the PID file, and the
// ordered start and shutdown of the daemon and its HTTP API.
package daemonrun
