// Package daemonctl starts and stops a background lumen daemon process from
// the CLI. Readiness and shutdown are observed through the HTTP API; the PID
// file written by the daemon is the handle for signalling it.
package daemonctl
