// Package logging assembles structured slog loggers and formatting helpers used
// across lumen.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and defines the standard field keys the worker and API server use
// to tag log lines with command identifiers, kinds, and modes. A no-op logger
// is provided for tests and wiring code that cannot fail.
package logging
