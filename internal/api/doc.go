// Package api defines wire-format types shared by the HTTP server and the CLI
// client.
//
// Every response is a JSON envelope. Success carries "message" and "data";
// failure carries "message" and "error", where "error" repeats the HTTP status
// code. State mirrors the worker's published snapshot with camelCase keys and
// RFC3339 timestamps.
package api
