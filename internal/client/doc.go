// Package client talks to a running lumen daemon over its HTTP API. The CLI
// uses it for every command except "daemon" itself.
package client
