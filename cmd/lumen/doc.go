// Command lumen is the command-line front end for the lumen daemon.
//
// "lumen daemon" runs the daemon in the foreground. Every other subcommand
// talks to a running daemon over its HTTP API: status and state inspection,
// mode changes, timer management, and raw command submission. The config
// subcommands work offline against the TOML file.
package main
