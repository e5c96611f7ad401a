// Package command defines the immutable Command value that producers hand to
// the worker through the command queue.
//
// A Command is a kind tag plus a parameter map. Construction copies the
// parameters so a Command can be shared between goroutines without further
// synchronization; accessors never expose the internal map.
package command
