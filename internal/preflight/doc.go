// Package preflight provides readiness checks for the filesystem paths and
// network resources the lumen daemon depends on.
//
// The daemon runner calls RunAll before taking the instance lock and refuses to
// start when any check fails. Individual checks are exported so the CLI can
// report them too.
package preflight
