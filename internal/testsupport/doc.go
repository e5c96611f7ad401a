// Package testsupport holds fixtures shared by tests across packages: isolated
// configs, config files on disk, and a running daemon with its API server.
package testsupport
