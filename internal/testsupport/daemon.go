package testsupport

import (
	"context"
	"testing"

	"lumen/internal/config"
	"lumen/internal/daemon"
	"lumen/internal/logging"
)

// StartDaemon starts a daemon and its API server for cfg. Both are stopped
// when the test ends.
func StartDaemon(t testing.TB, cfg *config.Config, opts ...daemon.Option) (*daemon.Daemon, *daemon.APIServer) {
	t.Helper()

	logger := logging.NewNop()
	d, err := daemon.New(cfg, logger, opts...)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	if err := d.Start(ctx); err != nil {
		cancel()
		t.Fatalf("daemon.Start: %v", err)
	}
	srv, err := daemon.NewAPIServer(cfg, d, logger)
	if err != nil {
		cancel()
		d.Stop()
		t.Fatalf("daemon.NewAPIServer: %v", err)
	}
	if err := srv.Start(ctx); err != nil {
		cancel()
		d.Stop()
		t.Fatalf("api server start: %v", err)
	}

	t.Cleanup(func() {
		cancel()
		srv.Stop()
		d.Stop()
	})
	return d, srv
}
