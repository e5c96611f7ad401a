package daemonrun

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"lumen/internal/config"
	"lumen/internal/daemon"
	"lumen/internal/logging"
	"lumen/internal/preflight"
)

// Options configures daemon process runtime behavior.
type Options struct {
	// LogLevel overrides the configured level when non-empty.
	LogLevel    string
	Development bool
	// Logger replaces the config-derived logger when set.
	Logger *slog.Logger

	afterAPIStop func(*daemon.Daemon)
}

// Run starts the lumen daemon and blocks until ctx is cancelled or the
// process receives SIGINT or SIGTERM.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return errors.New("config is required")
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := opts.Logger
	if logger == nil {
		runCfg := *cfg
		if level := strings.TrimSpace(opts.LogLevel); level != "" {
			runCfg.Logging.Level = level
		}
		if opts.Development {
			runCfg.Logging.Development = true
		}
		var err error
		logger, err = logging.NewFromConfig(&runCfg)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}
	if err := preflight.Err(preflight.RunAll(signalCtx, cfg)); err != nil {
		logging.ErrorWithContext(logger, "preflight checks failed", "preflight_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "fix the reported paths or choose another api.bind"),
		)
		return err
	}

	d, err := daemon.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}
	defer d.Close()

	// The worker outlives signalCtx so requests still draining from the API
	// are applied; d.Stop raises the stop signal after the API is down.
	if err := d.Start(context.WithoutCancel(cmdCtx)); err != nil {
		return fmt.Errorf("start daemon: %w", err)
	}

	// Written only once the instance lock is held, so a losing second
	// instance never touches the running daemon's PID file.
	pidPath := cfg.PIDPath()
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	apiServer, err := daemon.NewAPIServer(cfg, d, logger)
	if err != nil {
		return fmt.Errorf("create api server: %w", err)
	}
	if err := apiServer.Start(signalCtx); err != nil {
		return fmt.Errorf("start api server: %w", err)
	}

	<-signalCtx.Done()
	logger.Info("lumen daemon shutting down")
	apiServer.Stop()
	if opts.afterAPIStop != nil {
		opts.afterAPIStop(d)
	}
	d.Stop()
	return nil
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}
