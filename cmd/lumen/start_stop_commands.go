package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"lumen/internal/client"
	"lumen/internal/daemonctl"
)

const (
	startWaitTimeout = 10 * time.Second
	stopGracePeriod  = 10 * time.Second
)

func newStartCommand(ctx *commandContext) *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Launch the daemon in the background",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exe, err := os.Executable()
			if err != nil {
				return fmt.Errorf("resolve executable: %w", err)
			}
			opts := daemonctl.LaunchOptions{LogLevel: logLevel}
			if ctx.configSeen {
				opts.ConfigPath = ctx.configPath
			}
			return ctx.withClient(func(c *client.Client) error {
				result, err := daemonctl.EnsureStarted(cmd.Context(), c, exe, opts, startWaitTimeout)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				switch result.State {
				case daemonctl.StartStateAlreadyRunning:
					fmt.Fprintf(out, "Daemon already running at %s\n", ctx.apiAddress())
				default:
					fmt.Fprintf(out, "Daemon started at %s\n", ctx.apiAddress())
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "", "Override logging.level for the launched daemon")
	return cmd
}

func newStopCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop a background daemon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(c *client.Client) error {
				result, err := daemonctl.Stop(cmd.Context(), c, ctx.config.PIDPath(), stopGracePeriod)
				out := cmd.OutOrStdout()
				if errors.Is(err, daemonctl.ErrNotRunning) {
					fmt.Fprintln(out, "Daemon is not running")
					return nil
				}
				if err != nil {
					return err
				}
				if result.ForcedKill {
					fmt.Fprintf(out, "Daemon (pid %d) did not exit in time and was killed\n", result.PID)
					return nil
				}
				fmt.Fprintf(out, "Daemon (pid %d) stopped\n", result.PID)
				return nil
			})
		},
	}
}
