package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"lumen/internal/api"
	"lumen/internal/client"
)

func newTimerCommand(ctx *commandContext) *cobra.Command {
	timerCmd := &cobra.Command{
		Use:   "timer",
		Short: "Manage the timer list",
	}
	timerCmd.AddCommand(newTimerAddCommand(ctx))
	timerCmd.AddCommand(newTimerClearCommand(ctx))
	return timerCmd
}

func newTimerAddCommand(ctx *commandContext) *cobra.Command {
	var at, label, id string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or replace a timer entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			at = strings.TrimSpace(at)
			if _, err := time.Parse(time.RFC3339, at); err != nil {
				return fmt.Errorf("--at must be an RFC3339 timestamp: %w", err)
			}
			return ctx.withClient(func(c *client.Client) error {
				cmdID, err := c.SetTimer(cmd.Context(), api.TimerRequest{
					At:    at,
					Label: strings.TrimSpace(label),
					ID:    strings.TrimSpace(id),
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Timer at %s queued (command %s)\n", at, cmdID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Fire time (RFC3339)")
	cmd.Flags().StringVar(&label, "label", "", "Optional label")
	cmd.Flags().StringVar(&id, "id", "", "Timer id; reusing an id replaces that entry")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

func newTimerClearCommand(ctx *commandContext) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove one timer, or all timers when --id is omitted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(c *client.Client) error {
				cmdID, err := c.ClearTimer(cmd.Context(), id)
				if err != nil {
					return err
				}
				target := "all timers"
				if trimmed := strings.TrimSpace(id); trimmed != "" {
					target = "timer " + trimmed
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Clear of %s queued (command %s)\n", target, cmdID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Timer id to remove")
	return cmd
}
