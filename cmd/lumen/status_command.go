package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lumen/internal/client"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon liveness, current mode, and timers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(c *client.Client) error {
				liveness, err := c.Status(cmd.Context())
				if err != nil {
					return err
				}
				state, err := c.State(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprint(out, renderStatus(ctx.apiAddress(), liveness, state, shouldColorize(out)))
				return nil
			})
		},
	}
}
