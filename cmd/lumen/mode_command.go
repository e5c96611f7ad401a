package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lumen/internal/client"
	"lumen/internal/mode"
)

func newModeCommand(ctx *commandContext) *cobra.Command {
	names := make([]string, 0, len(mode.All()))
	for _, m := range mode.All() {
		names = append(names, m.String())
	}

	return &cobra.Command{
		Use:       "mode <MODE>",
		Short:     "Request a display mode change",
		Long:      fmt.Sprintf("Request a display mode change. Valid modes: %s. Names are case-sensitive; the daemon accepts any value and rejects invalid ones when applying.", strings.Join(names, ", ")),
		Args:      cobra.ExactArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(c *client.Client) error {
				id, err := c.SetMode(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Mode change to %s queued (command %s)\n", args[0], id)
				return nil
			})
		},
	}
}
