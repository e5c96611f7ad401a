package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lumen/internal/client"
)

func newSendCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "send <kind> [key=value ...]",
		Short: "Submit a raw command",
		Long:  "Submit a command of any kind with string parameters. Unknown kinds are queued and rejected by the daemon when applied.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(args[1:])
			if err != nil {
				return err
			}
			return ctx.withClient(func(c *client.Client) error {
				id, err := c.Submit(cmd.Context(), args[0], params)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Command %s queued (command %s)\n", args[0], id)
				return nil
			})
		},
	}
}

// parseParams turns key=value arguments into a parameter map. A later key
// overrides an earlier one.
func parseParams(args []string) (map[string]any, error) {
	if len(args) == 0 {
		return nil, nil
	}
	params := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q (expected key=value)", arg)
		}
		params[key] = value
	}
	return params, nil
}
