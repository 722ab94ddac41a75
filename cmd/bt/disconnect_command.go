package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"bt/internal/bluez"
)

func newDisconnectCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "disconnect [ALIAS...]",
		Aliases: []string{"d"},
		Short:   "Disconnect from connected Bluetooth devices",
		Long: "Disconnect from connected Bluetooth devices.\n\n" +
			"With ALIAS arguments (comma or space separated), act on each named\n" +
			"device. Without any, list the connected devices and pick the ones to\n" +
			"disconnect interactively.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client bluez.Client) error {
				aliases := splitAliases(args)
				if len(aliases) == 0 {
					connected, err := client.ConnectedDevices()
					if err != nil {
						return fmt.Errorf("unable to get connected devices: %w", err)
					}
					if len(connected) == 0 {
						return errNoConnectedDevices
					}
					if aliases, err = promptDisconnectTargets(cmd.OutOrStdout(), cmd.InOrStdin(), connected); err != nil {
						return err
					}
				}

				out := cmd.OutOrStdout()
				for _, alias := range aliases {
					var message string
					if force {
						if err := client.Remove(alias); err != nil {
							return fmt.Errorf("unable to remove device: %w", err)
						}
						message = fmt.Sprintf("removed device %s (forced)\n", alias)
					} else {
						if err := client.Disconnect(alias); err != nil {
							return fmt.Errorf("unable to disconnect from device: %w", err)
						}
						message = fmt.Sprintf("disconnected from device %s\n", alias)
					}
					if _, err := io.WriteString(out, message); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false,
		"Remove the device(s) from the known devices list instead of disconnecting")

	return cmd
}

// splitAliases flattens the positional arguments, honoring comma-separated
// lists inside a single argument.
func splitAliases(args []string) []string {
	aliases := make([]string, 0, len(args))
	for _, arg := range args {
		for _, alias := range strings.Split(arg, ",") {
			alias = strings.TrimSpace(alias)
			if alias != "" {
				aliases = append(aliases, alias)
			}
		}
	}
	return aliases
}
