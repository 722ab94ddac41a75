package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"bt/internal/bluez"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Aliases: []string{"s"},
		Short:   "Show Bluetooth adapter status and connected devices",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(ctx, cmd)
		},
	}
}

func runStatus(ctx *commandContext, cmd *cobra.Command) error {
	return ctx.withClient(func(client bluez.Client) error {
		state, err := client.PowerState()
		if err != nil {
			return fmt.Errorf("unable to get adapter power state: %w", err)
		}
		connected, err := client.ConnectedDevices()
		if err != nil {
			return fmt.Errorf("unable to get connected devices: %w", err)
		}

		var b strings.Builder
		b.WriteString("bluetooth: ")
		b.WriteString(state.String())
		b.WriteString("\nconnected devices: ")
		for _, d := range connected {
			fmt.Fprintf(&b, "\n%s/%s", d.Alias, d.Address)
			if d.Battery != nil {
				fmt.Fprintf(&b, " (batt: %%%d)", *d.Battery)
			}
		}

		_, err = io.WriteString(cmd.OutOrStdout(), b.String())
		return err
	})
}
