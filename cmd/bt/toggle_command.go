package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bt/internal/bluez"
)

func newToggleCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle",
		Aliases: []string{"t"},
		Short:   "Toggle the Bluetooth adapter on or off",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client bluez.Client) error {
				state, err := client.TogglePower()
				if err != nil {
					return fmt.Errorf("unable to toggle adapter power state: %w", err)
				}
				_, err = io.WriteString(cmd.OutOrStdout(), "bluetooth: "+state.String())
				return err
			})
		},
	}
}
