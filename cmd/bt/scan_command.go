package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"bt/internal/bluez"
	"bt/internal/discovery"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var durationFlag uint8
	var columnsFlag []string
	var valuesFlag []string

	cmd := &cobra.Command{
		Use:     "scan",
		Aliases: []string{"sc"},
		Short:   "Scan for nearby Bluetooth devices",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			columns, err := parseColumns(columnsFlag, scanColumns)
			if err != nil {
				return err
			}
			values, err := parseColumns(valuesFlag, scanColumns)
			if err != nil {
				return err
			}
			mode, keys := selectListing(
				cmd.Flags().Changed("columns"),
				cmd.Flags().Changed("values"),
				columns, values, scanColumns,
			)

			duration := ctx.scanDuration(cmd.Flags().Changed("duration"), durationFlag)

			return ctx.withClient(func(client bluez.Client) error {
				session := discovery.NewSession(client, ctx.scanLockPath(), ctx.ensureLogger())
				if err := session.Start(); err != nil {
					return fmt.Errorf("unable to start device discovery: %w", err)
				}
				session.Wait(time.Duration(duration) * time.Second)

				devices, err := session.Devices()
				if err != nil {
					return fmt.Errorf("unable to get discovered devices: %w", err)
				}
				if err := writeListing(cmd.OutOrStdout(), devices, keys, mode); err != nil {
					return err
				}

				// A stop failure is fatal even though the listing is already
				// on screen.
				if err := session.Stop(); err != nil {
					return fmt.Errorf("unable to stop device discovery: %w", err)
				}
				return nil
			})
		},
	}

	cmd.Flags().Uint8VarP(&durationFlag, "duration", "d", 5, "Scan duration in seconds")
	cmd.Flags().StringSliceVarP(&columnsFlag, "columns", "c", nil,
		"Table output columns (alias, address, rssi)")
	cmd.Flags().StringSliceVarP(&valuesFlag, "values", "v", nil,
		"Terse output values, slash-joined per device")

	return cmd
}
