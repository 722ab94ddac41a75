package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bt/internal/bluez"
)

func newListDevicesCommand(ctx *commandContext) *cobra.Command {
	var columnsFlag []string
	var valuesFlag []string
	var statusFlag string

	cmd := &cobra.Command{
		Use:     "list-devices",
		Aliases: []string{"ls"},
		Short:   "List known Bluetooth devices on the host",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			columns, err := parseColumns(columnsFlag, listDeviceColumns)
			if err != nil {
				return err
			}
			values, err := parseColumns(valuesFlag, listDeviceColumns)
			if err != nil {
				return err
			}

			var filter statusFilter
			if statusFlag != "" {
				if filter, err = parseStatusFilter(statusFlag); err != nil {
					return err
				}
			}

			mode, keys := selectListing(
				cmd.Flags().Changed("columns"),
				cmd.Flags().Changed("values"),
				columns, values, listDeviceColumns,
			)

			return ctx.withClient(func(client bluez.Client) error {
				devices, err := client.Devices()
				if err != nil {
					return fmt.Errorf("unable to get known devices: %w", err)
				}
				return writeListing(cmd.OutOrStdout(), filterByStatus(devices, filter), keys, mode)
			})
		},
	}

	cmd.Flags().StringSliceVarP(&columnsFlag, "columns", "c", nil,
		"Table output columns (alias, address, connected, trusted, bonded, paired)")
	cmd.Flags().StringSliceVarP(&valuesFlag, "values", "v", nil,
		"Terse output values, slash-joined per device")
	cmd.Flags().StringVarP(&statusFlag, "status", "s", "",
		"Only show devices with this status (connected, trusted, bonded, paired)")

	return cmd
}
