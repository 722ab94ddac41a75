package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"bt/internal/bluez"
	"bt/internal/discovery"
)

func newConnectCommand(ctx *commandContext) *cobra.Command {
	var durationFlag uint8
	var containsName string

	cmd := &cobra.Command{
		Use:     "connect [ALIAS]",
		Aliases: []string{"c"},
		Short:   "Connect to a Bluetooth device",
		Long: "Connect to a Bluetooth device.\n\n" +
			"With an ALIAS, connect to that known device directly. Without one,\n" +
			"run a discovery scan first and pick the device interactively.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client bluez.Client) error {
				var alias string
				var session *discovery.Session

				if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
					alias = args[0]
				} else {
					session = discovery.NewSession(client, ctx.scanLockPath(), ctx.ensureLogger())
					if err := session.Start(); err != nil {
						return fmt.Errorf("unable to start device discovery: %w", err)
					}
					duration := ctx.scanDuration(cmd.Flags().Changed("duration"), durationFlag)
					session.Wait(time.Duration(duration) * time.Second)

					devices, err := session.Devices()
					if err != nil {
						return fmt.Errorf("unable to get discovered devices: %w", err)
					}
					if containsName != "" {
						devices = filterByName(devices, containsName)
					}

					alias, err = promptConnectTarget(cmd.OutOrStdout(), cmd.InOrStdin(), devices)
					if err != nil {
						return err
					}
				}

				if err := client.Connect(alias); err != nil {
					return fmt.Errorf("unable to connect to device: %w", err)
				}
				if _, err := io.WriteString(cmd.OutOrStdout(), "connected to device: "+alias); err != nil {
					return err
				}

				// Interactive mode leaves discovery running until the
				// connect finishes; a stop failure is fatal even though the
				// success message is already on screen.
				if session != nil {
					if err := session.Stop(); err != nil {
						return fmt.Errorf("unable to stop device discovery: %w", err)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().Uint8VarP(&durationFlag, "duration", "d", 5,
		"Interactive scan duration in seconds (ignored with an ALIAS)")
	cmd.Flags().StringVarP(&containsName, "contains-name", "n", "",
		"Only offer discovered devices whose alias contains this substring (ignored with an ALIAS)")

	return cmd
}

func filterByName(devices []bluez.Device, substring string) []bluez.Device {
	kept := make([]bluez.Device, 0, len(devices))
	for _, d := range devices {
		if strings.Contains(d.Alias, substring) {
			kept = append(kept, d)
		}
	}
	return kept
}
