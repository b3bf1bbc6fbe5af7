package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tbrandt/devswitch/pkg/devswitch"
)

func init() {
	csvCmd := &cobra.Command{
		Use:   "csv [device]",
		Short: "Connect to one evdev device and print the events in csv format. Needs root permissions.",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			sourceDev, err := devswitch.GetDeviceFromPath(path)
			if err != nil {
				return err
			}
			return devswitch.Csv(sourceDev)
		},
		Args:                  cobra.RangeArgs(0, 1),
		DisableFlagsInUseLine: true,
	}
	rootCmd.AddCommand(csvCmd)
}
