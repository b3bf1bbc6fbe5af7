package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tbrandt/devswitch/pkg/devswitch"
)

func init() {
	printCmd := &cobra.Command{
		Use:   "print [device]",
		Short: "Connect to one evdev device and print the events",
		RunE: func(cmd *cobra.Command, args []string) error {
			device := ""
			if len(args) > 0 {
				device = args[0]
			}
			return devswitch.PrintMain(device)
		},
		Args:                  cobra.RangeArgs(0, 1),
		DisableFlagsInUseLine: true,
	}
	rootCmd.AddCommand(printCmd)
}
