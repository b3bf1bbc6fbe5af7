package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tbrandt/devswitch/pkg/devswitch"
)

func init() {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List input devices which can emit key or relative-axis events",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(devswitch.ListDevices())
			return nil
		},
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
	}
	rootCmd.AddCommand(listCmd)
}
