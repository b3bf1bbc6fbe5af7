package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tbrandt/devswitch/pkg/devswitch"
)

func init() {
	config := devswitch.RunCmdConfig{}
	runCmd := &cobra.Command{
		Use:   "run config.yaml",
		Short: "Grab the configured device and switch its events between the manipulator and mouse outputs. Needs root permissions.",
		RunE: func(cmd *cobra.Command, args []string) error {
			config.ConfigFile = args[0]
			return devswitch.RunMain(cmd.Context(), config)
		},
		Args:                  cobra.ExactArgs(1),
		DisableFlagsInUseLine: true,
	}
	runCmd.Flags().BoolVarP(&config.Debug, "debug", "d", false, "Print per-event debug output")
	rootCmd.AddCommand(runCmd)
}
