package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tbrandt/devswitch/pkg/devswitch"
)

func init() {
	replayCmd := &cobra.Command{
		Use:   "replay config.yaml events.csv",
		Short: "Replay a csv event log through the switching pipeline and print which output each event would reach. This is useful for debugging.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return devswitch.ReplayMain(cmd.Context(), args[0], args[1])
		},
		Args:                  cobra.ExactArgs(2),
		DisableFlagsInUseLine: true,
	}
	rootCmd.AddCommand(replayCmd)
}
