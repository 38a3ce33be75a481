package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:   "rocout",
	Short: "ROCout - register ROCETS model directories as projects",
	Long: `rocout lets you pick a ROCETS model directory with your system's
folder dialog and registers it as a project.

Running 'rocout' without arguments launches the TUI.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch TUI
		return tuiCmd.RunE(cmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/rocout/config.json)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
}
