package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/tormodhaugland/rocout/internal/picker"
	"github.com/tormodhaugland/rocout/internal/tui"
	"github.com/tormodhaugland/rocout/internal/workflow"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive TUI",
	Long: `Opens the terminal user interface. Press n to pick a model
directory in the native folder dialog and create a project from it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isatty.IsTerminal(os.Stdout.Fd()) {
			return fmt.Errorf("the TUI needs a terminal; use 'rocout new <dir>' instead")
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		// The terminal picker would fight the dashboard for the screen.
		p := picker.NewNative(a.cfg.DialogTitle, a.cfg.StartDir)

		return tui.Run(cmd.Context(), func(view workflow.View, notifier workflow.Notifier) tui.Runner {
			return a.controller(p, notifier, view)
		})
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
