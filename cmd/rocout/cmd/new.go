package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tormodhaugland/rocout/internal/model"
	"github.com/tormodhaugland/rocout/internal/notify"
	"github.com/tormodhaugland/rocout/internal/picker"
	"github.com/tormodhaugland/rocout/internal/workflow"
)

var (
	newName   string
	newDialog bool
)

var errNotCreated = errors.New("project not created")

var newCmd = &cobra.Command{
	Use:   "new [model-dir]",
	Short: "Create a new project from a model directory",
	Long: `Registers a model directory as a project.
If no directory is given, opens a directory picker (native dialog or
terminal browser, depending on config). The project name defaults to
the directory's base name.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		var p workflow.Picker
		if len(args) == 1 {
			p = picker.Fixed{Path: args[0]}
		} else {
			p = picker.New(a.cfg, true)
		}
		if newName != "" {
			p = withName(p, newName)
		}

		var n workflow.Notifier = notify.NewWriter(os.Stderr)
		if newDialog {
			n = notify.NewDialog("rocout")
		}

		var v workflow.View = cardView{w: os.Stdout}
		if jsonOut {
			v = nopView{}
		}

		ctrl := a.controller(p, n, v)
		outcome, err := ctrl.RunNewProject(cmd.Context())
		if err != nil {
			return err
		}

		switch outcome {
		case workflow.OutcomeCancelled:
			fmt.Fprintln(os.Stderr, "Cancelled.")
			return nil
		case workflow.OutcomeFailed:
			return errNotCreated
		}

		if jsonOut {
			rec, _ := ctrl.State().Project()
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		}
		return nil
	},
}

// withName overrides the suggested project name of a successful selection.
func withName(p workflow.Picker, name string) picker.PickerFunc {
	name = strings.TrimSpace(name)
	return func(ctx context.Context) (model.DirectorySelection, error) {
		sel, err := p.PickDirectory(ctx)
		if err != nil || !sel.Succeeded {
			return sel, err
		}
		sel.SuggestedName = name
		return sel, nil
	}
}

func init() {
	newCmd.Flags().StringVar(&newName, "name", "", "project name (default: directory name)")
	newCmd.Flags().BoolVar(&newDialog, "dialog", false, "report errors in a native message box")
	rootCmd.AddCommand(newCmd)
}
