package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/tormodhaugland/rocout/internal/model"
	"github.com/tormodhaugland/rocout/internal/present"
	"github.com/tormodhaugland/rocout/internal/registry"
)

var showCmd = &cobra.Command{
	Use:   "show [query]",
	Short: "Show project details",
	Long: `Displays the most recently created project, or the registered
project whose name best matches the fuzzy query.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		var rec model.ProjectRecord
		if len(args) == 0 {
			rec, err = a.projects.Latest(cmd.Context())
			if errors.Is(err, registry.ErrNotFound) {
				return fmt.Errorf("no projects yet (run 'rocout new')")
			}
			if err != nil {
				return err
			}
		} else {
			records, err := a.projects.List(cmd.Context())
			if err != nil {
				return err
			}
			var ok bool
			rec, ok = bestMatch(args[0], records)
			if !ok {
				return fmt.Errorf("project not found: %s", args[0])
			}
		}

		if jsonOut {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		}

		fmt.Print(formatCard(present.Render(rec, a.loc)))
		return nil
	},
}

func bestMatch(query string, records []model.ProjectRecord) (model.ProjectRecord, bool) {
	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.Name
	}

	matches := fuzzy.Find(query, names)
	if len(matches) == 0 {
		return model.ProjectRecord{}, false
	}
	return records[matches[0].Index], true
}

func init() {
	rootCmd.AddCommand(showCmd)
}
