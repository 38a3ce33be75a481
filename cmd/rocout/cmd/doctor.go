package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tormodhaugland/rocout/internal/config"
	"github.com/tormodhaugland/rocout/internal/doctor"
	"github.com/tormodhaugland/rocout/internal/picker"
	"github.com/tormodhaugland/rocout/internal/registry"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration, registry and dialog support",
	Long: `Verifies the config file, the data directory, the project registry and
whether a native folder dialog is available. Also lists registered
projects whose model directory has disappeared.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var report doctor.Report

		cfg, err := config.Load(cfgFile)
		if err != nil {
			report.Checks = append(report.Checks, doctor.Check{Name: "config", Status: doctor.StatusFail, Detail: err.Error()})
			return printDoctor(report)
		}
		report.Checks = append(report.Checks, doctor.Check{Name: "config", Status: doctor.StatusOK})
		report.Checks = append(report.Checks, doctor.CheckDataDir(cfg))
		report.Checks = append(report.Checks, doctor.CheckPicker(cfg, picker.Available()))

		store, err := registry.Open(cfg.RegistryPath())
		if err != nil {
			report.Checks = append(report.Checks, doctor.Check{Name: "registry", Status: doctor.StatusFail, Detail: err.Error()})
			return printDoctor(report)
		}
		defer store.Close()
		report.Checks = append(report.Checks, doctor.Check{Name: "registry", Status: doctor.StatusOK, Detail: store.Path()})

		missing, err := doctor.FindMissingDirectories(cmd.Context(), store)
		if err != nil {
			report.Checks = append(report.Checks, doctor.Check{Name: "model directories", Status: doctor.StatusFail, Detail: err.Error()})
		} else if len(missing) > 0 {
			report.Missing = missing
			report.Checks = append(report.Checks, doctor.Check{
				Name:   "model directories",
				Status: doctor.StatusWarn,
				Detail: fmt.Sprintf("%d registered project(s) point at missing directories", len(missing)),
			})
		} else {
			report.Checks = append(report.Checks, doctor.Check{Name: "model directories", Status: doctor.StatusOK})
		}

		return printDoctor(report)
	},
}

func printDoctor(report doctor.Report) error {
	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		for _, c := range report.Checks {
			line := fmt.Sprintf("[%-4s] %s", c.Status, c.Name)
			if c.Detail != "" {
				line += ": " + c.Detail
			}
			fmt.Println(line)
		}
		for _, m := range report.Missing {
			fmt.Printf("  - %s (%s)\n", m.Name, m.ModelDirectory)
		}
	}

	if report.Failed() {
		return fmt.Errorf("doctor found problems")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
