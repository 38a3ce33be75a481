package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tormodhaugland/rocout/internal/config"
	"github.com/tormodhaugland/rocout/internal/logging"
	"github.com/tormodhaugland/rocout/internal/present"
	"github.com/tormodhaugland/rocout/internal/project"
	"github.com/tormodhaugland/rocout/internal/registry"
	"github.com/tormodhaugland/rocout/internal/workflow"
)

// app bundles what every command needs: config, the diagnostics log and
// the project registry.
type app struct {
	cfg      *config.Config
	loc      *time.Location
	logger   *zap.Logger
	closeLog func() error
	store    *registry.Store
	projects *project.Service
}

func openApp() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}

	store, err := registry.Open(cfg.RegistryPath())
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("failed to open project registry: %w", err)
	}

	return &app{
		cfg:      cfg,
		loc:      loc,
		logger:   logger,
		closeLog: closeLog,
		store:    store,
		projects: project.NewService(store, logger.Named("project")),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("closing registry", zap.Error(err))
	}
	a.closeLog()
}

func (a *app) controller(p workflow.Picker, n workflow.Notifier, v workflow.View) *workflow.Controller {
	return workflow.NewController(p, a.projects, n, v,
		workflow.WithLogger(a.logger.Named("workflow")),
		workflow.WithLocation(a.loc),
	)
}

// cardView prints each rendered project to w.
type cardView struct {
	w io.Writer
}

func (v cardView) Render(d present.Display) {
	fmt.Fprint(v.w, formatCard(d))
}

func formatCard(d present.Display) string {
	if !d.Visible(present.PanelProject) {
		return "No project.\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Project:    %s\n", d.Name)
	fmt.Fprintf(&sb, "Model dir:  %s\n", d.Directory)
	fmt.Fprintf(&sb, "Config dir: %s\n", d.ConfigDir)
	fmt.Fprintf(&sb, "Output dir: %s\n", d.OutputDir)
	fmt.Fprintf(&sb, "Created:    %s\n", d.CreatedAt)
	return sb.String()
}

type nopView struct{}

func (nopView) Render(present.Display) {}
