package cmd

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tormodhaugland/rocout/internal/model"
	"github.com/tormodhaugland/rocout/internal/picker"
	"github.com/tormodhaugland/rocout/internal/present"
	"github.com/tormodhaugland/rocout/internal/registry"
)

func TestFormatCard(t *testing.T) {
	d := present.Render(model.ProjectRecord{
		Name:           "a",
		ModelDirectory: "/models/a",
		CreatedAt:      "2025-10-15T14:30:00",
	}, time.UTC)

	want := "Project:    a\n" +
		"Model dir:  /models/a\n" +
		"Config dir: /models/a/config\n" +
		"Output dir: /models/a/output\n" +
		"Created:    Oct 15, 2025 — 2:30 PM\n"
	assert.Equal(t, want, formatCard(d))
	assert.Equal(t, "No project.\n", formatCard(present.Empty()))
}

func TestBestMatch(t *testing.T) {
	records := []model.ProjectRecord{
		{Name: "turbofan-baseline"},
		{Name: "engine-deck"},
	}

	rec, ok := bestMatch("engdk", records)
	require.True(t, ok)
	assert.Equal(t, "engine-deck", rec.Name)

	_, ok = bestMatch("zzz", records)
	assert.False(t, ok)
}

func TestWithNameOverridesOnlySuccessfulSelections(t *testing.T) {
	p := withName(picker.Fixed{Path: "/models/a"}, " engine ")
	sel, err := p.PickDirectory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "engine", sel.SuggestedName)
	assert.Equal(t, "/models/a", sel.Path)

	p = withName(picker.Fixed{}, "engine")
	sel, err = p.PickDirectory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.Cancelled(), sel)
}

func TestNewCommandRegistersProject(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dataDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataDir)
	modelDir := t.TempDir()

	t.Cleanup(func() {
		newName = ""
		jsonOut = false
		rootCmd.SetArgs(nil)
	})
	rootCmd.SetArgs([]string{"new", modelDir, "--name", "engine", "--json"})
	require.NoError(t, rootCmd.Execute())

	store, err := registry.Open(filepath.Join(dataDir, "rocout", "projects.db"))
	require.NoError(t, err)
	defer store.Close()

	rec, err := store.FindByDirectory(context.Background(), modelDir)
	require.NoError(t, err)
	assert.Equal(t, "engine", rec.Name)
}

func TestNewCommandFailureReturnsError(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	rootCmd.SetArgs([]string{"new", filepath.Join(t.TempDir(), "missing")})

	assert.ErrorIs(t, rootCmd.Execute(), errNotCreated)
}
