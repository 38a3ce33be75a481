// Package picker provides the directory-picker implementations the new
// project workflow can use.
package picker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ncruces/zenity"

	"github.com/tormodhaugland/rocout/internal/config"
	"github.com/tormodhaugland/rocout/internal/model"
	"github.com/tormodhaugland/rocout/internal/tui"
)

// Native opens the operating system's folder dialog. The dialog runs out of
// process and may stay open indefinitely.
type Native struct {
	Title    string
	StartDir string

	selectFile func(opts ...zenity.Option) (string, error)
}

func NewNative(title, startDir string) *Native {
	return &Native{Title: title, StartDir: startDir, selectFile: zenity.SelectFile}
}

func (n *Native) PickDirectory(ctx context.Context) (model.DirectorySelection, error) {
	opts := []zenity.Option{
		zenity.Directory(),
		zenity.Title(n.Title),
		zenity.Context(ctx),
	}
	if n.StartDir != "" {
		opts = append(opts, zenity.Filename(ensureTrailingSep(n.StartDir)))
	}

	path, err := n.selectFile(opts...)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return model.Cancelled(), nil
		}
		return model.Cancelled(), fmt.Errorf("native dialog: %w", err)
	}
	return model.Selected(path), nil
}

// Available reports whether a native dialog helper is usable on this system.
func Available() bool {
	return zenity.IsAvailable()
}

func ensureTrailingSep(dir string) string {
	if dir == "" || os.IsPathSeparator(dir[len(dir)-1]) {
		return dir
	}
	return dir + string(filepath.Separator)
}

// Fixed returns a preset path without asking anyone. An empty path behaves
// like a dismissed dialog.
type Fixed struct {
	Path string
}

func (f Fixed) PickDirectory(context.Context) (model.DirectorySelection, error) {
	return model.Selected(f.Path), nil
}

// Terminal browses directories in a bubbletea program. It owns the terminal
// while running, so it cannot be used from inside the dashboard.
type Terminal struct {
	Title    string
	StartDir string

	run func(title, startDir string) (tui.DirPickerResult, error)
}

func NewTerminal(title, startDir string) *Terminal {
	return &Terminal{Title: title, StartDir: startDir, run: tui.RunDirPicker}
}

func (t *Terminal) PickDirectory(ctx context.Context) (model.DirectorySelection, error) {
	if err := ctx.Err(); err != nil {
		return model.Cancelled(), err
	}

	start := t.StartDir
	if start == "" {
		start, _ = os.Getwd()
	}

	res, err := t.run(t.Title, start)
	if err != nil {
		return model.Cancelled(), fmt.Errorf("terminal picker: %w", err)
	}
	if res.Abort {
		return model.Cancelled(), nil
	}
	return model.Selected(res.Path), nil
}

// PickerFunc adapts a plain function to the workflow's picker interface.
type PickerFunc func(ctx context.Context) (model.DirectorySelection, error)

func (f PickerFunc) PickDirectory(ctx context.Context) (model.DirectorySelection, error) {
	return f(ctx)
}

// New returns the picker named by cfg.Picker. The native picker falls back
// to the terminal one when no dialog helper is installed and fallback is set.
func New(cfg *config.Config, fallback bool) PickerFunc {
	switch cfg.Picker {
	case config.PickerTerminal:
		return NewTerminal(cfg.DialogTitle, cfg.StartDir).PickDirectory
	default:
		native := NewNative(cfg.DialogTitle, cfg.StartDir)
		if fallback && !Available() {
			return NewTerminal(cfg.DialogTitle, cfg.StartDir).PickDirectory
		}
		return native.PickDirectory
	}
}
