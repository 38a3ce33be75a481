// Package notify shows workflow failures to the user.
package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/ncruces/zenity"

	"github.com/tormodhaugland/rocout/internal/model"
)

// Dialog shows a native message box and returns once it is closed. The
// notice title goes in the title bar; Title is used when it is empty.
type Dialog struct {
	Title string

	show func(text string, opts ...zenity.Option) error
}

func NewDialog(title string) *Dialog {
	return &Dialog{Title: title, show: zenity.Error}
}

func (d *Dialog) Notify(ctx context.Context, n model.Notice) error {
	title := n.Title
	if title == "" {
		title = d.Title
	}
	err := d.show(n.Message,
		zenity.Title(title),
		zenity.ErrorIcon,
		zenity.Context(ctx),
	)
	// Closing the box any way at all counts as acknowledging it.
	if err != nil && !errors.Is(err, zenity.ErrCanceled) {
		return fmt.Errorf("message box: %w", err)
	}
	return nil
}

var errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

// Writer prints the notice title and then the message, unchanged, on a line
// of its own. Only the title is styled, and only when the destination is a
// terminal.
type Writer struct {
	w     io.Writer
	color bool
}

func NewWriter(w io.Writer) *Writer {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd())
	}
	return &Writer{w: w, color: color}
}

func (w *Writer) Notify(_ context.Context, n model.Notice) error {
	title := n.Title
	if title != "" && w.color {
		title = errorStyle.Render(title)
	}
	if title != "" {
		if _, err := fmt.Fprintln(w.w, title); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w.w, n.Message)
	return err
}
