// Package present maps project records to display state.
package present

import (
	"errors"
	"time"

	"github.com/tormodhaugland/rocout/internal/model"
)

// Panel names the one region of the project view that is visible.
type Panel int

const (
	PanelEmpty Panel = iota
	PanelProject
)

func (p Panel) String() string {
	switch p {
	case PanelProject:
		return "project"
	default:
		return "empty"
	}
}

// Display is everything the UI needs to draw the project view. Fields other
// than Panel are only meaningful when Panel is PanelProject.
type Display struct {
	Panel     Panel
	Name      string
	Directory string
	ConfigDir string
	OutputDir string
	CreatedAt string
}

func Empty() Display {
	return Display{Panel: PanelEmpty}
}

func Render(p model.ProjectRecord, loc *time.Location) Display {
	return Display{
		Panel:     PanelProject,
		Name:      p.Name,
		Directory: p.ModelDirectory,
		ConfigDir: p.ConfigDir(),
		OutputDir: p.OutputDir(),
		CreatedAt: FormatTimestamp(p.CreatedAt, loc),
	}
}

// Visible reports whether panel is the one shown.
func (d Display) Visible(panel Panel) bool {
	return d.Panel == panel
}

const (
	displayLayout = "Jan 2, 2006 — 3:04 PM"
	InvalidDate   = "Invalid Date"
)

var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
}

var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var ErrInvalidTimestamp = errors.New("invalid timestamp")

// ParseTimestamp reads an ISO-8601 instant. Input without an offset is taken
// as wall time in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(loc), nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTimestamp
}

func Format(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(displayLayout)
}

// FormatTimestamp renders an ISO-8601 string as "Oct 15, 2025 — 2:30 PM".
// Unparsable input renders as InvalidDate.
func FormatTimestamp(s string, loc *time.Location) string {
	t, err := ParseTimestamp(s, loc)
	if err != nil {
		return InvalidDate
	}
	return Format(t, loc)
}
