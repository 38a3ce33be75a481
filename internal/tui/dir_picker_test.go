package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestDirPickerChooseCurrent(t *testing.T) {
	tmp := t.TempDir()
	m := newDirPickerModel("Select ROCETS Model Directory", tmp)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	got := next.(dirPickerModel)

	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !got.done {
		t.Fatal("expected picker to be done")
	}
	if got.result.Abort {
		t.Fatal("did not expect abort")
	}
	if got.result.Path != tmp {
		t.Fatalf("Path = %q, want %q", got.result.Path, tmp)
	}
}

func TestDirPickerCancel(t *testing.T) {
	m := newDirPickerModel("Select ROCETS Model Directory", t.TempDir())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	got := next.(dirPickerModel)

	if !got.result.Abort {
		t.Fatal("expected abort")
	}
	if got.result.Path != "" {
		t.Fatalf("Path = %q, want empty", got.result.Path)
	}
}

func TestDirPickerOnlyAllowsDirectories(t *testing.T) {
	m := newDirPickerModel("Pick", t.TempDir())

	if !m.picker.DirAllowed || m.picker.FileAllowed {
		t.Fatalf("DirAllowed=%v FileAllowed=%v, want directories only", m.picker.DirAllowed, m.picker.FileAllowed)
	}
}
