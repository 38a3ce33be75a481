package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	promptLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	promptHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type DirPickerResult struct {
	Path  string
	Abort bool
}

type dirPickerModel struct {
	title  string
	picker filepicker.Model
	done   bool
	result DirPickerResult
}

func newDirPickerModel(title, startDir string) dirPickerModel {
	fp := filepicker.New()
	fp.CurrentDirectory = startDir
	fp.DirAllowed = true
	fp.FileAllowed = false
	fp.ShowPermissions = false
	fp.ShowSize = false

	return dirPickerModel{
		title:  title,
		picker: fp,
	}
}

func (m dirPickerModel) Init() tea.Cmd {
	return m.picker.Init()
}

func (m dirPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "q":
			m.result.Abort = true
			m.done = true
			return m, tea.Quit

		case "s":
			m.result.Path = m.picker.CurrentDirectory
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
		m.result.Path = path
		m.done = true
		return m, tea.Quit
	}

	return m, cmd
}

func (m dirPickerModel) View() string {
	var sb strings.Builder

	sb.WriteString(promptLabelStyle.Render(m.title) + "\n")
	sb.WriteString(promptHintStyle.Render(m.picker.CurrentDirectory) + "\n\n")
	sb.WriteString(m.picker.View())
	sb.WriteString("\n" + promptHintStyle.Render("enter: choose highlighted • s: choose current • ←/→: navigate • q: cancel"))

	return sb.String()
}

// RunDirPicker lets the user browse to a directory. The program renders on
// stderr so stdout stays clean for command output.
func RunDirPicker(title, startDir string) (DirPickerResult, error) {
	lipgloss.SetDefaultRenderer(lipgloss.NewRenderer(os.Stderr, termenv.WithColorCache(true)))

	m := newDirPickerModel(title, startDir)
	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))

	finalModel, err := p.Run()
	if err != nil {
		return DirPickerResult{Abort: true}, err
	}

	return finalModel.(dirPickerModel).result, nil
}
