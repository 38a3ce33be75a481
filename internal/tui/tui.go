package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tormodhaugland/rocout/internal/model"
	"github.com/tormodhaugland/rocout/internal/present"
	"github.com/tormodhaugland/rocout/internal/workflow"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	cardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2)
	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2)
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(1, 3)
	labelStyle  = lipgloss.NewStyle().Bold(true).Width(10)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginBottom(1)
)

type keyMap struct {
	NewProject key.Binding
	Dismiss    key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	NewProject: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new project")),
	Dismiss:    key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "dismiss")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Runner is the workflow the dashboard drives.
type Runner interface {
	RunNewProject(ctx context.Context) (workflow.Outcome, error)
	Display() present.Display
}

type displayMsg struct {
	display present.Display
}

type noticeMsg struct {
	notice model.Notice
	ack    chan struct{}
}

type workflowDoneMsg struct {
	outcome workflow.Outcome
	err     error
}

type Model struct {
	ctx     context.Context
	runner  Runner
	display present.Display
	busy    bool
	notice  *noticeMsg
	message string
	spinner spinner.Model
	width   int
	height  int
}

func New(ctx context.Context, runner Runner) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = titleStyle

	return Model{
		ctx:     ctx,
		runner:  runner,
		display: runner.Display(),
		spinner: s,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case displayMsg:
		m.display = msg.display

	case noticeMsg:
		m.notice = &msg

	case workflowDoneMsg:
		m.busy = false
		m.message = ""
		if msg.outcome == workflow.OutcomeCreated {
			m.message = "Project created."
		}

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.notice != nil {
			switch {
			case key.Matches(msg, keys.Dismiss):
				m.dismiss()
			case msg.String() == "ctrl+c":
				m.dismiss()
				return m, tea.Quit
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, keys.NewProject):
			if m.busy {
				m.message = "A directory picker is already open."
				return m, nil
			}
			m.busy = true
			m.message = ""
			return m, tea.Batch(m.spinner.Tick, m.runWorkflow())
		}
	}

	return m, nil
}

func (m *Model) dismiss() {
	close(m.notice.ack)
	m.notice = nil
}

func (m Model) runWorkflow() tea.Cmd {
	ctx, runner := m.ctx, m.runner
	return func() tea.Msg {
		outcome, err := runner.RunNewProject(ctx)
		return workflowDoneMsg{outcome: outcome, err: err}
	}
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render("ROCout") + "\n")
	sb.WriteString(m.projectView() + "\n\n")
	sb.WriteString(m.statusLine())

	body := sb.String()
	if m.notice == nil {
		return body
	}

	modal := modalStyle.Render(
		titleStyle.Render(m.notice.notice.Title) + "\n\n" +
			m.notice.notice.Message + "\n\n" +
			helpStyle.Render("enter: dismiss"),
	)
	if m.width == 0 || m.height == 0 {
		return body + "\n\n" + modal
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

// projectView draws exactly one of the project card or the empty state.
func (m Model) projectView() string {
	d := m.display
	if !d.Visible(present.PanelProject) {
		return emptyStyle.Render("No project loaded. Press n to create one.")
	}

	rows := []string{
		titleStyle.Render(d.Name),
		"",
		labelStyle.Render("Model") + d.Directory,
		labelStyle.Render("Config") + d.ConfigDir,
		labelStyle.Render("Output") + d.OutputDir,
		labelStyle.Render("Created") + d.CreatedAt,
	}
	return cardStyle.Render(strings.Join(rows, "\n"))
}

func (m Model) statusLine() string {
	if m.busy {
		return m.spinner.View() + " Waiting for directory selection…"
	}
	if m.message != "" {
		return m.message + "  " + helpStyle.Render("n: new project • q: quit")
	}
	return helpStyle.Render("n: new project • q: quit")
}

// Bridge carries workflow callbacks, which run off the UI goroutine, into
// the program as messages.
type Bridge struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (b *Bridge) Attach(p *tea.Program) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.send = p.Send
}

func (b *Bridge) post(msg tea.Msg) bool {
	b.mu.Lock()
	send := b.send
	b.mu.Unlock()
	if send == nil {
		return false
	}
	send(msg)
	return true
}

func (b *Bridge) Render(d present.Display) {
	b.post(displayMsg{display: d})
}

// Notify shows a modal and waits until the user dismisses it.
func (b *Bridge) Notify(ctx context.Context, n model.Notice) error {
	ack := make(chan struct{})
	if !b.post(noticeMsg{notice: n, ack: ack}) {
		return fmt.Errorf("dashboard not running")
	}
	select {
	case <-ack:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run starts the dashboard. build wires the workflow to the dashboard's view
// and notifier.
func Run(ctx context.Context, build func(view workflow.View, notifier workflow.Notifier) Runner) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bridge := &Bridge{}
	m := New(ctx, build(bridge, bridge))
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	bridge.Attach(p)

	_, err := p.Run()
	return err
}
