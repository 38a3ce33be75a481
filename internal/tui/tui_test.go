package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tormodhaugland/rocout/internal/model"
	"github.com/tormodhaugland/rocout/internal/present"
	"github.com/tormodhaugland/rocout/internal/workflow"
)

type stubRunner struct {
	outcome workflow.Outcome
	calls   int
}

func (s *stubRunner) RunNewProject(context.Context) (workflow.Outcome, error) {
	s.calls++
	return s.outcome, nil
}

func (s *stubRunner) Display() present.Display {
	return present.Empty()
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func sampleDisplay() present.Display {
	return present.Render(model.ProjectRecord{
		Name:           "a",
		ModelDirectory: "/models/a",
		CreatedAt:      "2025-10-15T14:30:00",
	}, time.UTC)
}

func TestInitialViewShowsOnlyEmptyState(t *testing.T) {
	m := New(context.Background(), &stubRunner{})

	view := m.View()
	assert.Contains(t, view, "No project loaded")
	assert.NotContains(t, view, "/models/a")
}

func TestNewProjectKeyStartsWorkflowOnce(t *testing.T) {
	runner := &stubRunner{outcome: workflow.OutcomeCancelled}
	m := New(context.Background(), runner)

	m, cmd := update(t, m, keyMsg("n"))
	require.NotNil(t, cmd)
	assert.True(t, m.busy)
	assert.Contains(t, m.View(), "Waiting for directory selection")

	m, cmd = update(t, m, keyMsg("n"))
	assert.Nil(t, cmd)
	assert.Equal(t, "A directory picker is already open.", m.message)

	m, _ = update(t, m, m.runWorkflow()())
	assert.Equal(t, 1, runner.calls)
	assert.False(t, m.busy)
	assert.Empty(t, m.message)
	assert.True(t, m.display.Visible(present.PanelEmpty))
}

func TestDisplayMsgShowsProjectCard(t *testing.T) {
	m := New(context.Background(), &stubRunner{})

	m, _ = update(t, m, displayMsg{display: sampleDisplay()})
	m, _ = update(t, m, workflowDoneMsg{outcome: workflow.OutcomeCreated})

	view := m.View()
	assert.Contains(t, view, "/models/a")
	assert.Contains(t, view, "/models/a/config")
	assert.Contains(t, view, "Oct 15, 2025 — 2:30 PM")
	assert.NotContains(t, view, "No project loaded")
	assert.Contains(t, view, "Project created.")
}

func TestNoticeBlocksKeysUntilDismissed(t *testing.T) {
	runner := &stubRunner{}
	m := New(context.Background(), runner)
	ack := make(chan struct{})

	m, _ = update(t, m, noticeMsg{notice: model.CreationFailedNotice("disk full"), ack: ack})
	assert.Contains(t, m.View(), "disk full")
	assert.Contains(t, m.View(), "Error creating project")

	m, cmd := update(t, m, keyMsg("n"))
	assert.Nil(t, cmd)
	assert.False(t, m.busy)

	m, cmd = update(t, m, keyMsg("q"))
	assert.Nil(t, cmd)

	m, _ = update(t, m, keyMsg("enter"))
	assert.Nil(t, m.notice)
	select {
	case <-ack:
	default:
		t.Fatal("ack should be closed after dismiss")
	}
	assert.NotContains(t, m.View(), "disk full")
}

func TestCtrlCDuringNoticeReleasesWorkflow(t *testing.T) {
	m := New(context.Background(), &stubRunner{})
	ack := make(chan struct{})

	m, _ = update(t, m, noticeMsg{notice: model.CreationFailedNotice("disk full"), ack: ack})
	_, cmd := update(t, m, keyMsg("ctrl+c"))

	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
	select {
	case <-ack:
	default:
		t.Fatal("ack should be closed on quit")
	}
}

func TestNoticeTitleFollowsFailureKind(t *testing.T) {
	m := New(context.Background(), &stubRunner{})

	m, _ = update(t, m, noticeMsg{
		notice: model.PickerFailedNotice(errors.New("zenity: not found")),
		ack:    make(chan struct{}),
	})

	view := m.View()
	assert.Contains(t, view, "Could not open directory picker")
	assert.Contains(t, view, "zenity: not found")
	assert.NotContains(t, view, "Error creating project")
}

func TestBridgeWithoutProgram(t *testing.T) {
	b := &Bridge{}
	b.Render(present.Empty())

	err := b.Notify(context.Background(), model.CreationFailedNotice("disk full"))
	assert.Error(t, err)
}

func TestBridgeNotifyWaitsForAck(t *testing.T) {
	msgs := make(chan tea.Msg, 1)
	b := &Bridge{send: func(msg tea.Msg) { msgs <- msg }}

	done := make(chan error, 1)
	go func() { done <- b.Notify(context.Background(), model.CreationFailedNotice("disk full")) }()

	msg := (<-msgs).(noticeMsg)
	assert.Equal(t, model.CreationFailedNotice("disk full"), msg.notice)

	select {
	case <-done:
		t.Fatal("Notify returned before acknowledgement")
	case <-time.After(20 * time.Millisecond):
	}

	close(msg.ack)
	assert.NoError(t, <-done)
}

func TestBridgeNotifyHonoursContext(t *testing.T) {
	b := &Bridge{send: func(tea.Msg) {}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, b.Notify(ctx, model.CreationFailedNotice("disk full")), context.Canceled)
}

func TestStatusLineHelp(t *testing.T) {
	m := New(context.Background(), &stubRunner{})
	assert.True(t, strings.Contains(m.statusLine(), "n: new project"))
}
