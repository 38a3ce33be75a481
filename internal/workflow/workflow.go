// Package workflow runs the "new project" sequence: pick a directory, ask the
// creation service for a project anchored there, then display it or report
// why it failed.
package workflow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tormodhaugland/rocout/internal/model"
	"github.com/tormodhaugland/rocout/internal/present"
)

// Picker opens a directory chooser and waits for the user, however long that
// takes. A dismissed dialog is a Cancelled selection, not an error.
type Picker interface {
	PickDirectory(ctx context.Context) (model.DirectorySelection, error)
}

type Creator interface {
	CreateProject(ctx context.Context, path, name string) model.CreationResult
}

// Notifier shows a failure and blocks until the user acknowledges it.
type Notifier interface {
	Notify(ctx context.Context, n model.Notice) error
}

// View receives every render. Render is called with the controller's lock
// held, so renders arrive in the same order as state changes; it must not
// call back into the controller.
type View interface {
	Render(d present.Display)
}

// UIState is either NoProject (the zero value) or ProjectDisplayed.
type UIState struct {
	project *model.ProjectRecord
}

func NoProject() UIState {
	return UIState{}
}

func ProjectDisplayed(p model.ProjectRecord) UIState {
	return UIState{project: &p}
}

// Project returns the displayed project, if any.
func (s UIState) Project() (model.ProjectRecord, bool) {
	if s.project == nil {
		return model.ProjectRecord{}, false
	}
	return *s.project, true
}

func (s UIState) String() string {
	if s.project == nil {
		return "NoProject"
	}
	return fmt.Sprintf("ProjectDisplayed(%s)", s.project.Name)
}

type Outcome int

const (
	OutcomeCancelled Outcome = iota
	OutcomeCreated
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeFailed:
		return "failed"
	default:
		return "cancelled"
	}
}

type Controller struct {
	picker   Picker
	creator  Creator
	notifier Notifier
	view     View
	logger   *zap.Logger
	loc      *time.Location

	mu    sync.Mutex
	state UIState
}

type Option func(*Controller)

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithLocation sets the zone creation timestamps are rendered in.
func WithLocation(loc *time.Location) Option {
	return func(c *Controller) { c.loc = loc }
}

func NewController(picker Picker, creator Creator, notifier Notifier, view View, opts ...Option) *Controller {
	c := &Controller{
		picker:   picker,
		creator:  creator,
		notifier: notifier,
		view:     view,
		logger:   zap.NewNop(),
		loc:      time.Local,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() UIState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Display is the presentation of the current state.
func (c *Controller) Display() present.Display {
	if p, ok := c.State().Project(); ok {
		return present.Render(p, c.loc)
	}
	return present.Empty()
}

// RunNewProject runs one pick → create → render pass. It never retries. The
// returned error is non-nil only when the picker itself broke or the
// notification could not be shown.
func (c *Controller) RunNewProject(ctx context.Context) (Outcome, error) {
	c.logger.Debug("opening directory picker")
	sel, err := c.picker.PickDirectory(ctx)
	if err != nil {
		c.logger.Error("directory picker failed", zap.Error(err))
		if nerr := c.notifier.Notify(ctx, model.PickerFailedNotice(err)); nerr != nil {
			c.logger.Warn("notification failed", zap.Error(nerr))
		}
		return OutcomeFailed, fmt.Errorf("pick directory: %w", err)
	}

	if !sel.Succeeded {
		c.logger.Debug("directory selection cancelled")
		return OutcomeCancelled, nil
	}

	c.logger.Info("directory selected",
		zap.String("path", sel.Path),
		zap.String("suggested_name", sel.SuggestedName),
	)

	res := c.creator.CreateProject(ctx, sel.Path, sel.SuggestedName)
	if res.Succeeded && res.Project == nil {
		res = model.Failed("project creation returned no project")
	}
	if !res.Succeeded {
		c.logger.Error("project creation failed",
			zap.String("path", sel.Path),
			zap.String("error", res.ErrorMessage),
		)
		if err := c.notifier.Notify(ctx, model.CreationFailedNotice(res.ErrorMessage)); err != nil {
			return OutcomeFailed, fmt.Errorf("notify: %w", err)
		}
		return OutcomeFailed, nil
	}

	c.display(*res.Project)

	c.logger.Info("project displayed",
		zap.String("name", res.Project.Name),
		zap.String("model_directory", res.Project.ModelDirectory),
	)
	return OutcomeCreated, nil
}

// display swaps in the new state and renders it in one locked step.
func (c *Controller) display(p model.ProjectRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = ProjectDisplayed(p)
	c.view.Render(present.Render(p, c.loc))
}
