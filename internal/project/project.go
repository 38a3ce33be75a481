// Package project validates and registers new projects.
package project

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tormodhaugland/rocout/internal/model"
	"github.com/tormodhaugland/rocout/internal/registry"
)

// Store is the persistence the service needs.
type Store interface {
	Insert(ctx context.Context, p model.ProjectRecord) error
	FindByDirectory(ctx context.Context, dir string) (model.ProjectRecord, error)
	Latest(ctx context.Context) (model.ProjectRecord, error)
	List(ctx context.Context) ([]model.ProjectRecord, error)
}

type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

type Option func(*Service)

// WithClock overrides the creation clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDs(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func NewService(store Store, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateProject validates the directory and name and persists a new record.
// Every failure is reported in the result rather than as an error.
func (s *Service) CreateProject(ctx context.Context, path, name string) model.CreationResult {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Failed("project name is required")
	}
	if strings.TrimSpace(path) == "" {
		return model.Failed("model directory is required")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return model.Failed(fmt.Sprintf("invalid model directory %s: %v", path, err))
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Failed("model directory does not exist: " + abs)
		}
		return model.Failed(fmt.Sprintf("cannot access model directory %s: %v", abs, err))
	}
	if !info.IsDir() {
		return model.Failed("not a directory: " + abs)
	}

	if _, err := s.store.FindByDirectory(ctx, abs); err == nil {
		return model.Failed("a project already exists for " + abs)
	} else if !errors.Is(err, registry.ErrNotFound) {
		return model.Failed(fmt.Sprintf("failed to check registry: %v", err))
	}

	rec := model.ProjectRecord{
		ID:             s.newID(),
		Name:           name,
		ModelDirectory: abs,
		CreatedAt:      s.now().UTC().Truncate(time.Second).Format(time.RFC3339),
	}

	if err := s.store.Insert(ctx, rec); err != nil {
		if errors.Is(err, registry.ErrDuplicate) {
			return model.Failed("a project already exists for " + abs)
		}
		return model.Failed(fmt.Sprintf("failed to save project: %v", err))
	}

	s.logger.Info("project created",
		zap.String("id", rec.ID),
		zap.String("name", rec.Name),
		zap.String("model_directory", rec.ModelDirectory),
		zap.String("config_directory", rec.ConfigDir()),
		zap.String("output_directory", rec.OutputDir()),
	)

	return model.Created(rec)
}

func (s *Service) Latest(ctx context.Context) (model.ProjectRecord, error) {
	return s.store.Latest(ctx)
}

func (s *Service) List(ctx context.Context) ([]model.ProjectRecord, error) {
	return s.store.List(ctx)
}
