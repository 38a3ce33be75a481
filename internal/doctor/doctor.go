package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tormodhaugland/rocout/internal/config"
	"github.com/tormodhaugland/rocout/internal/model"
)

type Status string

const (
	StatusOK   Status = "ok"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

type Check struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// MissingDirectory is a registered project whose model directory is gone.
type MissingDirectory struct {
	Name           string `json:"name"`
	ModelDirectory string `json:"model_directory"`
}

type Lister interface {
	List(ctx context.Context) ([]model.ProjectRecord, error)
}

type Report struct {
	Checks  []Check            `json:"checks"`
	Missing []MissingDirectory `json:"missing,omitempty"`
}

func (r Report) Failed() bool {
	for _, c := range r.Checks {
		if c.Status == StatusFail {
			return true
		}
	}
	return false
}

func CheckDataDir(cfg *config.Config) Check {
	c := Check{Name: "data directory", Detail: cfg.DataDir}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		c.Status = StatusFail
		c.Detail = err.Error()
		return c
	}

	probe, err := os.CreateTemp(cfg.DataDir, ".doctor-*")
	if err != nil {
		c.Status = StatusFail
		c.Detail = fmt.Sprintf("%s is not writable: %v", cfg.DataDir, err)
		return c
	}
	probe.Close()
	os.Remove(probe.Name())

	c.Status = StatusOK
	return c
}

func CheckPicker(cfg *config.Config, nativeAvailable bool) Check {
	c := Check{Name: "directory picker", Status: StatusOK, Detail: cfg.Picker}
	if cfg.Picker == config.PickerNative && !nativeAvailable {
		c.Status = StatusWarn
		c.Detail = "no native dialog helper found (install zenity or set picker to \"terminal\")"
	}
	return c
}

// FindMissingDirectories lists registered projects whose model directory no
// longer exists or is no longer a directory.
func FindMissingDirectories(ctx context.Context, l Lister) ([]MissingDirectory, error) {
	records, err := l.List(ctx)
	if err != nil {
		return nil, err
	}

	missing := make([]MissingDirectory, 0)
	for _, rec := range records {
		info, err := os.Stat(filepath.Clean(rec.ModelDirectory))
		if err == nil && info.IsDir() {
			continue
		}
		missing = append(missing, MissingDirectory{
			Name:           rec.Name,
			ModelDirectory: rec.ModelDirectory,
		})
	}

	return missing, nil
}
