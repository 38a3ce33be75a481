package model

import (
	"path/filepath"
	"strings"
)

// ProjectRecord is the persisted identity of a project. CreatedAt is an
// RFC 3339 instant assigned at creation and never rewritten.
type ProjectRecord struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ModelDirectory string `json:"model_directory"`
	CreatedAt      string `json:"created_at"`
}

func (p ProjectRecord) ConfigDir() string {
	return filepath.Join(p.ModelDirectory, "config")
}

func (p ProjectRecord) OutputDir() string {
	return filepath.Join(p.ModelDirectory, "output")
}

// DirectorySelection is what a directory picker hands back. Path and
// SuggestedName are both empty unless Succeeded is set.
type DirectorySelection struct {
	Succeeded     bool   `json:"success"`
	Path          string `json:"path,omitempty"`
	SuggestedName string `json:"project_name,omitempty"`
}

func Cancelled() DirectorySelection {
	return DirectorySelection{}
}

// Selected builds a successful selection, deriving the default project name
// from the last path element. A blank path is treated as a cancel.
func Selected(path string) DirectorySelection {
	if path == "" {
		return Cancelled()
	}
	return DirectorySelection{
		Succeeded:     true,
		Path:          path,
		SuggestedName: SuggestName(path),
	}
}

func SuggestName(path string) string {
	trimmed := strings.TrimRight(path, `/\`)
	if trimmed == "" {
		return ""
	}
	return filepath.Base(trimmed)
}

// CreationResult is the outcome of a create request: Project is set on
// success and ErrorMessage otherwise.
type CreationResult struct {
	Succeeded    bool           `json:"success"`
	Project      *ProjectRecord `json:"project,omitempty"`
	ErrorMessage string         `json:"error,omitempty"`
}

func Created(p ProjectRecord) CreationResult {
	return CreationResult{Succeeded: true, Project: &p}
}

func Failed(msg string) CreationResult {
	return CreationResult{ErrorMessage: msg}
}
