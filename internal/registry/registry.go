// Package registry persists project records in a local SQLite database.
package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"
	"github.com/tormodhaugland/rocout/internal/model"
)

var (
	ErrNotFound  = errors.New("project not found")
	ErrDuplicate = errors.New("project already registered")
)

// Store wraps the registry database.
type Store struct {
	conn *sql.DB
	path string
}

// Open opens or creates the registry at dbPath and brings the schema up to date.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("creating registry directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening registry: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &Store{conn: conn, path: dbPath}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) migrate() error {
	_, err := s.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	var currentVersion int
	row := s.conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting schema version: %w", err)
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migrationV1},
	}

	for _, m := range migrations {
		if m.version > currentVersion {
			if _, err := s.conn.Exec(m.sql); err != nil {
				return fmt.Errorf("migration v%d: %w", m.version, err)
			}
			if _, err := s.conn.Exec("INSERT INTO schema_version (version) VALUES (?)", m.version); err != nil {
				return fmt.Errorf("recording migration v%d: %w", m.version, err)
			}
		}
	}

	return nil
}

const migrationV1 = `
CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	model_directory TEXT NOT NULL UNIQUE,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_projects_created_at ON projects(created_at);
`

// Insert stores a new record. A second record for the same model directory
// fails with ErrDuplicate.
func (s *Store) Insert(ctx context.Context, p model.ProjectRecord) error {
	_, err := s.conn.ExecContext(ctx,
		"INSERT INTO projects (id, name, model_directory, created_at) VALUES (?, ?, ?, ?)",
		p.ID, p.Name, p.ModelDirectory, p.CreatedAt,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return fmt.Errorf("%w: %s", ErrDuplicate, p.ModelDirectory)
		}
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (s *Store) FindByDirectory(ctx context.Context, dir string) (model.ProjectRecord, error) {
	row := s.conn.QueryRowContext(ctx,
		"SELECT id, name, model_directory, created_at FROM projects WHERE model_directory = ?", dir)
	return scanRecord(row)
}

// Latest returns the most recently created project.
func (s *Store) Latest(ctx context.Context) (model.ProjectRecord, error) {
	row := s.conn.QueryRowContext(ctx,
		"SELECT id, name, model_directory, created_at FROM projects ORDER BY created_at DESC, rowid DESC LIMIT 1")
	return scanRecord(row)
}

// List returns all projects, newest first.
func (s *Store) List(ctx context.Context) ([]model.ProjectRecord, error) {
	rows, err := s.conn.QueryContext(ctx,
		"SELECT id, name, model_directory, created_at FROM projects ORDER BY created_at DESC, rowid DESC")
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var records []model.ProjectRecord
	for rows.Next() {
		var p model.ProjectRecord
		if err := rows.Scan(&p.ID, &p.Name, &p.ModelDirectory, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		records = append(records, p)
	}
	return records, rows.Err()
}

func scanRecord(row *sql.Row) (model.ProjectRecord, error) {
	var p model.ProjectRecord
	if err := row.Scan(&p.ID, &p.Name, &p.ModelDirectory, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ProjectRecord{}, ErrNotFound
		}
		return model.ProjectRecord{}, fmt.Errorf("scanning project: %w", err)
	}
	return p, nil
}
