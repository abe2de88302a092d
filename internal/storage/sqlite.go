// Package storage provides SQLite-based persistence for the sketch library
// and its run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrEmptyName is returned when a sketch is saved without a name.
var ErrEmptyName = errors.New("storage: sketch name is empty")

// Store manages the SQLite database connection for the sketch library.
type Store struct {
	db *sql.DB
}

// SketchEntry represents one saved sketch.
type SketchEntry struct {
	ID          int64
	Name        string
	Description string
	Source      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RunRecord represents one finished run of a sketch.
type RunRecord struct {
	ID         int64
	SketchName string
	Frames     int
	FPS        int
	DurationMs int64
	Error      string // Empty if the run ended cleanly
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sketches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			description TEXT NOT NULL DEFAULT '',
			source TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sketch_name TEXT NOT NULL,
			frames INTEGER NOT NULL DEFAULT 0,
			fps INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			error TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_sketch ON runs(sketch_name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// SaveSketch stores a sketch under name, replacing the source and
// description of an existing sketch with the same name.
// Returns the ID of the sketch.
func (s *Store) SaveSketch(name, description, source string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrEmptyName
	}

	_, err := s.db.Exec(
		`INSERT INTO sketches (name, description, source) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		     description = excluded.description,
		     source = excluded.source,
		     updated_at = CURRENT_TIMESTAMP`,
		name, description, source,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save sketch: %w", err)
	}

	var id int64
	if err := s.db.QueryRow("SELECT id FROM sketches WHERE name = ?", name).Scan(&id); err != nil {
		return 0, fmt.Errorf("storage: cannot get sketch ID: %w", err)
	}
	return id, nil
}

// Sketch retrieves a sketch by name.
// Returns nil without error if no such sketch exists.
func (s *Store) Sketch(name string) (*SketchEntry, error) {
	var e SketchEntry
	var createdAt, updatedAt any

	err := s.db.QueryRow(
		`SELECT id, name, description, source, created_at, updated_at
		 FROM sketches
		 WHERE name = ?`,
		name,
	).Scan(&e.ID, &e.Name, &e.Description, &e.Source, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sketch: %w", err)
	}

	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	return &e, nil
}

// ListSketches retrieves every saved sketch ordered by name.
// The Source field is left empty.
func (s *Store) ListSketches() ([]SketchEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, name, description, created_at, updated_at
		 FROM sketches
		 ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sketches: %w", err)
	}
	defer rows.Close()

	var entries []SketchEntry
	for rows.Next() {
		var e SketchEntry
		var createdAt, updatedAt any
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		e.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DeleteSketch removes a sketch and its run history.
// Returns false if the sketch did not exist.
func (s *Store) DeleteSketch(name string) (bool, error) {
	res, err := s.db.Exec("DELETE FROM sketches WHERE name = ?", name)
	if err != nil {
		return false, fmt.Errorf("storage: cannot delete sketch: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM runs WHERE sketch_name = ?", name); err != nil {
		return false, fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	return n > 0, nil
}

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(run RunRecord) (int64, error) {
	var runErr sql.NullString
	if run.Error != "" {
		runErr = sql.NullString{String: run.Error, Valid: true}
	}

	res, err := s.db.Exec(
		`INSERT INTO runs (sketch_name, frames, fps, duration_ms, error)
		 VALUES (?, ?, ?, ?, ?)`,
		run.SketchName, run.Frames, run.FPS, run.DurationMs, runErr,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RunHistory retrieves the most recent runs of a sketch, newest first.
func (s *Store) RunHistory(sketchName string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, sketch_name, frames, fps, duration_ms, error, created_at
		 FROM runs
		 WHERE sketch_name = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		sketchName, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var runErr sql.NullString
		var createdAt any
		if err := rows.Scan(&r.ID, &r.SketchName, &r.Frames, &r.FPS, &r.DurationMs, &runErr, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if runErr.Valid {
			r.Error = runErr.String
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// SketchStats contains aggregated run statistics for a sketch.
type SketchStats struct {
	SketchName  string
	Runs        int
	Failed      int
	TotalFrames int64
	LastRun     time.Time
}

// GetSketchStats retrieves aggregated run statistics for a sketch.
func (s *Store) GetSketchStats(sketchName string) (*SketchStats, error) {
	stats := &SketchStats{SketchName: sketchName}
	var lastRun any

	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(error), COALESCE(SUM(frames), 0), MAX(created_at)
		 FROM runs WHERE sketch_name = ?`,
		sketchName,
	).Scan(&stats.Runs, &stats.Failed, &stats.TotalFrames, &lastRun)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get sketch stats: %w", err)
	}
	stats.LastRun = parseTime(lastRun)

	return stats, nil
}

// GetAllSketchStats retrieves run statistics for every sketch that has been run.
func (s *Store) GetAllSketchStats() (map[string]*SketchStats, error) {
	rows, err := s.db.Query(
		`SELECT sketch_name, COUNT(*), COUNT(error), SUM(frames), MAX(created_at)
		 FROM runs
		 GROUP BY sketch_name`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all sketch stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*SketchStats)
	for rows.Next() {
		var st SketchStats
		var lastRun any
		if err := rows.Scan(&st.SketchName, &st.Runs, &st.Failed, &st.TotalFrames, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastRun = parseTime(lastRun)
		stats[st.SketchName] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
