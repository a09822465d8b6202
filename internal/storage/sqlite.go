// Package storage provides SQLite-based persistence for transition runs and
// level selections.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/chronoshift/internal/disintegrate"
)

// DefaultPath is where the database lives unless --db says otherwise.
const DefaultPath = "~/.chronoshift/chronoshift.db"

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunRecord is one persisted transition run.
type RunRecord struct {
	ID        int64
	RunID     int64
	Source    string // "tui", "ssh" or "simulate"
	Outcome   string
	Particles int
	Ticks     int
	FadeTick  int
	Duration  time.Duration
	CreatedAt time.Time
}

// RunTotals aggregates every recorded run.
type RunTotals struct {
	Runs      int
	Completed int
	Skipped   int
	Canceled  int
	AvgTicks  float64
	Particles int64
	LastRun   time.Time
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL,
			source TEXT NOT NULL,
			outcome TEXT NOT NULL,
			particles INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			fade_tick INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS selections (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
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

// RecordRun stores a finished run reported by source.
// Returns the ID of the inserted record.
func (s *Store) RecordRun(source string, r disintegrate.RunReport) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (run_id, source, outcome, particles, ticks, fade_tick, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, source, string(r.Outcome), r.Particles, r.Ticks, r.FadeTick, r.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, source, outcome, particles, ticks, fade_tick, duration_ms, created_at
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.RunID, &r.Source, &r.Outcome, &r.Particles, &r.Ticks, &r.FadeTick, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// Totals retrieves aggregated statistics over every recorded run.
func (s *Store) Totals() (*RunTotals, error) {
	totals := &RunTotals{}
	var lastRun any

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(outcome = 'completed'), 0),
		        COALESCE(SUM(outcome = 'skipped'), 0),
		        COALESCE(SUM(outcome = 'canceled'), 0),
		        COALESCE(AVG(CASE WHEN outcome = 'completed' THEN ticks END), 0),
		        COALESCE(SUM(particles), 0),
		        MAX(created_at)
		 FROM runs`,
	).Scan(&totals.Runs, &totals.Completed, &totals.Skipped, &totals.Canceled, &totals.AvgTicks, &totals.Particles, &lastRun)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run totals: %w", err)
	}
	totals.LastRun = parseTime(lastRun)

	return totals, nil
}

// ClearRuns deletes every recorded run.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// SaveSelection records that the player picked levelID.
func (s *Store) SaveSelection(levelID string) error {
	if levelID == "" {
		return fmt.Errorf("storage: empty level id")
	}
	if _, err := s.db.Exec("INSERT INTO selections (level_id) VALUES (?)", levelID); err != nil {
		return fmt.Errorf("storage: cannot save selection: %w", err)
	}
	return nil
}

// LastSelection returns the most recently selected level id, or "" if the
// player never picked one.
func (s *Store) LastSelection() (string, error) {
	var levelID string
	err := s.db.QueryRow(
		"SELECT level_id FROM selections ORDER BY id DESC LIMIT 1",
	).Scan(&levelID)

	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("storage: cannot query last selection: %w", err)
	}
	return levelID, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
