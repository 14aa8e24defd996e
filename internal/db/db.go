// Package db keeps the installer's step journal in a SQLite file inside the
// install directory.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const (
	FileName = "install.db"

	StatusOK      = "ok"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

var ErrNoRuns = errors.New("no installer runs recorded")

type DB struct {
	*sql.DB
}

// Step is one journal row.
type Step struct {
	ID        int64     `json:"id"`
	RunID     string    `json:"run_id"`
	Step      string    `json:"step"`
	Status    string    `json:"status"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	dbWrapper := &DB{DB: db}

	if err := dbWrapper.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return dbWrapper, nil
}

func (db *DB) createTables() error {
	query := `
	CREATE TABLE IF NOT EXISTS install_steps (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		step TEXT NOT NULL,
		status TEXT NOT NULL,
		detail TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS install_steps_run_id ON install_steps (run_id);
	`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("creating install_steps table: %w", err)
	}

	return nil
}

func (db *DB) RecordStep(runID, step, status, detail string) error {
	query := `INSERT INTO install_steps (run_id, step, status, detail, created_at) VALUES (?, ?, ?, ?, ?)`

	if _, err := db.Exec(query, runID, step, status, detail, time.Now().UTC()); err != nil {
		return fmt.Errorf("recording step %s: %w", step, err)
	}
	return nil
}

// LatestRunID returns the run that wrote the most recent row.
func (db *DB) LatestRunID() (string, error) {
	var runID string
	err := db.QueryRow(`SELECT run_id FROM install_steps ORDER BY id DESC LIMIT 1`).Scan(&runID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", ErrNoRuns
		}
		return "", fmt.Errorf("querying latest run: %w", err)
	}
	return runID, nil
}

// StepsForRun returns the run's rows in the order they were written.
func (db *DB) StepsForRun(runID string) ([]Step, error) {
	rows, err := db.Query(`SELECT id, run_id, step, status, detail, created_at FROM install_steps WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying steps: %w", err)
	}
	defer rows.Close()

	var steps []Step
	for rows.Next() {
		var s Step
		if err := rows.Scan(&s.ID, &s.RunID, &s.Step, &s.Status, &s.Detail, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning step: %w", err)
		}
		steps = append(steps, s)
	}
	return steps, rows.Err()
}
