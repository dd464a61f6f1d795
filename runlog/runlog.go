// Package runlog persists a history of organism runs to SQLite so the
// evolution of a pond can be analyzed after the fact.
package runlog

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Record describes one completed organism run.
type Record struct {
	ID        int64
	StartedAt time.Time
	EntryRow  int
	EntryCol  int
	Direction string // "<", ">", "^", or "v"
	Budget    int    // step budget the run started with
	Steps     int    // opcode dispatches performed
	Copies    int    // charged copies
}

// Store handles SQLite storage for run records
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (creating if needed) a run log database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Set busy timeout for concurrent access
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	// Create table if needed
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at INTEGER NOT NULL,
		entry_row INTEGER NOT NULL,
		entry_col INTEGER NOT NULL,
		direction TEXT NOT NULL,
		budget INTEGER NOT NULL,
		steps INTEGER NOT NULL,
		copies INTEGER NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun persists one run record and fills in its assigned ID.
func (s *Store) RecordRun(rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now()
	}
	res, err := s.db.Exec(
		`INSERT INTO runs (started_at, entry_row, entry_col, direction, budget, steps, copies)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.StartedAt.Unix(), rec.EntryRow, rec.EntryCol, rec.Direction,
		rec.Budget, rec.Steps, rec.Copies,
	)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	rec.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading run id: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit records, newest first.
func (s *Store) RecentRuns(limit int) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT id, started_at, entry_row, entry_col, direction, budget, steps, copies
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var startedAt int64
		if err := rows.Scan(&rec.ID, &startedAt, &rec.EntryRow, &rec.EntryCol,
			&rec.Direction, &rec.Budget, &rec.Steps, &rec.Copies); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		rec.StartedAt = time.Unix(startedAt, 0)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return records, nil
}

// CountRuns returns the total number of recorded runs.
func (s *Store) CountRuns() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting runs: %w", err)
	}
	return n, nil
}
