// Package store persists solve runs to SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var (
	// ErrNotFound is returned by Get for an unknown run ID.
	ErrNotFound = errors.New("store: run not found")

	// ErrStoreClosed is returned by every call after Close.
	ErrStoreClosed = errors.New("store: closed")
)

// timeLayout is fixed width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Run is one finished (or stopped) solve.
type Run struct {
	ID        string        `json:"id"`
	Scenario  string        `json:"scenario"`
	Digest    string        `json:"digest"`
	Start     string        `json:"start"`
	Agents    int           `json:"agents"`
	Budget    int           `json:"budget"`
	Score     int           `json:"score"`
	Nodes     int64         `json:"nodes"`
	Elapsed   time.Duration `json:"elapsed"`
	Complete  bool          `json:"complete"`
	CreatedAt time.Time     `json:"created_at"`
}

// SQLiteStore keeps run history in a single table.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// Open opens or creates the database at path (":memory:" for tests).
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Every pooled connection to ":memory:" would see its own database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			scenario TEXT NOT NULL,
			digest TEXT NOT NULL,
			start TEXT NOT NULL,
			agents INTEGER NOT NULL,
			budget INTEGER NOT NULL,
			score INTEGER NOT NULL,
			nodes INTEGER NOT NULL,
			elapsed_ns INTEGER NOT NULL,
			complete INTEGER NOT NULL,
			created_at TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_runs_created_at
		ON runs(created_at)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save inserts run, assigning an ID and timestamp when they are empty.
// It returns the stored run.
func (s *SQLiteStore) Save(ctx context.Context, run Run) (Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Run{}, ErrStoreClosed
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, scenario, digest, start, agents, budget, score, nodes, elapsed_ns, complete, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Scenario, run.Digest, run.Start, run.Agents, run.Budget, run.Score,
		run.Nodes, int64(run.Elapsed), run.Complete, run.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return Run{}, fmt.Errorf("save run: %w", err)
	}
	return run, nil
}

// Get loads one run by ID.
func (s *SQLiteStore) Get(ctx context.Context, id string) (Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Run{}, ErrStoreClosed
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, scenario, digest, start, agents, budget, score, nodes, elapsed_ns, complete, created_at
		FROM runs WHERE id = ?
	`, id)
	run, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("load run: %w", err)
	}
	return run, nil
}

// List returns up to limit runs, newest first. limit <= 0 means all.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, scenario, digest, start, agents, budget, score, nodes, elapsed_ns, complete, created_at
		FROM runs
		ORDER BY created_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Close releases the database. It is safe to call more than once.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(sc scanner) (Run, error) {
	var (
		run     Run
		elapsed int64
		created string
	)
	err := sc.Scan(&run.ID, &run.Scenario, &run.Digest, &run.Start, &run.Agents, &run.Budget,
		&run.Score, &run.Nodes, &elapsed, &run.Complete, &created)
	if err != nil {
		return Run{}, err
	}
	run.Elapsed = time.Duration(elapsed)
	run.CreatedAt, _ = time.Parse(timeLayout, created)
	return run, nil
}
