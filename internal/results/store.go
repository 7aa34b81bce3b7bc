// Package results keeps a SQLite ledger of analysis runs and the values
// each run produced.
package results

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrRunNotFound is returned by Get for an unknown run id.
var ErrRunNotFound = errors.New("run not found")

// timeLayout has a fixed width so stored times sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Run is one recorded procedure invocation.
type Run struct {
	ID           string
	Command      string
	Distribution string
	Region       string
	DataFile     string
	StartedAt    time.Time
	Values       map[string]float64
}

// Names returns the value names in sorted order.
func (r *Run) Names() []string {
	names := make([]string, 0, len(r.Values))
	for name := range r.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Store manages the run ledger database.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex
}

// NewStore creates or opens the ledger at path.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	store := &Store{db: db, dbPath: path}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		command TEXT NOT NULL,
		distribution TEXT NOT NULL,
		region TEXT NOT NULL,
		data_file TEXT NOT NULL,
		started_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

	CREATE TABLE IF NOT EXISTS run_values (
		run_id TEXT NOT NULL,
		name TEXT NOT NULL,
		value REAL NOT NULL,
		PRIMARY KEY (run_id, name),
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record stores run and its values. A missing ID or start time is filled
// in; the stored ID is returned.
func (s *Store) Record(ctx context.Context, run *Run) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, command, distribution, region, data_file, started_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, run.Command, run.Distribution, run.Region, run.DataFile,
		run.StartedAt.UTC().Format(timeLayout))
	if err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}
	for _, name := range run.Names() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_values (run_id, name, value) VALUES (?, ?, ?)`,
			run.ID, name, run.Values[name]); err != nil {
			return "", fmt.Errorf("failed to record value %s: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return run.ID, nil
}

// List returns the most recent runs, newest first. limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, command, distribution, region, data_file, started_at
		FROM runs ORDER BY started_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for _, run := range runs {
		if run.Values, err = s.values(ctx, run.ID); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// Get returns one run with its values.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, command, distribution, region, data_file, started_at
		FROM runs WHERE id = ?
	`, id)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if run.Values, err = s.values(ctx, id); err != nil {
		return nil, err
	}
	return run, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		run     Run
		started string
	)
	if err := row.Scan(&run.ID, &run.Command, &run.Distribution, &run.Region, &run.DataFile, &started); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}
	t, err := time.Parse(timeLayout, started)
	if err != nil {
		return nil, fmt.Errorf("run %s: bad start time %q: %w", run.ID, started, err)
	}
	run.StartedAt = t
	return &run, nil
}

func (s *Store) values(ctx context.Context, id string) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, value FROM run_values WHERE run_id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load values of %s: %w", id, err)
	}
	defer rows.Close()

	values := make(map[string]float64)
	for rows.Next() {
		var (
			name  string
			value float64
		)
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		values[name] = value
	}
	return values, rows.Err()
}
