package history

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/sitelint/internal/foundation/errors"
)

// ErrRunNotFound is returned by Get for unknown run ids.
var ErrRunNotFound = stderrors.New("run not found")

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens (creating if needed) the run history database.
// Use ":memory:" for an in-memory database, or a file path for persistent storage.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryStorage, "open run history").
			WithPath(dbPath).
			Build()
	}
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, errors.WrapError(err, errors.CategoryStorage, "initialize run history schema").
			WithPath(dbPath).
			Build()
	}

	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		revision TEXT,
		duration_ms INTEGER NOT NULL,
		passed INTEGER NOT NULL,
		errors INTEGER NOT NULL,
		warnings INTEGER NOT NULL,
		documents INTEGER NOT NULL,
		a11y_score INTEGER,
		issues BLOB
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record stores a run.
func (s *SQLiteStore) Record(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	var score sql.NullInt64
	if run.A11yScore != nil {
		score = sql.NullInt64{Int64: int64(*run.A11yScore), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, revision, duration_ms, passed, errors, warnings, documents, a11y_score, issues)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UnixMilli(), run.Revision, run.Duration.Milliseconds(),
		run.Passed, run.Errors, run.Warnings, run.Documents, score, run.Issues,
	)
	if err != nil {
		return errors.WrapError(err, errors.CategoryStorage, "insert run").
			WithContext("run_id", run.ID).
			Build()
	}
	return nil
}

// Latest returns up to limit runs, newest first.
func (s *SQLiteStore) Latest(ctx context.Context, limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, revision, duration_ms, passed, errors, warnings, documents, a11y_score, issues
		FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return runs, nil
}

// Get returns one run by id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, revision, duration_ms, passed, errors, warnings, documents, a11y_score, issues
		FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrRunNotFound
	}
	return run, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		run        Run
		startedMS  int64
		durationMS int64
		revision   sql.NullString
		score      sql.NullInt64
	)
	err := row.Scan(&run.ID, &startedMS, &revision, &durationMS, &run.Passed,
		&run.Errors, &run.Warnings, &run.Documents, &score, &run.Issues)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}

	run.StartedAt = time.UnixMilli(startedMS)
	run.Duration = time.Duration(durationMS) * time.Millisecond
	run.Revision = revision.String
	if score.Valid {
		v := int(score.Int64)
		run.A11yScore = &v
	}
	return run, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
