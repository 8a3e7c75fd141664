package state

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore creates a new store instance.
func NewSQLiteStore() *SQLiteStore {
	return &SQLiteStore{}
}

// NewSQLiteStoreWithDB wraps an existing connection. Used by tests.
func NewSQLiteStoreWithDB(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Open opens a connection to the SQLite database.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open state database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping state database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// NewRunID creates a new run identifier.
func NewRunID() string {
	return uuid.New().String()
}

// SaveScanRun persists a run and its per-detector counts atomically.
func (s *SQLiteStore) SaveScanRun(run *ScanRun, counts []DetectorCount) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if run.ID == "" {
		run.ID = NewRunID()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO scan_runs (id, started_at, completed_at, baseline_path, files_scanned, secrets_found, new_secrets)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.CompletedAt.UTC().Format(time.RFC3339Nano),
		run.BaselinePath,
		run.FilesScanned,
		run.SecretsFound,
		run.NewSecrets,
	)
	if err != nil {
		return fmt.Errorf("failed to insert scan run: %w", err)
	}

	for _, c := range counts {
		if _, err := tx.Exec(`
			INSERT INTO detector_counts (run_id, detector_type, count)
			VALUES (?, ?, ?)`,
			run.ID, c.Type, c.Count,
		); err != nil {
			return fmt.Errorf("failed to insert detector count: %w", err)
		}
	}

	return tx.Commit()
}

// ListScanRuns returns the most recent runs, newest first.
func (s *SQLiteStore) ListScanRuns(limit int) ([]*ScanRun, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, started_at, completed_at, baseline_path, files_scanned, secrets_found, new_secrets
		FROM scan_runs
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query scan runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*ScanRun
	for rows.Next() {
		var run ScanRun
		var started, completed string
		if err := rows.Scan(&run.ID, &started, &completed, &run.BaselinePath,
			&run.FilesScanned, &run.SecretsFound, &run.NewSecrets); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		run.CompletedAt, _ = time.Parse(time.RFC3339Nano, completed)
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

// DetectorCounts returns per-detector counts for one run, sorted by type.
func (s *SQLiteStore) DetectorCounts(runID string) ([]DetectorCount, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.Query(`
		SELECT run_id, detector_type, count
		FROM detector_counts
		WHERE run_id = ?
		ORDER BY detector_type`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query detector counts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var counts []DetectorCount
	for rows.Next() {
		var c DetectorCount
		if err := rows.Scan(&c.RunID, &c.Type, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan count row: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
