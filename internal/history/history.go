// Package history keeps an advisory ledger of capture invocations in
// SQLite. The ledger is diagnostics only: a write failure is logged by
// the caller and never fails a capture.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Record is one capture invocation as stored in the ledger.
type Record struct {
	RunID        string
	Fixture      string
	Outcome      string // "success" or "failure"
	Error        string
	ArtifactPath string
	ArtifactSize int64
	Duration     time.Duration
	CreatedAt    time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS capture_runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	fixture TEXT NOT NULL,
	outcome TEXT NOT NULL,
	error TEXT NOT NULL DEFAULT '',
	artifact_path TEXT NOT NULL DEFAULT '',
	artifact_bytes INTEGER NOT NULL DEFAULT 0,
	duration_ms INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_capture_runs_fixture ON capture_runs(fixture);
`

// Ledger is the SQLite-backed run history.
type Ledger struct {
	db     *sql.DB
	dbPath string
}

// Open initialises the ledger database at path, creating the schema and
// parent directories as needed.
func Open(path string) (*Ledger, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize ledger schema: %w", err)
	}
	return &Ledger{db: db, dbPath: path}, nil
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Append records one invocation. CreatedAt defaults to now when unset.
func (l *Ledger) Append(r Record) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	_, err := l.db.Exec(
		`INSERT INTO capture_runs
			(run_id, fixture, outcome, error, artifact_path, artifact_bytes, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Fixture, r.Outcome, r.Error,
		r.ArtifactPath, r.ArtifactSize, r.Duration.Milliseconds(),
		r.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to append capture run: %w", err)
	}
	return nil
}

// Recent returns the newest n records, most recent first.
func (l *Ledger) Recent(n int) ([]Record, error) {
	rows, err := l.db.Query(
		`SELECT run_id, fixture, outcome, error, artifact_path, artifact_bytes, duration_ms, created_at
		 FROM capture_runs ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query capture runs: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var durationMs int64
		var createdAt string
		if err := rows.Scan(&r.RunID, &r.Fixture, &r.Outcome, &r.Error,
			&r.ArtifactPath, &r.ArtifactSize, &durationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan capture run: %w", err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			r.CreatedAt = ts
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
