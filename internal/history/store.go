package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// Run is one recorded pipeline execution.
type Run struct {
	ID            string
	Timestamp     time.Time
	ScanPath      string
	Files         int
	Sources       int
	Headers       int
	Stubs         int
	Edges         int
	CodeLines     int
	CompiledLines int
	CycleWitness  string // empty when the run resolved cleanly
}

type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("history path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}

	// busy_timeout + WAL keep watch-mode runs from tripping over each other.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite history %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveRun persists one run row. A missing ID or timestamp is filled in.
func (s *Store) SaveRun(run Run) (Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now().UTC()
	}

	_, err := s.db.Exec(`
INSERT INTO runs (
  run_id, schema_version, ts_utc, scan_path, file_count, source_count,
  header_count, stub_count, edge_count, code_lines, compiled_lines, cycle_witness
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		run.ID,
		SchemaVersion,
		run.Timestamp.UTC().Format(time.RFC3339Nano),
		run.ScanPath,
		run.Files,
		run.Sources,
		run.Headers,
		run.Stubs,
		run.Edges,
		run.CodeLines,
		run.CompiledLines,
		run.CycleWitness,
	)
	if err != nil {
		return Run{}, fmt.Errorf("save run %s: %w", run.ID, err)
	}
	return run, nil
}

// LatestRuns returns up to limit runs, newest first.
func (s *Store) LatestRuns(limit int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(`
SELECT run_id, ts_utc, scan_path, file_count, source_count, header_count,
       stub_count, edge_count, code_lines, compiled_lines, cycle_witness
FROM runs
ORDER BY ts_utc DESC
LIMIT ?
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var ts string
		if err := rows.Scan(
			&run.ID, &ts, &run.ScanPath, &run.Files, &run.Sources, &run.Headers,
			&run.Stubs, &run.Edges, &run.CodeLines, &run.CompiledLines, &run.CycleWitness,
		); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			run.Timestamp = parsed
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
