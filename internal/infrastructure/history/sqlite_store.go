package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/envsync/internal/domain"
	"github.com/doeshing/envsync/internal/ports"
)

// timestampLayout is fixed-width so that text ordering matches time ordering.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore persists sync runs in a SQLite database.
type SQLiteStore struct {
	db    *sql.DB
	path  string
	mu    sync.Mutex
	jsonl *FileStore
}

// NewSQLiteStore creates (or opens) the database at path. If SQLite cannot
// be initialised the store degrades to a JSONL file beside it.
func NewSQLiteStore(path string) *SQLiteStore {
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return newDegradedStore(path)
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		_ = db.Close()
		return newDegradedStore(path)
	}
	return store
}

// newDegradedStore routes every call to a JSONL file beside path.
func newDegradedStore(path string) *SQLiteStore {
	jsonlPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".jsonl"
	return &SQLiteStore{path: path, jsonl: NewFileStore(jsonlPath)}
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		timestamp TEXT NOT NULL,
		manifest_path TEXT,
		env_path TEXT,
		keys INTEGER,
		warnings INTEGER
	);`)
	return err
}

// Save inserts a new record.
func (s *SQLiteStore) Save(record domain.RunRecord) error {
	if s.db == nil {
		return s.fallback().Save(record)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO runs
		(id, timestamp, manifest_path, env_path, keys, warnings)
		VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Timestamp.UTC().Format(timestampLayout),
		record.ManifestPath,
		record.EnvPath,
		record.Keys,
		record.Warnings,
	)
	return err
}

// List returns the most recent runs first. limit <= 0 returns everything.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if s.db == nil {
		return s.fallback().List(ctx, limit)
	}
	builder := strings.Builder{}
	builder.WriteString("SELECT id, timestamp, manifest_path, env_path, keys, warnings FROM runs ORDER BY timestamp DESC, rowid DESC")
	var args []interface{}
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.RunRecord
	for rows.Next() {
		var rec domain.RunRecord
		var ts string
		if err := rows.Scan(&rec.ID, &ts, &rec.ManifestPath, &rec.EnvPath, &rec.Keys, &rec.Warnings); err != nil {
			return nil, err
		}
		if t, err := time.Parse(timestampLayout, ts); err == nil {
			rec.Timestamp = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all runs.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return s.fallback().Clear()
	}
	_, err := s.db.Exec("DELETE FROM runs")
	return err
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Degraded reports whether the store fell back to JSONL.
func (s *SQLiteStore) Degraded() bool {
	return s.db == nil
}

func (s *SQLiteStore) fallback() *FileStore {
	return s.jsonl
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
