package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultSnapshotInterval is the minimum gap between automatic snapshots.
const DefaultSnapshotInterval = 24 * time.Hour

// SnapshotStore is the secondary, append-only backup store. It lives in a
// separate database so a corrupted primary never takes the backups with it.
type SnapshotStore struct {
	db *sql.DB
}

// OpenSnapshots opens (creating if needed) the snapshot database at path.
func OpenSnapshots(path string) (*SnapshotStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create backup dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open snapshot database: %w", err)
	}

	schema := `
CREATE TABLE IF NOT EXISTS snapshots (
    id TEXT PRIMARY KEY,
    taken_at TEXT NOT NULL,
    payload TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_taken ON snapshots(taken_at DESC);
`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init snapshot schema: %w", err)
	}

	return &SnapshotStore{db: db}, nil
}

// AppendSnapshot records a full-database payload taken at ts.
func (s *SnapshotStore) AppendSnapshot(ts time.Time, payload string) error {
	_, err := s.db.Exec(`
		INSERT INTO snapshots (id, taken_at, payload) VALUES (?, ?, ?)
	`, uuid.NewString(), ts.UTC().Format(time.RFC3339), payload)
	if err != nil {
		return fmt.Errorf("append snapshot: %w", err)
	}
	return nil
}

// LastSnapshotAt returns the timestamp of the most recent snapshot, or the
// zero time when none exist.
func (s *SnapshotStore) LastSnapshotAt() (time.Time, error) {
	var raw string
	err := s.db.QueryRow(`SELECT taken_at FROM snapshots ORDER BY taken_at DESC LIMIT 1`).Scan(&raw)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("query last snapshot: %w", err)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse snapshot time: %w", err)
	}
	return t, nil
}

// SnapshotIfDue appends a snapshot when the most recent one is older than
// interval. Returns true when a snapshot was taken.
func (s *SnapshotStore) SnapshotIfDue(now time.Time, interval time.Duration, payload string) (bool, error) {
	last, err := s.LastSnapshotAt()
	if err != nil {
		return false, err
	}
	if !last.IsZero() && now.Sub(last) < interval {
		return false, nil
	}
	if err := s.AppendSnapshot(now, payload); err != nil {
		return false, err
	}
	return true, nil
}

// Close closes the snapshot database.
func (s *SnapshotStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DefaultSnapshotPath returns the default snapshot database path.
func DefaultSnapshotPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "jot-backups.db"
	}
	return filepath.Join(home, ".local", "share", "jot", "backups.db")
}
