// Package progress persists the reader's position in a small SQLite key/value
// table so it survives restarts.
package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	// Pure-Go SQLite driver; registers "sqlite".
	_ "modernc.org/sqlite"

	"github.com/five82/swipedeck/internal/deck"
)

// IndexKey is the key holding the current read index.
const IndexKey = "current_index"

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL DEFAULT (unixepoch())
);`

// Ensure Store implements deck.Persister at compile time.
var _ deck.Persister = (*Store)(nil)

// Store is a durable string key/value table.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path. ":memory:" keeps everything in
// memory.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("progress path is empty")
	}
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create progress dir: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open progress db: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serialises
	// writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect progress db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create progress schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the value for key; ok is false when the key is absent.
func (s *Store) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	err = s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, unixepoch())
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// LoadIndex reads the saved read index. A value that is not a decimal integer
// counts as unsaved.
func (s *Store) LoadIndex(ctx context.Context) (int, bool, error) {
	raw, ok, err := s.Get(ctx, IndexKey)
	if err != nil || !ok {
		return 0, false, err
	}
	idx, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false, nil
	}
	return idx, true, nil
}

// SaveIndex writes the read index as a decimal string.
func (s *Store) SaveIndex(ctx context.Context, index int) error {
	return s.Set(ctx, IndexKey, strconv.Itoa(index))
}
