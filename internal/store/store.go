// Package store persists finished outlines in SQLite so a document that has
// already been outlined with the same heuristics is not parsed again.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dgallion1/docoutline/internal/doctree"
	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS outlines (
	cache_key  TEXT PRIMARY KEY,
	filename   TEXT NOT NULL,
	outline    TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// Store wraps the SQLite outline cache.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the cache database at path.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging cache: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the cached outline for key. The boolean is false on a miss.
func (s *Store) Get(ctx context.Context, key string) (*doctree.Outline, bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, "SELECT outline FROM outlines WHERE cache_key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query cache: %w", err)
	}

	var o doctree.Outline
	if err := json.Unmarshal([]byte(raw), &o); err != nil {
		return nil, false, fmt.Errorf("decode cached outline: %w", err)
	}
	if o.Outline == nil {
		o.Outline = []doctree.Heading{}
	}
	return &o, true, nil
}

// Put stores o under key, replacing any earlier entry.
func (s *Store) Put(ctx context.Context, key, filename string, o *doctree.Outline) error {
	raw, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("encode outline: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO outlines (cache_key, filename, outline)
		VALUES (?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET
			filename = excluded.filename,
			outline = excluded.outline,
			updated_at = CURRENT_TIMESTAMP
	`, key, filename, string(raw))
	if err != nil {
		return fmt.Errorf("store outline: %w", err)
	}
	return nil
}
