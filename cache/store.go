// Package cache provides a content-addressed compile cache backed by
// SQLite. Source text hashes to a key; compiled chunk bytes are stored
// against it so unchanged sources skip recompilation.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS chunks (
	hash       TEXT PRIMARY KEY,
	bytecode   BLOB NOT NULL,
	created_at INTEGER NOT NULL
);
`

// ErrMiss is returned by Get when no entry exists for a key.
var ErrMiss = errors.New("cache: miss")

// Store is a compile cache. Safe for concurrent use; database/sql
// serializes access to the underlying connection.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the cache database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Key derives the cache key for source text.
func Key(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// Put stores compiled chunk bytes under key, replacing any existing entry.
func (s *Store) Put(key string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO chunks (hash, bytecode, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(hash) DO UPDATE SET bytecode = excluded.bytecode, created_at = excluded.created_at`,
		key, data, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("cache: put %s: %w", key, err)
	}
	return nil
}

// Get returns the chunk bytes stored under key, or ErrMiss.
func (s *Store) Get(key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT bytecode FROM chunks WHERE hash = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache: get %s: %w", key, err)
	}
	return data, nil
}

// Len returns the number of cached entries.
func (s *Store) Len() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM chunks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("cache: count: %w", err)
	}
	return n, nil
}
