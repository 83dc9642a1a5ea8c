package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists entries in an embedded SQLite database, one row per
// feed name.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed creates) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_journal=WAL")
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS feed_cache (
			name        TEXT PRIMARY KEY,
			cached_time INTEGER NOT NULL,
			payload     BLOB NOT NULL
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create cache table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get reads the entry for name. Unreadable rows report ErrNotFound, the
// same as absent ones.
func (s *SQLiteStore) Get(name string) (Entry, error) {
	var cachedUnix int64
	var payload []byte
	err := s.db.QueryRow(
		`SELECT cached_time, payload FROM feed_cache WHERE name = ?`, name,
	).Scan(&cachedUnix, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, ErrNotFound
	}
	return Entry{CachedTime: time.Unix(cachedUnix, 0), Payload: payload}, nil
}

// Put upserts the entry for name.
func (s *SQLiteStore) Put(name string, e Entry) error {
	_, err := s.db.Exec(
		`INSERT INTO feed_cache (name, cached_time, payload) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET cached_time = excluded.cached_time, payload = excluded.payload`,
		name, e.CachedTime.Unix(), e.Payload,
	)
	if err != nil {
		return fmt.Errorf("store cache entry %s: %w", name, err)
	}
	return nil
}
