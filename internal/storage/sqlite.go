package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// SQLiteKV implements [KV] on top of a single kv table in SQLite.
type SQLiteKV struct {
	db *sql.DB
}

var _ KV = (*SQLiteKV)(nil)

// NewSQLiteKV creates a new [SQLiteKV] with the given database connection.
//
// The connection is expected to have the kv migration applied (see
// shared.RunMigrations).
func NewSQLiteKV(db *sql.DB) *SQLiteKV {
	return &SQLiteKV{db: db}
}

// Get returns the value for key and whether it was present.
func (s *SQLiteKV) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query key %s: %w", key, err)
	}

	return value, true, nil
}

// Set stores value under key, replacing any existing value.
func (s *SQLiteKV) Set(key, value string) error {
	query := `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := s.db.Exec(query, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to store key %s: %w", key, err)
	}

	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *SQLiteKV) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}

	return nil
}
