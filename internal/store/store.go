// Package store is the companion's persistence substrate: a single-table
// key/value SQLite database holding one JSON blob per collection, mirroring
// the localStorage model the front end expects. Writes are full overwrites of
// the value under a key; there is no transactionality across keys, so a crash
// between two saves can leave collections inconsistent. That is an accepted
// limitation, as is the absence of coordination between concurrent processes
// writing the same file.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Persistence keys. Each holds an independently loaded/saved JSON blob.
const (
	KeyMedications  = "av_medications"
	KeyMedLogs      = "av_med_logs"
	KeyAppointments = "av_appointments"
	KeyContacts     = "av_emergency_contacts"
	KeyHistory      = "av_history"
	KeyAPIKey       = "av_api_key"
	KeyDarkMode     = "av_dark_mode"
)

// Store is a key/value JSON store backed by SQLite.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open opens or creates the store database at the given path.
func Open(dbPath string, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads the value stored under key into a fresh T. A missing key,
// unreadable row, or corrupt JSON all return fallback; Load never fails.
// Data written by an older shape of the app that no longer unmarshals is
// treated the same as corruption.
func Load[T any](s *Store, key string, fallback T) T {
	var raw string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return fallback
	}
	if err != nil {
		s.logger.Warn("failed to read stored value, using fallback",
			zap.Error(err),
			zap.String("key", key),
		)
		return fallback
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		s.logger.Warn("corrupt stored value, using fallback",
			zap.Error(err),
			zap.String("key", key),
		)
		return fallback
	}
	return v
}

// Save marshals v and overwrites the value under key. Persistence is
// best-effort: failures are logged and swallowed, never surfaced to the
// caller. Callers pass the complete collection on every mutation.
func Save[T any](s *Store, key string, v T) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("failed to marshal value for storage",
			zap.Error(err),
			zap.String("key", key),
		)
		return
	}

	_, err = s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(raw),
	)
	if err != nil {
		s.logger.Error("failed to persist value",
			zap.Error(err),
			zap.String("key", key),
		)
	}
}

// Delete removes the value under key. No-op if absent.
func (s *Store) Delete(key string) {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		s.logger.Error("failed to delete stored value",
			zap.Error(err),
			zap.String("key", key),
		)
	}
}

// SaveRaw stores a pre-encoded value under key, bypassing JSON marshalling.
// Used by tests and by callers that manage their own encoding.
func (s *Store) SaveRaw(key, raw string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, raw,
	)
	return err
}
