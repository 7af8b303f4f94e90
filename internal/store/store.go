// Package store implements the encrypted session store for Kognita.
//
// It uses a single SQLite file. Session rows carry a plaintext indexed
// start_time next to the sealed payload blob, so date-range filters push
// down to SQL while the sensitive detail (process, title, duration)
// stays encrypted; everything else — category map, goals, achievements,
// notifications — is plaintext lookup data. The codec boundary is the
// only place session plaintext exists outside the tracker.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/Rtur2003/Kognita/internal/codec"
)

// DBFileName is the store's file name inside the data directory.
const DBFileName = "kognita.db"

// DefaultCategory is assigned to any process without a mapping.
const DefaultCategory = "Other"

// Sentinel errors callers branch on.
var (
	ErrNotFound      = errors.New("store: not found")
	ErrDuplicateGoal = errors.New("store: goal already exists")
)

// Store is the single-file session store. A *sql.DB serializes access
// internally, which is the only cross-loop coordination the design needs.
type Store struct {
	db    *sql.DB
	codec *codec.Codec
	log   *slog.Logger
}

// Open creates or opens the store at path, applies pragmas and
// migrations, and installs the seed category map on first run.
func Open(path string, c *codec.Codec, log *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("store: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, codec: c, log: log}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("store: migration: %w", err)
	}
	if err := s.seedCategories(); err != nil {
		return nil, fmt.Errorf("store: seed categories: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			start_time INTEGER NOT NULL,
			payload    BLOB    NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_sessions_start ON sessions(start_time);

		CREATE TABLE IF NOT EXISTS app_categories (
			process_name TEXT PRIMARY KEY,
			category     TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS goals (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			category           TEXT    NOT NULL DEFAULT '',
			process_name       TEXT    NOT NULL DEFAULT '',
			goal_type          TEXT    NOT NULL,
			time_limit_minutes INTEGER NOT NULL DEFAULT 0,
			start_time_of_day  TEXT    NOT NULL DEFAULT '',
			end_time_of_day    TEXT    NOT NULL DEFAULT '',
			UNIQUE(category, process_name, goal_type, start_time_of_day, end_time_of_day)
		);

		CREATE TABLE IF NOT EXISTS achievements (
			achievement_id TEXT PRIMARY KEY,
			name           TEXT NOT NULL,
			description    TEXT NOT NULL,
			icon_ref       TEXT NOT NULL DEFAULT '',
			unlocked_at    INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS notifications (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			title     TEXT    NOT NULL,
			message   TEXT    NOT NULL,
			type      TEXT    NOT NULL DEFAULT '',
			is_read   INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_notifications_read ON notifications(is_read);
	`
	_, err := s.db.Exec(schema)
	return err
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure. modernc/sqlite exposes no typed error for this, so match the
// message the way the driver emits it.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
