// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/cache/cache.go
// Summary: SQLite record of files known to be formatted.
//
// A file is recorded once formatting leaves it unchanged (or after it has
// been rewritten). Later runs with the same options skip files whose content
// digest still matches, so repeated -w and -l runs over large trees only
// reformat what changed.

package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Current schema version; bump when the table layout changes.
const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS formatted (
    path       TEXT PRIMARY KEY,
    digest     TEXT NOT NULL,   -- SHA-256 of the formatted content
    options    TEXT NOT NULL,   -- fingerprint of the formatting options
    checked_at INTEGER NOT NULL -- UnixNano
);
`

// Cache records formatted file digests in a SQLite database.
type Cache struct {
	db *sql.DB
}

// Open opens (creating if needed) the cache database at path.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to check schema version: %w", err)
	}
	return &Cache{db: db}, nil
}

// migrate drops stale records when the stored schema version differs.
func migrate(db *sql.DB) error {
	var current int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&current)
	if err != nil && err != sql.ErrNoRows {
		return err
	}
	if current == schemaVersion {
		return nil
	}
	if current != 0 {
		log.Printf("[CACHE] Schema version changed (%d -> %d), clearing cache", current, schemaVersion)
		if _, err := db.Exec("DELETE FROM formatted"); err != nil {
			return err
		}
	}
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", schemaVersion)
	return err
}

// Digest returns the hex SHA-256 of data.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// IsFormatted reports whether path was recorded with exactly this content
// and options fingerprint.
func (c *Cache) IsFormatted(path string, content []byte, options string) (bool, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}
	var digest, opts string
	err = c.db.QueryRow("SELECT digest, options FROM formatted WHERE path = ?", key).Scan(&digest, &opts)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return digest == Digest(content) && opts == options, nil
}

// Record stores content as the formatted state of path.
func (c *Cache) Record(path string, content []byte, options string) error {
	key, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	_, err = c.db.Exec(`
		INSERT INTO formatted (path, digest, options, checked_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET digest = excluded.digest, options = excluded.options, checked_at = excluded.checked_at`,
		key, Digest(content), options, time.Now().UnixNano())
	return err
}

// Forget removes any record for path.
func (c *Cache) Forget(path string) error {
	key, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	_, err = c.db.Exec("DELETE FROM formatted WHERE path = ?", key)
	return err
}

// Close closes the database.
func (c *Cache) Close() error {
	return c.db.Close()
}
