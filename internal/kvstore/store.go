package kvstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

// KV is the contract shared by the plain and expiring store variants.
// Get reports false when the key is absent or the read failed; in both
// cases the caller keeps whatever default dest already holds. Set and
// Remove never surface errors to callers: storage failures are logged
// and the operation is dropped.
type KV interface {
	Get(key string, dest interface{}) bool
	Set(key string, value interface{})
	Remove(key string)
}

// DB owns the SQLite connection backing every store variant.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path and ensures the
// kv table exists.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createTable(db); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db: db}, nil
}

func createTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) getRaw(key string) (string, bool, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %q: %w", key, err)
	}
	return value, true, nil
}

func (d *DB) setRaw(key, value string) error {
	_, err := d.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write key %q: %w", key, err)
	}
	return nil
}

func (d *DB) deleteRaw(key string) error {
	if _, err := d.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete key %q: %w", key, err)
	}
	return nil
}

// Store is the plain variant: JSON payloads, no expiry, plaintext at rest.
type Store struct {
	db *DB
}

// NewStore returns the plain store over db.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

func (s *Store) Get(key string, dest interface{}) bool {
	raw, ok, err := s.db.getRaw(key)
	if err != nil {
		log.Printf("[kvstore] read %q failed, using default: %v", key, err)
		return false
	}
	if !ok {
		return false
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.Printf("[kvstore] decode %q failed, using default: %v", key, err)
		return false
	}
	return true
}

func (s *Store) Set(key string, value interface{}) {
	payload, err := json.Marshal(value)
	if err != nil {
		log.Printf("[kvstore] encode %q failed, write dropped: %v", key, err)
		return
	}
	if err := s.db.setRaw(key, string(payload)); err != nil {
		log.Printf("[kvstore] write %q failed: %v", key, err)
	}
}

func (s *Store) Remove(key string) {
	if err := s.db.deleteRaw(key); err != nil {
		log.Printf("[kvstore] remove %q failed: %v", key, err)
	}
}
