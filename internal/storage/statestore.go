// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the durable client-side state store.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrKeyNotFound indicates the requested key has no stored value.
	ErrKeyNotFound = errors.New("state key not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("state store is closed")
)

// =============================================================================
// WELL-KNOWN KEYS
// =============================================================================

// Keys used by the session layer. Kept here so every component that touches
// durable state agrees on the names.
const (
	KeyAuthToken     = "auth.token"
	KeyAuthExpiresAt = "auth.expires_at"
	KeySessionEnded  = "session.ended"
)

// =============================================================================
// STATE STORE
// =============================================================================

// StateStore is a small durable key/value store backed by SQLite.
//
// It holds the pieces of client state that must survive a restart: the
// bearer token, its expiry, and the one-shot session-ended flag. Writes are
// last-write-wins; the only multi-key guarantee is SetPair, which writes two
// keys in one transaction so a token is never persisted without its expiry.
type StateStore struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (creating if necessary) the state database at path.
func Open(path string) (*StateStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	// Single connection: the store is tiny and this sidesteps SQLite
	// write-lock contention between the watcher and in-flight requests.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS state (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize state schema: %w", err)
	}

	return &StateStore{db: db}, nil
}

// DefaultPath returns the default location of the state database.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".taskdeck", "state.db"), nil
}

// Close closes the underlying database. Safe to call more than once.
func (s *StateStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// =============================================================================
// READ OPERATIONS
// =============================================================================

// Get returns the value stored under key, or ErrKeyNotFound.
func (s *StateStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return "", ErrStoreClosed
	}

	var value string
	err := s.db.QueryRow(`SELECT value FROM state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read state key %q: %w", key, err)
	}
	return value, nil
}

// =============================================================================
// WRITE OPERATIONS
// =============================================================================

// Set stores value under key, replacing any previous value.
func (s *StateStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrStoreClosed
	}

	_, err := s.db.Exec(
		`INSERT INTO state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to write state key %q: %w", key, err)
	}
	return nil
}

// SetPair writes two keys in a single transaction.
// The session layer uses this so token and expiry are always set together.
func (s *StateStore) SetPair(key1, value1, key2, value2 string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrStoreClosed
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin state transaction: %w", err)
	}

	upsert := `INSERT INTO state (key, value) VALUES (?, ?)
	           ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := tx.Exec(upsert, key1, value1); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to write state key %q: %w", key1, err)
	}
	if _, err := tx.Exec(upsert, key2, value2); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to write state key %q: %w", key2, err)
	}
	return tx.Commit()
}

// Delete removes key. Deleting a missing key is a no-op.
func (s *StateStore) Delete(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrStoreClosed
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin state transaction: %w", err)
	}
	for _, key := range keys {
		if _, err := tx.Exec(`DELETE FROM state WHERE key = ?`, key); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to delete state key %q: %w", key, err)
		}
	}
	return tx.Commit()
}

// =============================================================================
// ONE-SHOT FLAGS
// =============================================================================

// SetFlag marks a boolean flag. Setting an already-set flag is a no-op.
func (s *StateStore) SetFlag(key string) error {
	return s.Set(key, "1")
}

// TakeFlag reads and clears a flag in one step. Returns true only for the
// first caller after the flag was set.
func (s *StateStore) TakeFlag(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return false, ErrStoreClosed
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin state transaction: %w", err)
	}

	var value string
	err = tx.QueryRow(`SELECT value FROM state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		tx.Rollback()
		return false, nil
	}
	if err != nil {
		tx.Rollback()
		return false, fmt.Errorf("failed to read flag %q: %w", key, err)
	}

	if _, err := tx.Exec(`DELETE FROM state WHERE key = ?`, key); err != nil {
		tx.Rollback()
		return false, fmt.Errorf("failed to clear flag %q: %w", key, err)
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return value == "1", nil
}
