// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session tracks the bearer token and its expiry.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/DarthRevanXX/assignment-front/internal/storage"
)

// =============================================================================
// SESSION STORE
// =============================================================================

// Store holds the bearer token and its absolute expiry.
//
// All reads are served from memory; every mutation is written through to the
// durable state store before the in-memory copy changes, so a crash between
// the two never leaves a token visible that was not persisted.
type Store struct {
	mu sync.Mutex

	state  *storage.StateStore
	sealer *storage.Sealer

	token     string
	expiresAt time.Time // zero when the server sent no expiry

	// now is swappable for tests.
	now func() time.Time
}

// NewStore creates a session store hydrated from durable state.
//
// A token persisted by a previous run is loaded even if already expired;
// expiry checks answer from the loaded timestamp. A token that cannot be
// unsealed is treated as absent and removed from storage.
func NewStore(state *storage.StateStore, sealer *storage.Sealer) (*Store, error) {
	s := &Store{
		state:  state,
		sealer: sealer,
		now:    time.Now,
	}
	if err := s.hydrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) hydrate() error {
	sealed, err := s.state.Get(storage.KeyAuthToken)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	token, err := s.sealer.Open(sealed)
	if err != nil {
		// SECURITY: an unreadable token is dropped rather than surfaced,
		// forcing a fresh login instead of failing startup.
		s.state.Delete(storage.KeyAuthToken, storage.KeyAuthExpiresAt)
		return nil
	}
	s.token = token

	raw, err := s.state.Get(storage.KeyAuthExpiresAt)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load session expiry: %w", err)
	}
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		s.expiresAt = time.UnixMilli(ms)
	}
	return nil
}

// =============================================================================
// MUTATIONS
// =============================================================================

// SetToken records a fresh token. When expiresInSeconds is positive the
// absolute expiry is computed from the current clock; zero means the server
// sent no expiry and the token is treated as non-expiring locally.
func (s *Store) SetToken(token string, expiresInSeconds int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sealed, err := s.sealer.Seal(token)
	if err != nil {
		return fmt.Errorf("failed to seal token: %w", err)
	}

	var expiresAt time.Time
	if expiresInSeconds > 0 {
		expiresAt = s.now().Add(time.Duration(expiresInSeconds) * time.Second)
		err = s.state.SetPair(
			storage.KeyAuthToken, sealed,
			storage.KeyAuthExpiresAt, strconv.FormatInt(expiresAt.UnixMilli(), 10),
		)
	} else {
		if err = s.state.Set(storage.KeyAuthToken, sealed); err == nil {
			err = s.state.Delete(storage.KeyAuthExpiresAt)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	s.token = token
	s.expiresAt = expiresAt
	return nil
}

// Clear forgets the token and expiry, in storage and in memory.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.state.Delete(storage.KeyAuthToken, storage.KeyAuthExpiresAt); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.token = ""
	s.expiresAt = time.Time{}
	return nil
}

// =============================================================================
// READS
// =============================================================================

// Token returns the current bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// HasToken reports whether a token is present, expired or not.
func (s *Store) HasToken() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// ExpiresAt returns the absolute expiry. ok is false when no expiry was
// recorded for the current token.
func (s *Store) ExpiresAt() (t time.Time, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiresAt, !s.expiresAt.IsZero()
}

// IsTokenExpired reports whether the session is unusable: no token at all,
// or a recorded expiry at or before now. A token without a recorded expiry
// never expires locally.
func (s *Store) IsTokenExpired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" {
		return true
	}
	if s.expiresAt.IsZero() {
		return false
	}
	return !s.now().Before(s.expiresAt)
}

// IsTokenExpiringSoon reports whether the token expires within threshold.
// A token already past its expiry also counts. False when there is no token
// or no recorded expiry.
func (s *Store) IsTokenExpiringSoon(threshold time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" || s.expiresAt.IsZero() {
		return false
	}
	return s.expiresAt.Sub(s.now()) <= threshold
}

// RemainingTime returns time until expiry, 0 when expired, and a false ok
// when no expiry is recorded.
func (s *Store) RemainingTime() (d time.Duration, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" || s.expiresAt.IsZero() {
		return 0, false
	}
	remaining := s.expiresAt.Sub(s.now())
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// =============================================================================
// SESSION-ENDED FLAG
// =============================================================================

// MarkEnded durably records that the session ended without an explicit
// logout, so the next login screen can explain why.
func (s *Store) MarkEnded() error {
	return s.state.SetFlag(storage.KeySessionEnded)
}

// TakeEnded reads and clears the session-ended flag.
func (s *Store) TakeEnded() bool {
	set, err := s.state.TakeFlag(storage.KeySessionEnded)
	if err != nil {
		return false
	}
	return set
}

// =============================================================================
// TEST HOOKS
// =============================================================================

// SetClockForTesting swaps the clock used for expiry computations.
func (s *Store) SetClockForTesting(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}
