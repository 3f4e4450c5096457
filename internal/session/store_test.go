// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/DarthRevanXX/assignment-front/internal/storage"
)

func openTestState(t *testing.T) (*storage.StateStore, *storage.Sealer) {
	t.Helper()
	dir := t.TempDir()
	state, err := storage.Open(filepath.Join(dir, "state.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { state.Close() })
	sealer, err := storage.NewSealer(filepath.Join(dir, "state.key"))
	if err != nil {
		t.Fatalf("storage.NewSealer: %v", err)
	}
	return state, sealer
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	state, sealer := openTestState(t)
	store, err := NewStore(state, sealer)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

// =============================================================================
// TOKEN LIFECYCLE TESTS
// =============================================================================

func TestStore_SetToken(t *testing.T) {
	store := newTestStore(t)

	base := time.Now()
	store.SetClockForTesting(func() time.Time { return base })

	if err := store.SetToken("abc", 3600); err != nil {
		t.Fatalf("SetToken: %v", err)
	}

	if got := store.Token(); got != "abc" {
		t.Errorf("Token = %q, want abc", got)
	}
	if !store.HasToken() {
		t.Error("HasToken should be true")
	}

	expiresAt, ok := store.ExpiresAt()
	if !ok {
		t.Fatal("ExpiresAt should be recorded")
	}
	want := base.Add(time.Hour)
	if diff := expiresAt.Sub(want); diff < -time.Millisecond || diff > time.Millisecond {
		t.Errorf("ExpiresAt = %v, want %v", expiresAt, want)
	}
}

func TestStore_SetTokenWithoutExpiry(t *testing.T) {
	store := newTestStore(t)

	if err := store.SetToken("abc", 0); err != nil {
		t.Fatalf("SetToken: %v", err)
	}

	if _, ok := store.ExpiresAt(); ok {
		t.Error("ExpiresAt should not be recorded when server sent none")
	}
	if store.IsTokenExpired() {
		t.Error("token without expiry must not expire locally")
	}
	if store.IsTokenExpiringSoon(24 * time.Hour) {
		t.Error("token without expiry is never expiring soon")
	}
}

func TestStore_Clear(t *testing.T) {
	store := newTestStore(t)
	store.SetToken("abc", 3600)

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if store.HasToken() {
		t.Error("HasToken after Clear should be false")
	}
	if !store.IsTokenExpired() {
		t.Error("cleared store counts as expired")
	}
}

// =============================================================================
// EXPIRY TESTS
// =============================================================================

func TestStore_IsTokenExpired(t *testing.T) {
	store := newTestStore(t)

	// No token at all counts as expired.
	if !store.IsTokenExpired() {
		t.Error("empty store should report expired")
	}

	base := time.Now()
	now := base
	store.SetClockForTesting(func() time.Time { return now })
	store.SetToken("abc", 60)

	if store.IsTokenExpired() {
		t.Error("fresh token should not be expired")
	}

	// Exactly at the expiry instant counts as expired.
	now = base.Add(60 * time.Second)
	if !store.IsTokenExpired() {
		t.Error("token at expiry instant should be expired")
	}

	now = base.Add(61 * time.Second)
	if !store.IsTokenExpired() {
		t.Error("token past expiry should be expired")
	}
}

func TestStore_IsTokenExpiringSoon(t *testing.T) {
	store := newTestStore(t)

	base := time.Now()
	now := base
	store.SetClockForTesting(func() time.Time { return now })
	store.SetToken("abc", 600)

	if store.IsTokenExpiringSoon(300 * time.Second) {
		t.Error("10 minutes out is not within a 5 minute threshold")
	}

	now = base.Add(301 * time.Second)
	if !store.IsTokenExpiringSoon(300 * time.Second) {
		t.Error("4m59s remaining should be within a 5 minute threshold")
	}

	// Past expiry still counts: remaining time is negative, which is
	// within any threshold.
	now = base.Add(700 * time.Second)
	if !store.IsTokenExpiringSoon(300 * time.Second) {
		t.Error("expired token is still within the threshold")
	}
}

func TestStore_IsTokenExpiringSoonPastExpiry(t *testing.T) {
	store := newTestStore(t)

	base := time.Now()
	now := base
	store.SetClockForTesting(func() time.Time { return now })
	store.SetToken("abc", 60)

	now = base.Add(120 * time.Second)
	if !store.IsTokenExpiringSoon(300 * time.Second) {
		t.Error("token one minute past expiry is within a 5 minute threshold")
	}
	// A zero threshold catches exactly the expired-or-later case.
	if !store.IsTokenExpiringSoon(0) {
		t.Error("expired token is within a zero threshold")
	}
}

func TestStore_RemainingTime(t *testing.T) {
	store := newTestStore(t)

	if _, ok := store.RemainingTime(); ok {
		t.Error("empty store has no remaining time")
	}

	base := time.Now()
	now := base
	store.SetClockForTesting(func() time.Time { return now })
	store.SetToken("abc", 120)

	remaining, ok := store.RemainingTime()
	if !ok || remaining != 2*time.Minute {
		t.Errorf("RemainingTime = %v, %v; want 2m, true", remaining, ok)
	}

	now = base.Add(5 * time.Minute)
	remaining, ok = store.RemainingTime()
	if !ok || remaining != 0 {
		t.Errorf("RemainingTime past expiry = %v, %v; want 0, true", remaining, ok)
	}
}

// =============================================================================
// PERSISTENCE TESTS
// =============================================================================

func TestStore_HydratesFromStorage(t *testing.T) {
	state, sealer := openTestState(t)

	first, err := NewStore(state, sealer)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	first.SetToken("persisted-token", 3600)
	wantExpiry, _ := first.ExpiresAt()

	// A second store over the same state sees the session.
	second, err := NewStore(state, sealer)
	if err != nil {
		t.Fatalf("NewStore second: %v", err)
	}
	if got := second.Token(); got != "persisted-token" {
		t.Errorf("hydrated Token = %q, want persisted-token", got)
	}
	gotExpiry, ok := second.ExpiresAt()
	if !ok {
		t.Fatal("hydrated store should have expiry")
	}
	// Expiry round-trips through epoch milliseconds.
	if gotExpiry.UnixMilli() != wantExpiry.UnixMilli() {
		t.Errorf("hydrated expiry = %v, want %v", gotExpiry, wantExpiry)
	}
}

func TestStore_TokenSealedAtRest(t *testing.T) {
	state, sealer := openTestState(t)

	store, err := NewStore(state, sealer)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	store.SetToken("super-secret", 3600)

	raw, err := state.Get(storage.KeyAuthToken)
	if err != nil {
		t.Fatalf("Get raw token: %v", err)
	}
	if strings.Contains(raw, "super-secret") {
		t.Error("token stored in plaintext")
	}
}

func TestStore_CorruptTokenDropsSession(t *testing.T) {
	state, sealer := openTestState(t)

	state.Set(storage.KeyAuthToken, "sealed:!!!not-valid!!!")
	state.Set(storage.KeyAuthExpiresAt, "12345")

	store, err := NewStore(state, sealer)
	if err != nil {
		t.Fatalf("NewStore with corrupt token: %v", err)
	}
	if store.HasToken() {
		t.Error("corrupt token should hydrate as logged out")
	}
	if _, err := state.Get(storage.KeyAuthToken); err != storage.ErrKeyNotFound {
		t.Error("corrupt token should be removed from storage")
	}
}

// =============================================================================
// SESSION-ENDED FLAG TESTS
// =============================================================================

func TestStore_SessionEndedFlag(t *testing.T) {
	store := newTestStore(t)

	if store.TakeEnded() {
		t.Error("flag starts unset")
	}
	if err := store.MarkEnded(); err != nil {
		t.Fatalf("MarkEnded: %v", err)
	}
	if !store.TakeEnded() {
		t.Error("first take should see the flag")
	}
	if store.TakeEnded() {
		t.Error("second take should not, flag is single-use")
	}
}
