// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *StateStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// =============================================================================
// BASIC KEY/VALUE TESTS
// =============================================================================

func TestStateStore_SetGet(t *testing.T) {
	store := openTestStore(t)

	if err := store.Set("k", "v1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := store.Get("k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "v1" {
		t.Errorf("Get = %q, want v1", got)
	}

	// Last write wins.
	if err := store.Set("k", "v2"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	got, _ = store.Get("k")
	if got != "v2" {
		t.Errorf("Get after overwrite = %q, want v2", got)
	}
}

func TestStateStore_GetMissing(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Get("missing")
	if !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Get missing key err = %v, want ErrKeyNotFound", err)
	}
}

func TestStateStore_Delete(t *testing.T) {
	store := openTestStore(t)

	store.Set("a", "1")
	store.Set("b", "2")

	if err := store.Delete("a", "b"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get("a"); !errors.Is(err, ErrKeyNotFound) {
		t.Error("a should be gone")
	}
	if _, err := store.Get("b"); !errors.Is(err, ErrKeyNotFound) {
		t.Error("b should be gone")
	}

	// Deleting again must be a no-op.
	if err := store.Delete("a"); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}
}

func TestStateStore_SetPair(t *testing.T) {
	store := openTestStore(t)

	if err := store.SetPair(KeyAuthToken, "tok", KeyAuthExpiresAt, "123"); err != nil {
		t.Fatalf("SetPair: %v", err)
	}

	tok, _ := store.Get(KeyAuthToken)
	exp, _ := store.Get(KeyAuthExpiresAt)
	if tok != "tok" || exp != "123" {
		t.Errorf("SetPair stored (%q, %q), want (tok, 123)", tok, exp)
	}
}

// =============================================================================
// PERSISTENCE TESTS
// =============================================================================

func TestStateStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	store.Set("k", "persisted")
	store.Close()

	store, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()

	got, err := store.Get("k")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got != "persisted" {
		t.Errorf("Get after reopen = %q, want persisted", got)
	}
}

func TestStateStore_ClosedErrors(t *testing.T) {
	store := openTestStore(t)
	store.Close()

	if _, err := store.Get("k"); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("Get on closed store err = %v, want ErrStoreClosed", err)
	}
	if err := store.Set("k", "v"); !errors.Is(err, ErrStoreClosed) {
		t.Errorf("Set on closed store err = %v, want ErrStoreClosed", err)
	}

	// Double close is fine.
	if err := store.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

// =============================================================================
// ONE-SHOT FLAG TESTS
// =============================================================================

func TestStateStore_TakeFlag_SingleUse(t *testing.T) {
	store := openTestStore(t)

	// Unset flag reads false.
	set, err := store.TakeFlag(KeySessionEnded)
	if err != nil {
		t.Fatalf("TakeFlag: %v", err)
	}
	if set {
		t.Error("unset flag should read false")
	}

	if err := store.SetFlag(KeySessionEnded); err != nil {
		t.Fatalf("SetFlag: %v", err)
	}
	// Setting twice must not error.
	if err := store.SetFlag(KeySessionEnded); err != nil {
		t.Fatalf("SetFlag twice: %v", err)
	}

	set, _ = store.TakeFlag(KeySessionEnded)
	if !set {
		t.Error("first take should read true")
	}
	set, _ = store.TakeFlag(KeySessionEnded)
	if set {
		t.Error("second take should read false, flag is single-use")
	}
}
