// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"testing"
	"time"
)

type watcherEvents struct {
	warnings []int
	expired  int
}

func newTestWatcher(t *testing.T, store *Store) (*Watcher, *watcherEvents) {
	t.Helper()
	events := &watcherEvents{}
	w := NewWatcher(store, DefaultWatcherConfig())
	w.SetWarningCallback(func(min int) { events.warnings = append(events.warnings, min) })
	w.SetExpiredCallback(func() { events.expired++ })
	return w, events
}

// =============================================================================
// WARNING TESTS
// =============================================================================

func TestWatcher_WarnsOnceNearExpiry(t *testing.T) {
	store := newTestStore(t)
	base := time.Now()
	now := base
	store.SetClockForTesting(func() time.Time { return now })
	store.SetToken("abc", 600)

	w, events := newTestWatcher(t, store)

	// 10 minutes out: no warning yet.
	if !w.Check() {
		t.Error("Check should report usable session")
	}
	if len(events.warnings) != 0 {
		t.Fatalf("premature warning: %v", events.warnings)
	}

	// 4m30s remaining: warn, rounded up to 5 minutes.
	now = base.Add(330 * time.Second)
	w.Check()
	if len(events.warnings) != 1 || events.warnings[0] != 5 {
		t.Fatalf("warnings = %v, want [5]", events.warnings)
	}

	// Further ticks inside the window must not warn again.
	now = base.Add(400 * time.Second)
	w.Check()
	now = base.Add(500 * time.Second)
	w.Check()
	if len(events.warnings) != 1 {
		t.Errorf("warning fired %d times, want once", len(events.warnings))
	}
}

func TestWatcher_WarningMinutesRoundUp(t *testing.T) {
	store := newTestStore(t)
	base := time.Now()
	now := base
	store.SetClockForTesting(func() time.Time { return now })
	store.SetToken("abc", 300)

	w, events := newTestWatcher(t, store)

	// 59 seconds remaining still reads as 1 minute, never 0.
	now = base.Add(241 * time.Second)
	w.Check()
	if len(events.warnings) != 1 || events.warnings[0] != 1 {
		t.Errorf("warnings = %v, want [1]", events.warnings)
	}
}

func TestWatcher_RearmsAfterRelogin(t *testing.T) {
	store := newTestStore(t)
	base := time.Now()
	now := base
	store.SetClockForTesting(func() time.Time { return now })
	store.SetToken("abc", 600)

	w, events := newTestWatcher(t, store)

	now = base.Add(330 * time.Second)
	w.Check()
	if len(events.warnings) != 1 {
		t.Fatalf("warnings = %v, want one", events.warnings)
	}

	// Fresh login pushes expiry well past the threshold; watcher re-arms.
	store.SetToken("new-token", 3600)
	w.Check()
	if len(events.warnings) != 1 {
		t.Fatal("re-arm tick must not warn")
	}

	// Approach expiry again: a second warning fires.
	now = now.Add(3400 * time.Second)
	w.Check()
	if len(events.warnings) != 2 {
		t.Errorf("warnings = %v, want two after re-login", events.warnings)
	}
}

func TestWatcher_NoWarningWithoutExpiry(t *testing.T) {
	store := newTestStore(t)
	store.SetToken("abc", 0)

	w, events := newTestWatcher(t, store)
	if !w.Check() {
		t.Error("non-expiring token is usable")
	}
	if len(events.warnings) != 0 || events.expired != 0 {
		t.Errorf("no callbacks expected, got warnings=%v expired=%d", events.warnings, events.expired)
	}
}

// =============================================================================
// EXPIRY TESTS
// =============================================================================

func TestWatcher_ExpiredFiresOnce(t *testing.T) {
	store := newTestStore(t)
	base := time.Now()
	now := base
	store.SetClockForTesting(func() time.Time { return now })
	store.SetToken("abc", 60)

	w, events := newTestWatcher(t, store)

	now = base.Add(2 * time.Minute)
	if w.Check() {
		t.Error("Check past expiry should report unusable session")
	}
	w.Check()
	w.Check()
	if events.expired != 1 {
		t.Errorf("expired fired %d times, want once", events.expired)
	}
}

func TestWatcher_NoTokenNoCallbacks(t *testing.T) {
	store := newTestStore(t)
	w, events := newTestWatcher(t, store)

	if w.Check() {
		t.Error("Check without token should report unusable session")
	}
	if len(events.warnings) != 0 || events.expired != 0 {
		t.Errorf("no callbacks expected, got warnings=%v expired=%d", events.warnings, events.expired)
	}
}

// =============================================================================
// LIFECYCLE TESTS
// =============================================================================

func TestWatcher_StartStopIdempotent(t *testing.T) {
	store := newTestStore(t)
	w := NewWatcher(store, WatcherConfig{Interval: time.Hour, WarnBefore: time.Minute})

	// Stop before Start is a no-op.
	w.Stop()

	w.Start()
	if !w.Running() {
		t.Error("watcher should be running after Start")
	}
	w.Start() // second Start is a no-op

	w.Stop()
	if w.Running() {
		t.Error("watcher should not be running after Stop")
	}
	w.Stop() // second Stop is a no-op

	// Restart works.
	w.Start()
	if !w.Running() {
		t.Error("watcher should restart after Stop")
	}
	w.Stop()
}

func TestWatcher_Reset(t *testing.T) {
	store := newTestStore(t)
	base := time.Now()
	now := base
	store.SetClockForTesting(func() time.Time { return now })
	store.SetToken("abc", 300)

	w, events := newTestWatcher(t, store)

	now = base.Add(100 * time.Second)
	w.Check()
	if len(events.warnings) != 1 {
		t.Fatalf("warnings = %v, want one", events.warnings)
	}

	w.Reset()
	w.Check()
	if len(events.warnings) != 2 {
		t.Errorf("warnings after Reset = %v, want two", events.warnings)
	}
}
