// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// EXPIRATION WATCHER
// =============================================================================

// Watcher periodically inspects the session store and fires callbacks when
// the token nears or passes its expiry.
//
// The warning fires once per approach to expiry. It re-arms only when the
// remaining time climbs back above the threshold plus one interval, which
// happens when a re-login replaces the token; clock jitter alone cannot
// re-trigger it.
type Watcher struct {
	mu sync.Mutex

	store *Store

	interval   time.Duration // Default: 60 seconds
	warnBefore time.Duration // Default: 300 seconds

	warningShown bool
	expiredFired bool
	running      bool
	stop         chan struct{}

	onWarning func(minutesLeft int)
	onExpired func()
}

// WatcherConfig holds configuration for the expiration watcher.
type WatcherConfig struct {
	// Interval is how often the session is inspected (default: 60s)
	Interval time.Duration

	// WarnBefore is how close to expiry the warning fires (default: 300s)
	WarnBefore time.Duration
}

// DefaultWatcherConfig returns the default watcher configuration.
func DefaultWatcherConfig() WatcherConfig {
	return WatcherConfig{
		Interval:   60 * time.Second,
		WarnBefore: 300 * time.Second,
	}
}

// NewWatcher creates a watcher over store. It does not start ticking.
func NewWatcher(store *Store, cfg WatcherConfig) *Watcher {
	if cfg.Interval <= 0 {
		cfg.Interval = 60 * time.Second
	}
	if cfg.WarnBefore <= 0 {
		cfg.WarnBefore = 300 * time.Second
	}
	return &Watcher{
		store:      store,
		interval:   cfg.Interval,
		warnBefore: cfg.WarnBefore,
	}
}

// SetWarningCallback sets the function called when expiry is near.
// minutesLeft is the remaining time rounded up to whole minutes.
func (w *Watcher) SetWarningCallback(fn func(minutesLeft int)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onWarning = fn
}

// SetExpiredCallback sets the function called once the token has expired.
func (w *Watcher) SetExpiredCallback(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onExpired = fn
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Start launches the background ticker. Calling Start on a running watcher
// is a no-op.
func (w *Watcher) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.stop = make(chan struct{})
	stop := w.stop
	w.mu.Unlock()

	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.Check()
			case <-stop:
				return
			}
		}
	}()
}

// Stop halts the background ticker. Safe to call repeatedly, including on a
// watcher that was never started.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return
	}
	w.running = false
	close(w.stop)
}

// Running reports whether the background ticker is active.
func (w *Watcher) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Reset re-arms the warning and expiry, for use after a fresh login.
func (w *Watcher) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.warningShown = false
	w.expiredFired = false
}

// =============================================================================
// INSPECTION
// =============================================================================

// Check inspects the session once and triggers the appropriate callbacks.
// Returns true while the session remains usable.
func (w *Watcher) Check() bool {
	w.mu.Lock()

	if !w.store.HasToken() {
		// Logged out between ticks. Nothing to watch.
		w.warningShown = false
		w.expiredFired = false
		w.mu.Unlock()
		return false
	}

	expired := w.store.IsTokenExpired()

	fireExpired := false
	if expired && !w.expiredFired {
		w.expiredFired = true
		fireExpired = true
	}

	fireWarning := false
	minutesLeft := 0
	if !expired {
		remaining, hasExpiry := w.store.RemainingTime()
		switch {
		case !hasExpiry:
			// Token without expiry: nothing to warn about.
		case remaining <= w.warnBefore && !w.warningShown:
			w.warningShown = true
			fireWarning = true
			minutesLeft = ceilMinutes(remaining)
		case remaining > w.warnBefore+w.interval:
			// Fresh token extended the session past the threshold.
			w.warningShown = false
			w.expiredFired = false
		}
	}

	onWarning := w.onWarning
	onExpired := w.onExpired
	w.mu.Unlock()

	// Callbacks run outside the lock; they are expected to touch the store.
	if fireWarning && onWarning != nil {
		onWarning(minutesLeft)
	}
	if fireExpired && onExpired != nil {
		onExpired()
	}
	return !expired
}

// ceilMinutes rounds d up to whole minutes, never below 1.
func ceilMinutes(d time.Duration) int {
	mins := int((d + time.Minute - 1) / time.Minute)
	if mins < 1 {
		mins = 1
	}
	return mins
}

// =============================================================================
// BUBBLE TEA INTEGRATION
// =============================================================================

// TickMsg is sent periodically to drive the watcher from the UI event loop.
type TickMsg struct {
	Time time.Time
}

// ExpiryWarningMsg indicates the token is about to expire.
type ExpiryWarningMsg struct {
	MinutesLeft int
}

// ExpiredMsg indicates the token has expired.
type ExpiredMsg struct{}

// TickCmd returns a command that ticks at the watcher interval.
func (w *Watcher) TickCmd() tea.Cmd {
	return tea.Tick(w.interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// HandleTick processes a tick and returns the messages the UI should see.
// The returned batch always includes the next tick.
func (w *Watcher) HandleTick() tea.Cmd {
	var cmds []tea.Cmd

	w.mu.Lock()
	hasToken := w.store.HasToken()
	expired := hasToken && w.store.IsTokenExpired()

	if !hasToken {
		w.warningShown = false
		w.expiredFired = false
	} else if expired {
		if !w.expiredFired {
			w.expiredFired = true
			cmds = append(cmds, func() tea.Msg { return ExpiredMsg{} })
		}
	} else if remaining, hasExpiry := w.store.RemainingTime(); hasExpiry {
		switch {
		case remaining <= w.warnBefore && !w.warningShown:
			w.warningShown = true
			minutes := ceilMinutes(remaining)
			cmds = append(cmds, func() tea.Msg {
				return ExpiryWarningMsg{MinutesLeft: minutes}
			})
		case remaining > w.warnBefore+w.interval:
			w.warningShown = false
			w.expiredFired = false
		}
	}
	w.mu.Unlock()

	cmds = append(cmds, w.TickCmd())
	return tea.Batch(cmds...)
}
