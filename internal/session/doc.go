// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session tracks the authenticated session: the bearer token, its
// absolute expiry, and the warning lifecycle as expiry approaches.
//
// # Key Types
//
//   - Store: in-memory token + expiry, written through to durable storage
//     on every change and hydrated from it at startup
//   - Watcher: periodic inspector that fires a one-shot warning near expiry
//     and an expired notification once the token lapses
//
// # Usage
//
//	store, err := session.NewStore(state, sealer)
//	if err != nil { ... }
//
//	watcher := session.NewWatcher(store, session.DefaultWatcherConfig())
//	watcher.SetWarningCallback(func(min int) { ... })
//	watcher.SetExpiredCallback(func() { ... })
//	watcher.Start()
//	defer watcher.Stop()
//
// The TUI drives the watcher from its event loop via TickCmd/HandleTick
// instead of Start, so warnings arrive as Bubble Tea messages.
package session
