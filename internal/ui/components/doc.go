// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI pieces for the taskdeck TUI:
// the footer status bar, transient toast notices, and the persistent
// session-expiry banner.
package components
