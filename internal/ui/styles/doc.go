// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the taskdeck TUI.
//
// A Theme bundles every Lip Gloss style used by the views. Colors are
// AdaptiveColor pairs so the same theme reads well on light and dark
// terminals; the configured theme mode can force either variant.
package styles
