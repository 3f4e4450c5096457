// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the taskdeck TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/DarthRevanXX/assignment-front/internal/ui/styles"
	"github.com/DarthRevanXX/assignment-front/internal/util"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// Shortcut is one key hint shown on the right side of the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar renders the single-line footer: context on the left, key hints
// on the right.
type StatusBar struct {
	theme *styles.Theme
	width int

	left      string
	shortcuts []Shortcut
}

// NewStatusBar creates a status bar using the given theme.
func NewStatusBar(theme *styles.Theme) StatusBar {
	return StatusBar{theme: theme}
}

// SetWidth sets the render width.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// SetLeft sets the contextual text (filter summary, page position).
func (s *StatusBar) SetLeft(text string) {
	s.left = text
}

// SetShortcuts replaces the key hints.
func (s *StatusBar) SetShortcuts(shortcuts []Shortcut) {
	s.shortcuts = shortcuts
}

// View renders the bar at the configured width.
func (s *StatusBar) View() string {
	if s.width <= 0 {
		return ""
	}

	var hints []string
	for _, sc := range s.shortcuts {
		hints = append(hints,
			s.theme.ShortcutKey.Render(sc.Key)+" "+s.theme.ShortcutDesc.Render(sc.Desc))
	}
	right := strings.Join(hints, "  ")

	// The left side gives way when the terminal is narrow.
	leftBudget := s.width - lipgloss.Width(right) - 3
	if leftBudget < 0 {
		leftBudget = 0
	}
	left := util.Truncate(s.left, leftBudget)

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return s.theme.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}
