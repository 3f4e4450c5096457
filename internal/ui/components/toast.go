// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DarthRevanXX/assignment-front/internal/ui/styles"
)

// =============================================================================
// TOAST NOTICE
// =============================================================================

// ToastLevel selects the toast's styling.
type ToastLevel int

const (
	ToastError ToastLevel = iota
	ToastWarning
	ToastInfo
)

// toastTTL is how long a toast stays visible without interaction.
const toastTTL = 6 * time.Second

// ToastExpiredMsg dismisses a toast after its TTL.
type ToastExpiredMsg struct {
	ID int
}

// Toast is a transient one-line notice shown above the status bar. Each Show
// bumps an ID so a stale expiry timer cannot dismiss a newer message.
type Toast struct {
	theme *styles.Theme

	visible bool
	level   ToastLevel
	message string
	id      int
}

// NewToast creates a hidden toast.
func NewToast(theme *styles.Theme) Toast {
	return Toast{theme: theme}
}

// Show displays a message and returns the command that expires it.
func (t *Toast) Show(level ToastLevel, message string) tea.Cmd {
	t.visible = true
	t.level = level
	t.message = message
	t.id++

	id := t.id
	return tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

// Hide dismisses the toast immediately.
func (t *Toast) Hide() {
	t.visible = false
}

// Update handles expiry messages. Other messages are ignored.
func (t *Toast) Update(msg tea.Msg) {
	if expired, ok := msg.(ToastExpiredMsg); ok && expired.ID == t.id {
		t.visible = false
	}
}

// Visible reports whether the toast is currently shown.
func (t *Toast) Visible() bool {
	return t.visible
}

// Message returns the current message text.
func (t *Toast) Message() string {
	return t.message
}

// View renders the toast, or "" when hidden.
func (t *Toast) View() string {
	if !t.visible {
		return ""
	}
	switch t.level {
	case ToastWarning:
		return t.theme.WarningBox.Render(t.message)
	case ToastInfo:
		return t.theme.InfoBox.Render(t.message)
	default:
		return t.theme.ErrorBox.Render(t.message)
	}
}
