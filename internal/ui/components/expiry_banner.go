// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"

	"github.com/DarthRevanXX/assignment-front/internal/ui/styles"
)

// =============================================================================
// SESSION EXPIRY BANNER
// =============================================================================

// ExpiryBanner displays a persistent warning once the session nears its
// expiry. Unlike a toast it stays visible until hidden by a re-login or the
// session actually ending.
type ExpiryBanner struct {
	theme *styles.Theme

	visible     bool
	minutesLeft int
}

// NewExpiryBanner creates a hidden banner.
func NewExpiryBanner(theme *styles.Theme) ExpiryBanner {
	return ExpiryBanner{theme: theme}
}

// Show displays the banner with the remaining whole minutes.
func (b *ExpiryBanner) Show(minutesLeft int) {
	b.visible = true
	b.minutesLeft = minutesLeft
}

// Hide removes the banner.
func (b *ExpiryBanner) Hide() {
	b.visible = false
}

// Visible reports whether the banner is shown.
func (b *ExpiryBanner) Visible() bool {
	return b.visible
}

// View renders the banner, or "" when hidden.
func (b *ExpiryBanner) View() string {
	if !b.visible {
		return ""
	}
	unit := "minutes"
	if b.minutesLeft == 1 {
		unit = "minute"
	}
	return b.theme.WarningBox.Render(
		fmt.Sprintf("Your session expires in about %d %s. Save your work or login again.", b.minutesLeft, unit))
}
