// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style

	// ==========================================================================
	// TASK TABLE STYLES
	// ==========================================================================

	TableHeader   lipgloss.Style
	TableRow      lipgloss.Style
	TableSelected lipgloss.Style

	StatusPending    lipgloss.Style
	StatusInProgress lipgloss.Style
	StatusCompleted  lipgloss.Style

	// ==========================================================================
	// DIALOG AND FORM STYLES
	// ==========================================================================

	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style
	Label       lipgloss.Style
	Help        lipgloss.Style

	// ==========================================================================
	// NOTICE STYLES
	// ==========================================================================

	ErrorBox   lipgloss.Style
	WarningBox lipgloss.Style
	InfoBox    lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
//
// mode is "auto", "dark" or "light"; auto detects from the terminal.
func NewTheme(mode string) *Theme {
	colorProfile := termenv.ColorProfile()

	isDark := termenv.HasDarkBackground()
	switch mode {
	case "dark":
		isDark = true
	case "light":
		isDark = false
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	// Task table
	t.TableHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(TextMuted)

	t.TableRow = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.TableSelected = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple).
		Background(SurfaceBright)

	t.StatusPending = lipgloss.NewStyle().Foreground(TextSecondary)
	t.StatusInProgress = lipgloss.NewStyle().Foreground(Amber)
	t.StatusCompleted = lipgloss.NewStyle().Foreground(Emerald)

	// Dialogs and forms
	t.Dialog = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(1, 2)

	t.DialogTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.Label = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.Help = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Notices
	t.ErrorBox = lipgloss.NewStyle().
		Foreground(Rose).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(0, 1)

	t.WarningBox = lipgloss.NewStyle().
		Foreground(Amber).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Amber).
		Padding(0, 1)

	t.InfoBox = lipgloss.NewStyle().
		Foreground(Cyan).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Cyan).
		Padding(0, 1)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// StatusStyle returns the style for a task status label.
func (t *Theme) StatusStyle(status string) lipgloss.Style {
	switch status {
	case "IN_PROGRESS":
		return t.StatusInProgress
	case "COMPLETED":
		return t.StatusCompleted
	default:
		return t.StatusPending
	}
}
