// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// status.go - Status command implementation for taskdeck.
//
// CLI: Comprehensive help and examples for all commands
//
// Command: status
// Short:   Display session and connection status
// Aliases: s
//
// Examples:
//   taskdeck status               Show status
//   taskdeck s                    Show status (short alias)
//   taskdeck status --json        Status in JSON format
//
// Output Fields:
//   Server     Configured API base URL
//   Session    Whether a stored session exists
//   Expires    Token expiry time and remaining duration
//   Config     Where the active configuration was loaded from
package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	statusTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				MarginBottom(1)

	statusGoodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	statusWarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	statusBadStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// statusReport is the JSON shape of the status command.
type statusReport struct {
	Server         string `json:"server"`
	LoggedIn       bool   `json:"loggedIn"`
	TokenExpired   bool   `json:"tokenExpired,omitempty"`
	ExpiresAt      string `json:"expiresAt,omitempty"`
	RemainingSecs  int64  `json:"remainingSeconds,omitempty"`
	ConfigPathTOML string `json:"configPath,omitempty"`
}

// HandleStatus prints the session and connection status.
func HandleStatus(args Args) error {
	rt, err := NewRuntime(args)
	if err != nil {
		return err
	}
	defer rt.Close()

	report := statusReport{
		Server:   rt.Client.BaseURL(),
		LoggedIn: rt.Session.HasToken(),
	}
	if report.LoggedIn {
		report.TokenExpired = rt.Session.IsTokenExpired()
		if expiresAt, ok := rt.Session.ExpiresAt(); ok {
			report.ExpiresAt = expiresAt.UTC().Format(time.RFC3339)
		}
		if remaining, ok := rt.Session.RemainingTime(); ok {
			report.RemainingSecs = int64(remaining.Seconds())
		}
	}
	if path, err := fmtConfigPath(); err == nil {
		report.ConfigPathTOML = path
	}

	if args.JSON {
		NewJSONResponse("status", report).Print()
		return nil
	}

	title := "taskdeck status"
	if ColorEnabled() {
		title = statusTitleStyle.Render(title)
	}
	fmt.Println(title)
	fmt.Printf("  Server:   %s\n", report.Server)
	fmt.Printf("  Session:  %s\n", sessionLine(rt))
	if report.ConfigPathTOML != "" {
		fmt.Printf("  Config:   %s\n", report.ConfigPathTOML)
	}
	return nil
}

// sessionLine describes the stored session in one line.
func sessionLine(rt *Runtime) string {
	if !rt.Session.HasToken() {
		return colorize("not logged in", statusBadStyle)
	}
	if rt.Session.IsTokenExpired() {
		return colorize("expired, login required", statusBadStyle)
	}
	remaining, ok := rt.Session.RemainingTime()
	if !ok {
		return colorize("active (no known expiry)", statusGoodStyle)
	}
	line := fmt.Sprintf("active, expires in %s", formatDuration(remaining))
	if remaining <= rt.Cfg.WarnBefore() {
		return colorize(line, statusWarnStyle)
	}
	return colorize(line, statusGoodStyle)
}

// colorize applies style when colored output is enabled.
func colorize(s string, style lipgloss.Style) string {
	if !ColorEnabled() {
		return s
	}
	return style.Render(s)
}
