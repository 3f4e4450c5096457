// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/DarthRevanXX/assignment-front/internal/config"
	"github.com/DarthRevanXX/assignment-front/internal/model"
)

func TestParseArgs_DefaultsToTUI(t *testing.T) {
	cmd, _ := ParseArgs(nil)
	if cmd != CmdTUI {
		t.Errorf("cmd = %d, want CmdTUI", cmd)
	}
}

func TestParseArgs_Commands(t *testing.T) {
	tests := []struct {
		args []string
		want Command
	}{
		{[]string{"login"}, CmdLogin},
		{[]string{"logout"}, CmdLogout},
		{[]string{"list"}, CmdList},
		{[]string{"ls"}, CmdList},
		{[]string{"show", "abc"}, CmdShow},
		{[]string{"add", "buy", "milk"}, CmdAdd},
		{[]string{"edit", "abc"}, CmdEdit},
		{[]string{"done", "abc"}, CmdDone},
		{[]string{"rm", "abc"}, CmdRm},
		{[]string{"status"}, CmdStatus},
		{[]string{"s"}, CmdStatus},
		{[]string{"config"}, CmdConfig},
		{[]string{"version"}, CmdVersion},
		{[]string{"help"}, CmdHelp},
	}
	for _, tt := range tests {
		cmd, _ := ParseArgs(tt.args)
		if cmd != tt.want {
			t.Errorf("ParseArgs(%v) = %d, want %d", tt.args, cmd, tt.want)
		}
	}
}

func TestParseArgs_GlobalFlags(t *testing.T) {
	cmd, args := ParseArgs([]string{"--json", "--url", "http://example.test:9090", "list"})
	if cmd != CmdList {
		t.Fatalf("cmd = %d, want CmdList", cmd)
	}
	if !args.JSON {
		t.Error("JSON flag not parsed")
	}
	if args.BaseURL != "http://example.test:9090" {
		t.Errorf("BaseURL = %q", args.BaseURL)
	}

	_, args = ParseArgs([]string{"--url=http://other.test", "status"})
	if args.BaseURL != "http://other.test" {
		t.Errorf("BaseURL = %q, want equals form parsed", args.BaseURL)
	}
}

func TestParseArgs_ListFlags(t *testing.T) {
	_, args := ParseArgs([]string{"list", "--page", "2", "--size", "10", "--status", "pending", "-q", "report", "--sort", "createdAt,desc"})
	if args.Page != 2 || args.Size != 10 {
		t.Errorf("page/size = %d/%d, want 2/10", args.Page, args.Size)
	}
	if args.Status != "pending" {
		t.Errorf("Status = %q", args.Status)
	}
	if args.Query != "report" {
		t.Errorf("Query = %q", args.Query)
	}
	if args.Sort != "createdAt,desc" {
		t.Errorf("Sort = %q", args.Sort)
	}
}

func TestParseArgs_ListBareWordsAreSearch(t *testing.T) {
	_, args := ParseArgs([]string{"list", "quarterly", "report"})
	if args.Query != "quarterly report" {
		t.Errorf("Query = %q, want bare words joined", args.Query)
	}
}

func TestParseArgs_AddTitleAndDescription(t *testing.T) {
	_, args := ParseArgs([]string{"add", "buy", "milk", "--desc", "two liters"})
	if args.Title != "buy milk" {
		t.Errorf("Title = %q", args.Title)
	}
	if args.Description != "two liters" {
		t.Errorf("Description = %q", args.Description)
	}
}

func TestParseArgs_EditFlags(t *testing.T) {
	_, args := ParseArgs([]string{"edit", "abc123", "--title", "new title", "--status", "done"})
	if args.TaskID != "abc123" {
		t.Errorf("TaskID = %q", args.TaskID)
	}
	if args.Title != "new title" {
		t.Errorf("Title = %q", args.Title)
	}
	if args.Status != "done" {
		t.Errorf("Status = %q", args.Status)
	}
	if _, ok := args.Options["desc"]; ok {
		t.Error("desc option set without --desc flag")
	}

	_, args = ParseArgs([]string{"edit", "abc123", "--desc", ""})
	if desc, ok := args.Options["desc"]; !ok || desc != "" {
		t.Error("explicit empty --desc must be recorded so it can clear the field")
	}
}

func TestParseArgs_RmConfirmFlag(t *testing.T) {
	_, args := ParseArgs([]string{"rm", "abc", "--yes"})
	if args.TaskID != "abc" {
		t.Errorf("TaskID = %q", args.TaskID)
	}
	if args.Options["yes"] != "true" {
		t.Error("--yes not recorded")
	}
}

func TestParseArgs_ConfigSet(t *testing.T) {
	_, args := ParseArgs([]string{"config", "set", "ui.theme", "dark"})
	if args.Subcommand != "set" {
		t.Errorf("Subcommand = %q", args.Subcommand)
	}
	if args.ConfigKey != "ui.theme" || args.ConfigVal != "dark" {
		t.Errorf("key/val = %q/%q", args.ConfigKey, args.ConfigVal)
	}

	_, args = ParseArgs([]string{"config"})
	if args.Subcommand != "show" {
		t.Errorf("bare config Subcommand = %q, want show", args.Subcommand)
	}
}

func TestParseArgs_UnknownCommandFallsBackToHelp(t *testing.T) {
	cmd, _ := ParseArgs([]string{"frobnicate"})
	if cmd != CmdHelp {
		t.Errorf("cmd = %d, want CmdHelp for unknown command", cmd)
	}
}

func TestApplyConfigKey(t *testing.T) {
	cfg := config.Default()

	if err := applyConfigKey(cfg, "api.url", "http://example.test"); err != nil {
		t.Fatalf("api.url: %v", err)
	}
	if cfg.API.BaseURL != "http://example.test" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}

	if err := applyConfigKey(cfg, "ui.page_size", "50"); err != nil {
		t.Fatalf("ui.page_size: %v", err)
	}
	if cfg.UI.PageSize != 50 {
		t.Errorf("PageSize = %d", cfg.UI.PageSize)
	}

	if err := applyConfigKey(cfg, "ui.page_size", "lots"); err == nil {
		t.Error("non-numeric page_size must fail")
	}
	if err := applyConfigKey(cfg, "nope.nope", "1"); err == nil {
		t.Error("unknown key must fail")
	}
}

func TestTaskMarkdown(t *testing.T) {
	desc := "Longer body text."
	task := &model.Task{
		ID:          "abc123",
		Title:       "Write report",
		Description: &desc,
		Status:      model.StatusInProgress,
		CreatedAt:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
	}

	md := taskMarkdown(task)
	for _, want := range []string{"# Write report", "`abc123`", "In progress", "Longer body text."} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{45 * time.Second, "45s"},
		{5 * time.Minute, "5m"},
		{90 * time.Minute, "1h30m"},
		{2 * time.Hour, "2h"},
		{48 * time.Hour, "2d"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
