// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"testing"
)

// =============================================================================
// STATUS TESTS
// =============================================================================

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    TaskStatus
		wantErr bool
	}{
		{"pending", StatusPending, false},
		{"PENDING", StatusPending, false},
		{"  Pending ", StatusPending, false},
		{"in_progress", StatusInProgress, false},
		{"in-progress", StatusInProgress, false},
		{"IN_PROGRESS", StatusInProgress, false},
		{"completed", StatusCompleted, false},
		{"done", StatusCompleted, false},
		{"", "", true},
		{"archived", "", true},
	}

	for _, tt := range tests {
		got, err := ParseStatus(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseStatus(%q) expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseStatus(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStatus(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTaskStatus_IsValid(t *testing.T) {
	for _, s := range AllStatuses {
		if !s.IsValid() {
			t.Errorf("%v should be valid", s)
		}
	}
	if TaskStatus("ARCHIVED").IsValid() {
		t.Error("unknown status should not be valid")
	}
	if TaskStatus("").IsValid() {
		t.Error("empty status should not be valid")
	}
}

func TestTaskStatus_Next_Cycles(t *testing.T) {
	if StatusPending.Next() != StatusInProgress {
		t.Error("pending should advance to in progress")
	}
	if StatusInProgress.Next() != StatusCompleted {
		t.Error("in progress should advance to completed")
	}
	if StatusCompleted.Next() != StatusPending {
		t.Error("completed should wrap back to pending")
	}
}

// =============================================================================
// TASK TESTS
// =============================================================================

func TestTask_DescriptionOrEmpty(t *testing.T) {
	task := Task{Title: "t"}
	if task.DescriptionOrEmpty() != "" {
		t.Error("nil description should render as empty string")
	}

	desc := "write the report"
	task.Description = &desc
	if task.DescriptionOrEmpty() != desc {
		t.Errorf("DescriptionOrEmpty = %q, want %q", task.DescriptionOrEmpty(), desc)
	}
}

func TestCreateTaskRequest_Validate(t *testing.T) {
	req := CreateTaskRequest{}
	if err := req.Validate(); err == nil {
		t.Error("empty title should fail validation")
	}

	req.Title = "   "
	if err := req.Validate(); err == nil {
		t.Error("whitespace title should fail validation")
	}

	req.Title = "buy milk"
	if err := req.Validate(); err != nil {
		t.Errorf("valid request failed validation: %v", err)
	}
}

func TestUpdateTaskRequest_Validate(t *testing.T) {
	req := UpdateTaskRequest{}
	if err := req.Validate(); err == nil {
		t.Error("empty update should fail validation")
	}

	empty := ""
	req.Title = &empty
	if err := req.Validate(); err == nil {
		t.Error("empty title should fail validation")
	}

	title := "new title"
	bad := TaskStatus("NOPE")
	req = UpdateTaskRequest{Title: &title, Status: &bad}
	if err := req.Validate(); err == nil {
		t.Error("invalid status should fail validation")
	}

	status := StatusCompleted
	req = UpdateTaskRequest{Status: &status}
	if err := req.Validate(); err != nil {
		t.Errorf("status-only update failed validation: %v", err)
	}
}

func TestTaskPage_TotalOrLen(t *testing.T) {
	page := TaskPage{Items: []Task{{ID: "1"}, {ID: "2"}}}
	if page.TotalOrLen() != 2 {
		t.Errorf("TotalOrLen = %d, want 2", page.TotalOrLen())
	}

	page.Total = 40
	if page.TotalOrLen() != 40 {
		t.Errorf("TotalOrLen = %d, want 40", page.TotalOrLen())
	}
}
