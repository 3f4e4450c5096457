// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the domain types shared by the API client and the UI.
package model

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// TASK STATUS
// =============================================================================

// TaskStatus is the lifecycle state of a task as reported by the server.
type TaskStatus string

const (
	StatusPending    TaskStatus = "PENDING"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusCompleted  TaskStatus = "COMPLETED"
)

// AllStatuses lists every valid status in display order.
var AllStatuses = []TaskStatus{StatusPending, StatusInProgress, StatusCompleted}

// ParseStatus converts a user-supplied string into a TaskStatus.
// Accepts any casing and the common "in-progress"/"in_progress" spellings.
func ParseStatus(s string) (TaskStatus, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	switch normalized {
	case "PENDING":
		return StatusPending, nil
	case "IN_PROGRESS":
		return StatusInProgress, nil
	case "COMPLETED", "DONE":
		return StatusCompleted, nil
	default:
		return "", fmt.Errorf("invalid status %q, must be one of: pending, in_progress, completed", s)
	}
}

// IsValid reports whether the status is one of the known values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Label returns a human-readable label for display in tables and dialogs.
func (s TaskStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In progress"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// Next returns the status that follows s in the usual workflow.
// Completed wraps back to pending so the UI can cycle with a single key.
func (s TaskStatus) Next() TaskStatus {
	switch s {
	case StatusPending:
		return StatusInProgress
	case StatusInProgress:
		return StatusCompleted
	default:
		return StatusPending
	}
}

// =============================================================================
// TASK
// =============================================================================

// Task is a single task as returned by the server.
//
// Description is a pointer because the server distinguishes "no description"
// (null) from an empty one, and PUT requests must be able to leave it alone.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// DescriptionOrEmpty returns the description text, or "" when null.
func (t *Task) DescriptionOrEmpty() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}

// CreateTaskRequest is the body of POST /api/v1/tasks.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

// UpdateTaskRequest is the body of PUT /api/v1/tasks/{id}.
// All fields are optional; omitted fields are left unchanged by the server.
type UpdateTaskRequest struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Status      *TaskStatus `json:"status,omitempty"`
}

// Validate checks a create request before it goes over the wire.
func (r *CreateTaskRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title is required")
	}
	return nil
}

// Validate checks an update request before it goes over the wire.
func (r *UpdateTaskRequest) Validate() error {
	if r.Title == nil && r.Description == nil && r.Status == nil {
		return fmt.Errorf("nothing to update")
	}
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if r.Status != nil && !r.Status.IsValid() {
		return fmt.Errorf("invalid status %q", *r.Status)
	}
	return nil
}

// =============================================================================
// TASK PAGE
// =============================================================================

// TaskPage is one page of the task listing.
// Total, Page and Size are optional in the server response; when Total is
// zero-valued the client falls back to len(Items) for display purposes.
type TaskPage struct {
	Items []Task `json:"items"`
	Total int    `json:"total,omitempty"`
	Page  int    `json:"page,omitempty"`
	Size  int    `json:"size,omitempty"`
}

// TotalOrLen returns Total when the server reported it, otherwise len(Items).
func (p *TaskPage) TotalOrLen() int {
	if p.Total > 0 {
		return p.Total
	}
	return len(p.Items)
}
