// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/DarthRevanXX/assignment-front/internal/model"
)

// =============================================================================
// TASK OPERATIONS
// =============================================================================

// ListTasks fetches one page of tasks. Filter fields that are unset are
// omitted from the query string entirely.
func (c *Client) ListTasks(ctx context.Context, filter model.TaskFilter) (*model.TaskPage, error) {
	var page model.TaskPage
	if err := c.do(ctx, http.MethodGet, "/tasks", filter.Values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetTask fetches a single task by ID.
func (c *Client) GetTask(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	if err := c.do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(id), nil, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask creates a task and returns the server's copy.
func (c *Client) CreateTask(ctx context.Context, req model.CreateTaskRequest) (*model.Task, error) {
	if err := req.Validate(); err != nil {
		return nil, &APIError{Message: err.Error(), Status: http.StatusBadRequest}
	}

	var task model.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", nil, req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial update. Servers answering 204 return no body;
// the task result is nil in that case and the caller refetches if it needs
// the updated copy.
func (c *Client) UpdateTask(ctx context.Context, id string, req model.UpdateTaskRequest) (*model.Task, error) {
	if err := req.Validate(); err != nil {
		return nil, &APIError{Message: err.Error(), Status: http.StatusBadRequest}
	}

	var task model.Task
	if err := c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), nil, req, &task); err != nil {
		return nil, err
	}
	if task.ID == "" {
		return nil, nil
	}
	return &task, nil
}

// DeleteTask removes a task by ID.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil, nil)
}
