// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DarthRevanXX/assignment-front/internal/api"
	"github.com/DarthRevanXX/assignment-front/internal/model"
)

// =============================================================================
// APPLICATION MESSAGES
// =============================================================================

// sessionEndedMsg is delivered when the request pipeline ends the session
// (server 401 or pre-flight expiry).
type sessionEndedMsg struct{}

// loginSuccessMsg carries a completed login.
type loginSuccessMsg struct {
	result *model.LoginResult
}

// logoutDoneMsg is delivered after logout finished clearing the session.
type logoutDoneMsg struct{}

// tasksLoadedMsg carries one fetched page of tasks.
type tasksLoadedMsg struct {
	page *model.TaskPage
}

// taskSavedMsg is delivered after a create or update round-trip. The task is
// nil when the server answered 204.
type taskSavedMsg struct {
	task *model.Task
}

// taskDeletedMsg is delivered after a delete round-trip.
type taskDeletedMsg struct {
	id string
}

// apiErrorMsg carries a normalized pipeline error to the active view.
type apiErrorMsg struct {
	err *api.APIError
}

// toErrorMsg converts any error from the pipeline into an apiErrorMsg.
func toErrorMsg(err error) tea.Msg {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErrorMsg{err: apiErr}
	}
	return apiErrorMsg{err: &api.APIError{Message: err.Error(), Status: 0}}
}
