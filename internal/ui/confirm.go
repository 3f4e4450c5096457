// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DarthRevanXX/assignment-front/internal/api"
	"github.com/DarthRevanXX/assignment-front/internal/model"
	"github.com/DarthRevanXX/assignment-front/internal/ui/styles"
	"github.com/DarthRevanXX/assignment-front/internal/util"
)

// =============================================================================
// DELETE CONFIRMATION
// =============================================================================

// ConfirmView asks before a destructive delete.
type ConfirmView struct {
	theme  *styles.Theme
	client *api.Client
	task   model.Task
	busy   bool
}

// NewConfirmView creates the confirmation dialog for deleting task.
func NewConfirmView(theme *styles.Theme, client *api.Client, task model.Task) ConfirmView {
	return ConfirmView{theme: theme, client: client, task: task}
}

// deleteCmd performs the delete call.
func deleteCmd(client *api.Client, id string) tea.Cmd {
	return func() tea.Msg {
		if err := client.DeleteTask(context.Background(), id); err != nil {
			return toErrorMsg(err)
		}
		return taskDeletedMsg{id: id}
	}
}

// Update handles the yes/no decision.
func (v ConfirmView) Update(msg tea.Msg) (ConfirmView, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || v.busy {
		return v, nil
	}
	switch key.String() {
	case "y", "Y", "enter":
		v.busy = true
		return v, deleteCmd(v.client, v.task.ID)
	case "n", "N", "esc":
		return v, func() tea.Msg { return formCancelledMsg{} }
	}
	return v, nil
}

// View renders the dialog.
func (v ConfirmView) View() string {
	var b strings.Builder
	b.WriteString(v.theme.DialogTitle.Render("Delete task"))
	b.WriteString("\n\n")
	b.WriteString("Delete ")
	b.WriteString(v.theme.ErrorBox.Render(util.Truncate(v.task.Title, 50)))
	b.WriteString(" ?\n\n")
	if v.busy {
		b.WriteString(v.theme.Help.Render("Deleting..."))
	} else {
		b.WriteString(v.theme.Help.Render("y delete • n cancel"))
	}
	return v.theme.Dialog.Render(b.String())
}
