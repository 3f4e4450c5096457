// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/DarthRevanXX/assignment-front/internal/api"
	"github.com/DarthRevanXX/assignment-front/internal/model"
	"github.com/DarthRevanXX/assignment-front/internal/ui/components"
	"github.com/DarthRevanXX/assignment-front/internal/ui/styles"
)

// =============================================================================
// TASK FORM
// =============================================================================

// formCancelledMsg returns to the list without saving.
type formCancelledMsg struct{}

// TaskFormView is the create/edit dialog. Editing an existing task sends a
// partial update carrying only title, description and status; creating sends
// title and optional description.
type TaskFormView struct {
	theme  *styles.Theme
	client *api.Client

	editing *model.Task // nil when creating

	title       textinput.Model
	description textinput.Model
	status      model.TaskStatus
	focus       int
	busy        bool

	toast components.Toast
}

// NewTaskFormView creates the dialog. task is nil for a new task.
func NewTaskFormView(theme *styles.Theme, client *api.Client, task *model.Task) TaskFormView {
	title := textinput.New()
	title.Placeholder = "task title"
	title.CharLimit = 200
	title.Focus()

	description := textinput.New()
	description.Placeholder = "description (optional)"
	description.CharLimit = 1000

	v := TaskFormView{
		theme:       theme,
		client:      client,
		editing:     task,
		title:       title,
		description: description,
		status:      model.StatusPending,
		toast:       components.NewToast(theme),
	}
	if task != nil {
		v.title.SetValue(task.Title)
		v.description.SetValue(task.DescriptionOrEmpty())
		v.status = task.Status
	}
	return v
}

// saveCmd performs the create or update call.
func (v TaskFormView) saveCmd() tea.Cmd {
	client := v.client
	title := strings.TrimSpace(v.title.Value())
	description := strings.TrimSpace(v.description.Value())

	if v.editing == nil {
		req := model.CreateTaskRequest{Title: title}
		if description != "" {
			req.Description = &description
		}
		return func() tea.Msg {
			task, err := client.CreateTask(context.Background(), req)
			if err != nil {
				return toErrorMsg(err)
			}
			return taskSavedMsg{task: task}
		}
	}

	id := v.editing.ID
	status := v.status
	req := model.UpdateTaskRequest{
		Title:       &title,
		Description: &description,
		Status:      &status,
	}
	return func() tea.Msg {
		task, err := client.UpdateTask(context.Background(), id, req)
		if err != nil {
			return toErrorMsg(err)
		}
		return taskSavedMsg{task: task}
	}
}

// Update handles form input.
func (v TaskFormView) Update(msg tea.Msg) (TaskFormView, tea.Cmd) {
	v.toast.Update(msg)

	switch msg := msg.(type) {
	case apiErrorMsg:
		v.busy = false
		return v, v.toast.Show(components.ToastError, msg.err.Message)

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg { return formCancelledMsg{} }

		case "tab", "down":
			v.setFocus(v.focus + 1)
			return v, nil

		case "shift+tab", "up":
			v.setFocus(v.focus - 1)
			return v, nil

		case "ctrl+s", "enter":
			if msg.String() == "enter" && v.focus < v.fieldCount()-1 {
				// Enter moves through fields; the last one submits.
				v.setFocus(v.focus + 1)
				return v, nil
			}
			if strings.TrimSpace(v.title.Value()) == "" {
				return v, v.toast.Show(components.ToastError, "Title must not be empty")
			}
			v.busy = true
			return v, v.saveCmd()

		case "left", "right":
			if v.focus == 2 && v.editing != nil {
				v.status = v.status.Next()
				return v, nil
			}
		}
	}

	var cmd tea.Cmd
	switch v.focus {
	case 0:
		v.title, cmd = v.title.Update(msg)
	case 1:
		v.description, cmd = v.description.Update(msg)
	}
	return v, cmd
}

// fieldCount is 2 when creating (title, description) and 3 when editing
// (plus the status row).
func (v *TaskFormView) fieldCount() int {
	if v.editing == nil {
		return 2
	}
	return 3
}

func (v *TaskFormView) setFocus(focus int) {
	fields := v.fieldCount()
	v.focus = ((focus % fields) + fields) % fields
	v.title.Blur()
	v.description.Blur()
	switch v.focus {
	case 0:
		v.title.Focus()
	case 1:
		v.description.Focus()
	}
}

// View renders the dialog.
func (v TaskFormView) View() string {
	var b strings.Builder

	heading := "New task"
	if v.editing != nil {
		heading = "Edit task"
	}
	b.WriteString(v.theme.DialogTitle.Render(heading))
	b.WriteString("\n\n")

	if v.toast.Visible() {
		b.WriteString(v.toast.View())
		b.WriteString("\n\n")
	}

	b.WriteString(v.theme.Label.Render("Title"))
	b.WriteString("\n")
	b.WriteString(v.title.View())
	b.WriteString("\n\n")
	b.WriteString(v.theme.Label.Render("Description"))
	b.WriteString("\n")
	b.WriteString(v.description.View())
	b.WriteString("\n\n")

	if v.editing != nil {
		b.WriteString(v.theme.Label.Render("Status: "))
		b.WriteString(v.theme.StatusStyle(string(v.status)).Render(v.status.Label()))
		if v.focus == 2 {
			b.WriteString(v.theme.Help.Render("  (←/→ change, enter save)"))
		}
		b.WriteString("\n\n")
	}

	if v.busy {
		b.WriteString(v.theme.Help.Render("Saving..."))
	} else {
		b.WriteString(v.theme.Help.Render("ctrl+s save • esc cancel • tab next field"))
	}
	return v.theme.Dialog.Render(b.String())
}
