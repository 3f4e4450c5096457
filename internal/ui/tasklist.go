// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/DarthRevanXX/assignment-front/internal/api"
	"github.com/DarthRevanXX/assignment-front/internal/model"
	"github.com/DarthRevanXX/assignment-front/internal/ui/components"
	"github.com/DarthRevanXX/assignment-front/internal/ui/styles"
	"github.com/DarthRevanXX/assignment-front/internal/util"
)

// =============================================================================
// TASK LIST VIEW
// =============================================================================

// TaskListView shows the paginated task table with filtering, sorting and
// inline status cycling.
type TaskListView struct {
	theme  *styles.Theme
	client *api.Client

	table  table.Model
	page   *model.TaskPage
	filter model.TaskFilter

	search    textinput.Model
	searching bool
	loading   bool

	toast     components.Toast
	banner    components.ExpiryBanner
	statusbar components.StatusBar

	width  int
	height int
}

// NewTaskListView creates the task table with the given default page size.
func NewTaskListView(theme *styles.Theme, client *api.Client, pageSize int) TaskListView {
	columns := []table.Column{
		{Title: "Title", Width: 40},
		{Title: "Status", Width: 12},
		{Title: "Updated", Width: 16},
		{Title: "Description", Width: 30},
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
	)
	tableStyles := table.DefaultStyles()
	tableStyles.Header = theme.TableHeader
	tableStyles.Selected = theme.TableSelected
	tbl.SetStyles(tableStyles)

	search := textinput.New()
	search.Placeholder = "search tasks"
	search.CharLimit = 128

	return TaskListView{
		theme:     theme,
		client:    client,
		table:     tbl,
		filter:    model.TaskFilter{Page: 1, Size: pageSize},
		search:    search,
		toast:     components.NewToast(theme),
		banner:    components.NewExpiryBanner(theme),
		statusbar: components.NewStatusBar(theme),
	}
}

// SetSize adjusts the layout to the terminal dimensions.
func (v *TaskListView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.statusbar.SetWidth(width)

	// Header, status bar, and any banner take fixed rows.
	tableHeight := height - 6
	if tableHeight < 3 {
		tableHeight = 3
	}
	v.table.SetHeight(tableHeight)
	v.table.SetWidth(width)
}

// ShowExpiryWarning surfaces the watcher's one-time warning.
func (v *TaskListView) ShowExpiryWarning(minutesLeft int) {
	v.banner.Show(minutesLeft)
}

// HideExpiryWarning hides the banner, after a re-login.
func (v *TaskListView) HideExpiryWarning() {
	v.banner.Hide()
}

// Filter returns the active filter state.
func (v *TaskListView) Filter() model.TaskFilter {
	return v.filter
}

// SelectedTask returns the highlighted task, or nil when the list is empty.
func (v *TaskListView) SelectedTask() *model.Task {
	if v.page == nil || len(v.page.Items) == 0 {
		return nil
	}
	idx := v.table.Cursor()
	if idx < 0 || idx >= len(v.page.Items) {
		return nil
	}
	return &v.page.Items[idx]
}

// =============================================================================
// COMMANDS
// =============================================================================

// LoadCmd fetches the current page.
func (v *TaskListView) LoadCmd() tea.Cmd {
	client, filter := v.client, v.filter
	return func() tea.Msg {
		page, err := client.ListTasks(context.Background(), filter)
		if err != nil {
			return toErrorMsg(err)
		}
		return tasksLoadedMsg{page: page}
	}
}

// cycleStatusCmd advances the selected task to its next status.
func cycleStatusCmd(client *api.Client, task model.Task) tea.Cmd {
	next := task.Status.Next()
	return func() tea.Msg {
		updated, err := client.UpdateTask(context.Background(), task.ID,
			model.UpdateTaskRequest{Status: &next})
		if err != nil {
			return toErrorMsg(err)
		}
		return taskSavedMsg{task: updated}
	}
}

// logoutCmd performs best-effort logout; the session is cleared regardless.
func logoutCmd(client *api.Client) tea.Cmd {
	return func() tea.Msg {
		if err := client.Logout(context.Background()); err != nil {
			return toErrorMsg(err)
		}
		return logoutDoneMsg{}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles list navigation, filtering and inline actions.
func (v TaskListView) Update(msg tea.Msg) (TaskListView, tea.Cmd) {
	v.toast.Update(msg)

	switch msg := msg.(type) {
	case tasksLoadedMsg:
		v.loading = false
		v.page = msg.page
		v.refreshRows()
		return v, nil

	case taskSavedMsg, taskDeletedMsg:
		// The server's copy changed; refetch the page.
		v.loading = true
		return v, v.LoadCmd()

	case apiErrorMsg:
		v.loading = false
		return v, v.toast.Show(components.ToastError, msg.err.Message)

	case tea.KeyMsg:
		if v.searching {
			return v.updateSearch(msg)
		}
		return v.updateKeys(msg)
	}

	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

func (v TaskListView) updateSearch(msg tea.KeyMsg) (TaskListView, tea.Cmd) {
	switch msg.String() {
	case "enter":
		v.searching = false
		v.search.Blur()
		v.filter.Query = v.search.Value()
		v.filter.Page = 1
		v.loading = true
		return v, v.LoadCmd()
	case "esc":
		v.searching = false
		v.search.Blur()
		v.search.SetValue(v.filter.Query)
		return v, nil
	}
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	return v, cmd
}

func (v TaskListView) updateKeys(msg tea.KeyMsg) (TaskListView, tea.Cmd) {
	switch msg.String() {
	case "/":
		v.searching = true
		v.search.SetValue(v.filter.Query)
		return v, v.search.Focus()

	case "r":
		v.loading = true
		return v, v.LoadCmd()

	case "f":
		v.filter.Status = nextStatusFilter(v.filter.Status)
		v.filter.Page = 1
		v.loading = true
		return v, v.LoadCmd()

	case "s":
		v.filter.Sort = v.filter.Sort.Next()
		v.filter.Page = 1
		v.loading = true
		return v, v.LoadCmd()

	case "left", "[":
		if v.filter.Page > 1 {
			v.filter.Page--
			v.loading = true
			return v, v.LoadCmd()
		}
		return v, nil

	case "right", "]":
		if v.hasNextPage() {
			v.filter.Page++
			v.loading = true
			return v, v.LoadCmd()
		}
		return v, nil

	case " ":
		if task := v.SelectedTask(); task != nil {
			return v, cycleStatusCmd(v.client, *task)
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

// nextStatusFilter cycles the status filter, including the "all" state
// that the task status cycle itself never visits.
func nextStatusFilter(s model.TaskStatus) model.TaskStatus {
	switch s {
	case "":
		return model.StatusPending
	case model.StatusPending:
		return model.StatusInProgress
	case model.StatusInProgress:
		return model.StatusCompleted
	default:
		return ""
	}
}

// hasNextPage reports whether the server has more rows past this page.
func (v *TaskListView) hasNextPage() bool {
	if v.page == nil {
		return false
	}
	seen := v.filter.Page * v.filter.Size
	return seen < v.page.TotalOrLen()
}

// refreshRows rebuilds the table rows from the loaded page.
func (v *TaskListView) refreshRows() {
	if v.page == nil {
		v.table.SetRows(nil)
		return
	}
	rows := make([]table.Row, 0, len(v.page.Items))
	for _, task := range v.page.Items {
		rows = append(rows, table.Row{
			util.Truncate(task.Title, 40),
			task.Status.Label(),
			task.UpdatedAt.Format("2006-01-02 15:04"),
			util.Truncate(util.FirstLine(task.DescriptionOrEmpty()), 30),
		})
	}
	v.table.SetRows(rows)
	if v.table.Cursor() >= len(rows) && len(rows) > 0 {
		v.table.SetCursor(len(rows) - 1)
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the table with banner, toast and status bar.
func (v TaskListView) View() string {
	var b strings.Builder

	if v.banner.Visible() {
		b.WriteString(v.banner.View())
		b.WriteString("\n")
	}
	if v.toast.Visible() {
		b.WriteString(v.toast.View())
		b.WriteString("\n")
	}

	if v.searching {
		b.WriteString(v.theme.Label.Render("Search: "))
		b.WriteString(v.search.View())
		b.WriteString("\n")
	}

	b.WriteString(v.table.View())
	b.WriteString("\n")

	b.WriteString(v.statusBarView())
	return b.String()
}

func (v TaskListView) statusBarView() string {
	left := fmt.Sprintf("page %d", v.filter.Page)
	if v.page != nil {
		left = fmt.Sprintf("%d tasks • page %d", v.page.TotalOrLen(), v.filter.Page)
	}
	if v.loading {
		left += " • loading"
	}
	left += " • " + v.filter.String()

	bar := v.statusbar
	bar.SetLeft(left)
	bar.SetShortcuts([]components.Shortcut{
		{Key: "n", Desc: "new"},
		{Key: "e", Desc: "edit"},
		{Key: "d", Desc: "delete"},
		{Key: "space", Desc: "status"},
		{Key: "/", Desc: "search"},
		{Key: "f", Desc: "filter"},
		{Key: "s", Desc: "sort"},
		{Key: "L", Desc: "logout"},
	})
	return bar.View()
}
