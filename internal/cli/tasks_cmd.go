// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tasks_cmd.go - Task subcommand implementations for taskdeck.
//
// CLI: Comprehensive help and examples for all commands
//
// Command: list
// Short:   List tasks with paging, filtering and sorting
// Aliases: ls
//
// Examples:
//   taskdeck list                       First page, server defaults
//   taskdeck list --status pending      Only pending tasks
//   taskdeck list -q report --page 2    Search "report", page 2
//   taskdeck list --json                Machine-readable output
//
// Command: show
// Short:   Show a single task rendered as markdown
//
// Command: add / edit / done / rm
// Short:   Create, update, complete and delete tasks
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/DarthRevanXX/assignment-front/internal/model"
	"github.com/DarthRevanXX/assignment-front/internal/util"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	listHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	statusPendingStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("214"))

	statusInProgressStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39"))

	statusCompletedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// styledStatus renders a status label padded to width columns, colored
// when the terminal allows. Padding happens before coloring so escape
// sequences never skew the column math.
func styledStatus(s model.TaskStatus, width int) string {
	label := util.PadWidth(s.Label(), width)
	if !ColorEnabled() {
		return label
	}
	switch s {
	case model.StatusPending:
		return statusPendingStyle.Render(label)
	case model.StatusInProgress:
		return statusInProgressStyle.Render(label)
	case model.StatusCompleted:
		return statusCompletedStyle.Render(label)
	default:
		return label
	}
}

// =============================================================================
// LIST
// =============================================================================

// HandleList fetches one page of tasks and prints it.
func HandleList(args Args) error {
	rt, err := NewRuntime(args)
	if err != nil {
		return err
	}
	defer rt.Close()

	filter := model.TaskFilter{
		Page:  args.Page,
		Size:  args.Size,
		Query: args.Query,
		Sort:  model.SortOrder(args.Sort),
	}
	if filter.Size == 0 {
		filter.Size = rt.Cfg.UI.PageSize
	}
	if args.Status != "" {
		status, err := model.ParseStatus(args.Status)
		if err != nil {
			return err
		}
		filter.Status = status
	}

	page, err := rt.Client.ListTasks(context.Background(), filter)
	if err != nil {
		return err
	}

	if args.JSON {
		NewJSONResponse("list", page).Print()
		return nil
	}

	printTaskTable(page, filter)
	return nil
}

// printTaskTable renders one page of tasks as an aligned text table.
func printTaskTable(page *model.TaskPage, filter model.TaskFilter) {
	if len(page.Items) == 0 {
		fmt.Println("No tasks found.")
		return
	}

	const (
		idWidth     = 10
		titleWidth  = 44
		statusWidth = 12
	)

	header := fmt.Sprintf("%s  %s  %s  %s",
		util.PadWidth("ID", idWidth),
		util.PadWidth("TITLE", titleWidth),
		util.PadWidth("STATUS", statusWidth),
		"UPDATED")
	if ColorEnabled() {
		header = listHeaderStyle.Render(header)
	}
	fmt.Println(header)

	for i := range page.Items {
		task := &page.Items[i]
		fmt.Printf("%s  %s  %s  %s\n",
			util.PadWidth(util.Truncate(task.ID, idWidth), idWidth),
			util.PadWidth(util.Truncate(util.FirstLine(task.Title), titleWidth), titleWidth),
			styledStatus(task.Status, statusWidth),
			task.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}

	summary := fmt.Sprintf("%d task(s)", page.TotalOrLen())
	if filter.Page > 0 {
		summary += fmt.Sprintf(", page %d", filter.Page)
	}
	if desc := filter.String(); desc != "no filter" {
		summary += ", " + desc
	}
	if ColorEnabled() {
		summary = dimStyle.Render(summary)
	}
	fmt.Println(summary)
}

// =============================================================================
// SHOW
// =============================================================================

// HandleShow fetches one task and renders it as markdown.
func HandleShow(args Args) error {
	if args.TaskID == "" {
		return fmt.Errorf("usage: taskdeck show <id>")
	}

	rt, err := NewRuntime(args)
	if err != nil {
		return err
	}
	defer rt.Close()

	task, err := rt.Client.GetTask(context.Background(), args.TaskID)
	if err != nil {
		return err
	}

	if args.JSON {
		NewJSONResponse("show", task).Print()
		return nil
	}

	fmt.Print(renderTask(task))
	return nil
}

// taskMarkdown builds the markdown document for a single task.
func taskMarkdown(task *model.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", util.FirstLine(task.Title))
	fmt.Fprintf(&b, "- **ID**: `%s`\n", task.ID)
	fmt.Fprintf(&b, "- **Status**: %s\n", task.Status.Label())
	fmt.Fprintf(&b, "- **Created**: %s\n", task.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "- **Updated**: %s\n", task.UpdatedAt.Local().Format("2006-01-02 15:04"))
	if desc := task.DescriptionOrEmpty(); desc != "" {
		fmt.Fprintf(&b, "\n%s\n", desc)
	}
	return b.String()
}

// renderTask renders the task markdown for the terminal, falling back to
// the raw markdown when rendering is unavailable (piped output).
func renderTask(task *model.Task) string {
	markdown := taskMarkdown(task)
	if !ColorEnabled() {
		return markdown
	}

	width := TermWidth()
	if width > 100 {
		width = 100
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return markdown
	}
	out, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}

// =============================================================================
// ADD
// =============================================================================

// HandleAdd creates a task from the command line.
func HandleAdd(args Args) error {
	if strings.TrimSpace(args.Title) == "" {
		return fmt.Errorf("usage: taskdeck add <title> [--desc TEXT]")
	}

	rt, err := NewRuntime(args)
	if err != nil {
		return err
	}
	defer rt.Close()

	req := model.CreateTaskRequest{Title: strings.TrimSpace(args.Title)}
	if desc := strings.TrimSpace(args.Description); desc != "" {
		req.Description = &desc
	}

	task, err := rt.Client.CreateTask(context.Background(), req)
	if err != nil {
		return err
	}

	if args.JSON {
		NewJSONResponse("add", task).Print()
		return nil
	}
	if !args.Quiet {
		fmt.Printf("Created task %s: %s\n", task.ID, task.Title)
	}
	return nil
}

// =============================================================================
// EDIT
// =============================================================================

// HandleEdit applies a partial update from the given flags.
func HandleEdit(args Args) error {
	if args.TaskID == "" {
		return fmt.Errorf("usage: taskdeck edit <id> [--title TEXT] [--desc TEXT] [--status STATUS]")
	}

	req := model.UpdateTaskRequest{}
	if args.Title != "" {
		title := strings.TrimSpace(args.Title)
		req.Title = &title
	}
	// A set but empty --desc clears the description.
	if desc, ok := args.Options["desc"]; ok {
		req.Description = &desc
	}
	if args.Status != "" {
		status, err := model.ParseStatus(args.Status)
		if err != nil {
			return err
		}
		req.Status = &status
	}
	if err := req.Validate(); err != nil {
		return err
	}

	rt, err := NewRuntime(args)
	if err != nil {
		return err
	}
	defer rt.Close()

	task, err := rt.Client.UpdateTask(context.Background(), args.TaskID, req)
	if err != nil {
		return err
	}

	if args.JSON {
		NewJSONResponse("edit", task).Print()
		return nil
	}
	if !args.Quiet {
		if task != nil {
			fmt.Printf("Updated task %s: %s [%s]\n", task.ID, task.Title, task.Status.Label())
		} else {
			fmt.Printf("Updated task %s.\n", args.TaskID)
		}
	}
	return nil
}

// =============================================================================
// DONE
// =============================================================================

// HandleDone marks a task completed.
func HandleDone(args Args) error {
	if args.TaskID == "" {
		return fmt.Errorf("usage: taskdeck done <id>")
	}

	rt, err := NewRuntime(args)
	if err != nil {
		return err
	}
	defer rt.Close()

	status := model.StatusCompleted
	task, err := rt.Client.UpdateTask(context.Background(), args.TaskID, model.UpdateTaskRequest{
		Status: &status,
	})
	if err != nil {
		return err
	}

	if args.JSON {
		NewJSONResponse("done", task).Print()
		return nil
	}
	if !args.Quiet {
		fmt.Printf("Task %s marked completed.\n", args.TaskID)
	}
	return nil
}

// =============================================================================
// RM
// =============================================================================

// HandleRm deletes a task, prompting for confirmation on a terminal
// unless --yes was given.
func HandleRm(args Args) error {
	if args.TaskID == "" {
		return fmt.Errorf("usage: taskdeck rm <id> [--yes]")
	}

	rt, err := NewRuntime(args)
	if err != nil {
		return err
	}
	defer rt.Close()

	if args.Options["yes"] != "true" {
		if !IsTTY() {
			return fmt.Errorf("refusing to delete without --yes on non-interactive input")
		}
		fmt.Printf("Delete task %s? [y/N]: ", args.TaskID)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := rt.Client.DeleteTask(context.Background(), args.TaskID); err != nil {
		return err
	}

	if args.JSON {
		NewJSONResponse("rm", map[string]string{"id": args.TaskID}).Print()
		return nil
	}
	if !args.Quiet {
		fmt.Printf("Deleted task %s.\n", args.TaskID)
	}
	return nil
}
