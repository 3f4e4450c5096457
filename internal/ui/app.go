// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/DarthRevanXX/assignment-front/internal/api"
	"github.com/DarthRevanXX/assignment-front/internal/config"
	"github.com/DarthRevanXX/assignment-front/internal/session"
	"github.com/DarthRevanXX/assignment-front/internal/ui/styles"
)

// =============================================================================
// ROOT MODEL
// =============================================================================

// view selects which screen owns the input.
type view int

const (
	viewLogin view = iota
	viewTasks
	viewForm
	viewConfirm
)

// App is the root Bubble Tea model. It routes between the login screen and
// the task views, drives the expiration watcher from the event loop, and
// reacts to session-ended signals from the request pipeline.
type App struct {
	cfg     *config.Config
	theme   *styles.Theme
	client  *api.Client
	sess    *session.Store
	watcher *session.Watcher

	// sessionEnded receives one signal per pipeline-detected session end.
	sessionEnded chan struct{}

	active  view
	login   LoginView
	tasks   TaskListView
	form    TaskFormView
	confirm ConfirmView

	width  int
	height int
}

// NewApp wires the root model. The pipeline's session-ended callback is
// bridged into the event loop through a channel so navigation happens in
// Update, never inside the pipeline.
func NewApp(cfg *config.Config, client *api.Client, sess *session.Store, watcher *session.Watcher) *App {
	theme := styles.NewTheme(cfg.UI.Theme)

	a := &App{
		cfg:          cfg,
		theme:        theme,
		client:       client,
		sess:         sess,
		watcher:      watcher,
		sessionEnded: make(chan struct{}, 1),
		tasks:        NewTaskListView(theme, client, cfg.UI.PageSize),
	}

	client.SetSessionEndedCallback(func() {
		select {
		case a.sessionEnded <- struct{}{}:
		default:
		}
	})

	// A session persisted by a previous run skips the login screen; the
	// one-shot ended flag explains a forced return to it.
	notice := ""
	if sess.TakeEnded() {
		notice = api.SessionExpiredMessage
	}
	a.login = NewLoginView(theme, client, notice)

	if sess.HasToken() && !sess.IsTokenExpired() {
		a.active = viewTasks
	}
	return a
}

// waitForSessionEnd re-arms the channel listener.
func waitForSessionEnd(ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return sessionEndedMsg{}
	}
}

// Init starts the watcher tick and the session-ended listener.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		a.watcher.TickCmd(),
		waitForSessionEnd(a.sessionEnded),
	}
	if a.active == viewTasks {
		cmds = append(cmds, a.tasks.LoadCmd())
	}
	return tea.Batch(cmds...)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update routes messages to the active view and handles app-level concerns.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.tasks.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case session.TickMsg:
		return a, a.watcher.HandleTick()

	case session.ExpiryWarningMsg:
		a.tasks.ShowExpiryWarning(msg.MinutesLeft)
		return a, nil

	case session.ExpiredMsg:
		// The watcher observed expiry before any request did. The notice is
		// shown right here, so the durable ended flag stays unset; it exists
		// for runs where nobody was around to see the message.
		a.sess.Clear()
		a.switchToLogin(api.SessionExpiredMessage)
		return a, nil

	case sessionEndedMsg:
		// The pipeline set the ended flag before signaling. Showing the
		// notice now consumes it, so the next start does not repeat it.
		a.sess.TakeEnded()
		a.switchToLogin(api.SessionExpiredMessage)
		return a, waitForSessionEnd(a.sessionEnded)

	case loginSuccessMsg:
		a.watcher.Reset()
		a.tasks.HideExpiryWarning()
		a.active = viewTasks
		return a, a.tasks.LoadCmd()

	case logoutDoneMsg:
		a.switchToLogin("")
		return a, nil

	case formCancelledMsg:
		a.active = viewTasks
		return a, nil

	case taskSavedMsg, taskDeletedMsg:
		// Close any dialog and let the list refetch.
		a.active = viewTasks
		var cmd tea.Cmd
		a.tasks, cmd = a.tasks.Update(msg)
		return a, cmd
	}

	return a.updateActive(msg)
}

// updateActive delegates to the view that owns the input.
func (a *App) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.active {
	case viewLogin:
		a.login, cmd = a.login.Update(msg)

	case viewTasks:
		// While the search input is focused every key belongs to it.
		if key, ok := msg.(tea.KeyMsg); ok && !a.tasks.searching {
			switch key.String() {
			case "q":
				return a, tea.Quit
			case "n":
				a.form = NewTaskFormView(a.theme, a.client, nil)
				a.active = viewForm
				return a, textinput.Blink
			case "e", "enter":
				if task := a.tasks.SelectedTask(); task != nil {
					a.form = NewTaskFormView(a.theme, a.client, task)
					a.active = viewForm
					return a, textinput.Blink
				}
				return a, nil
			case "d", "x":
				if task := a.tasks.SelectedTask(); task != nil {
					a.confirm = NewConfirmView(a.theme, a.client, *task)
					a.active = viewConfirm
				}
				return a, nil
			case "L":
				return a, logoutCmd(a.client)
			}
		}
		a.tasks, cmd = a.tasks.Update(msg)

	case viewForm:
		a.form, cmd = a.form.Update(msg)

	case viewConfirm:
		a.confirm, cmd = a.confirm.Update(msg)
	}
	return a, cmd
}

// switchToLogin returns to the login screen with an optional notice.
func (a *App) switchToLogin(notice string) {
	a.login = NewLoginView(a.theme, a.client, notice)
	a.tasks.HideExpiryWarning()
	a.active = viewLogin
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the active screen under the application header.
func (a *App) View() string {
	var b strings.Builder
	b.WriteString(a.theme.Header.Render("taskdeck"))
	b.WriteString("\n")

	switch a.active {
	case viewLogin:
		b.WriteString(a.login.View())
	case viewTasks:
		b.WriteString(a.tasks.View())
	case viewForm:
		b.WriteString(a.form.View())
	case viewConfirm:
		b.WriteString(a.confirm.View())
	}
	return a.theme.App.Render(b.String())
}
