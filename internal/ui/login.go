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
// LOGIN VIEW
// =============================================================================

// LoginView collects credentials and performs the login call.
//
// When the previous session ended without an explicit logout, the one-shot
// session-ended flag surfaces here as a notice explaining the return to the
// login screen.
type LoginView struct {
	theme  *styles.Theme
	client *api.Client

	username textinput.Model
	password textinput.Model
	focus    int
	busy     bool

	notice string
	toast  components.Toast
}

// NewLoginView creates the login form. notice is shown above the form when
// non-empty.
func NewLoginView(theme *styles.Theme, client *api.Client, notice string) LoginView {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return LoginView{
		theme:    theme,
		client:   client,
		username: username,
		password: password,
		notice:   notice,
		toast:    components.NewToast(theme),
	}
}

// SetNotice replaces the notice line shown above the form.
func (v *LoginView) SetNotice(notice string) {
	v.notice = notice
}

// loginCmd performs the login call off the UI loop.
func loginCmd(client *api.Client, creds model.Credentials) tea.Cmd {
	return func() tea.Msg {
		result, err := client.Login(context.Background(), creds)
		if err != nil {
			return toErrorMsg(err)
		}
		return loginSuccessMsg{result: result}
	}
}

// Update handles input. The returned command is non-nil when a login call
// was started or a toast timer armed.
func (v LoginView) Update(msg tea.Msg) (LoginView, tea.Cmd) {
	v.toast.Update(msg)

	switch msg := msg.(type) {
	case apiErrorMsg:
		v.busy = false
		v.password.SetValue("")
		return v, v.toast.Show(components.ToastError, msg.err.Message)

	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			v.focus = (v.focus + 1) % 2
			if v.focus == 0 {
				v.username.Focus()
				v.password.Blur()
			} else {
				v.username.Blur()
				v.password.Focus()
			}
			return v, nil

		case "enter":
			creds := model.Credentials{
				Username: strings.TrimSpace(v.username.Value()),
				Password: v.password.Value(),
			}
			if err := creds.Validate(); err != nil {
				return v, v.toast.Show(components.ToastError, err.Error())
			}
			v.busy = true
			return v, loginCmd(v.client, creds)
		}
	}

	var cmd tea.Cmd
	if v.focus == 0 {
		v.username, cmd = v.username.Update(msg)
	} else {
		v.password, cmd = v.password.Update(msg)
	}
	return v, cmd
}

// View renders the login form.
func (v LoginView) View() string {
	var b strings.Builder

	b.WriteString(v.theme.DialogTitle.Render("Sign in to taskdeck"))
	b.WriteString("\n\n")

	if v.notice != "" {
		b.WriteString(v.theme.InfoBox.Render(v.notice))
		b.WriteString("\n\n")
	}
	if v.toast.Visible() {
		b.WriteString(v.toast.View())
		b.WriteString("\n\n")
	}

	b.WriteString(v.theme.Label.Render("Username"))
	b.WriteString("\n")
	b.WriteString(v.username.View())
	b.WriteString("\n\n")
	b.WriteString(v.theme.Label.Render("Password"))
	b.WriteString("\n")
	b.WriteString(v.password.View())
	b.WriteString("\n\n")

	if v.busy {
		b.WriteString(v.theme.Help.Render("Signing in..."))
	} else {
		b.WriteString(v.theme.Help.Render("enter sign in • tab switch field • ctrl+c quit"))
	}

	return v.theme.Dialog.Render(b.String())
}
