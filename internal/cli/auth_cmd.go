// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// auth_cmd.go - login/logout command implementations for taskdeck.
//
// CLI: Comprehensive help and examples for all commands
//
// Command: login
// Short:   Authenticate and store the session token
//
// Examples:
//   taskdeck login                Prompt for username and password
//
// Command: logout
// Short:   End the session and clear the stored token
//
// SECURITY: The password is read without echo and never logged. The
// token is sealed before it reaches disk.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/DarthRevanXX/assignment-front/internal/model"
)

// HandleLogin prompts for credentials, authenticates, and persists the
// session for subsequent commands and the TUI.
func HandleLogin(args Args) error {
	if !IsTTY() {
		return fmt.Errorf("login requires an interactive terminal")
	}

	rt, err := NewRuntime(args)
	if err != nil {
		return err
	}
	defer rt.Close()

	username, err := promptUsername()
	if err != nil {
		return err
	}

	fmt.Print("Password: ")
	// SECURITY: read the password without echoing it
	passBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	creds := model.Credentials{
		Username: strings.TrimSpace(username),
		Password: string(passBytes),
	}

	result, err := rt.Client.Login(context.Background(), creds)
	if err != nil {
		return err
	}

	if args.JSON {
		NewJSONResponse("login", map[string]interface{}{
			"username":  creds.Username,
			"expiresIn": result.ExpiresInSeconds,
		}).Print()
		return nil
	}
	if !args.Quiet {
		fmt.Printf("Logged in as %s.\n", creds.Username)
		if remaining, ok := rt.Session.RemainingTime(); ok {
			fmt.Printf("Session valid for %s.\n", formatDuration(remaining))
		}
	}
	return nil
}

// promptUsername reads the username with line editing.
func promptUsername() (string, error) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	username, err := line.Prompt("Username: ")
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", fmt.Errorf("login cancelled")
		}
		return "", fmt.Errorf("read username: %w", err)
	}
	return username, nil
}

// HandleLogout notifies the server and clears the local session. The
// local session is cleared even when the server cannot be reached.
func HandleLogout(args Args) error {
	rt, err := NewRuntime(args)
	if err != nil {
		return err
	}
	defer rt.Close()

	hadSession := rt.Session.HasToken()
	if err := rt.Client.Logout(context.Background()); err != nil {
		return err
	}

	if args.JSON {
		NewJSONResponse("logout", map[string]interface{}{
			"hadSession": hadSession,
		}).Print()
		return nil
	}
	if !args.Quiet {
		if hadSession {
			fmt.Println("Logged out.")
		} else {
			fmt.Println("No active session.")
		}
	}
	return nil
}
