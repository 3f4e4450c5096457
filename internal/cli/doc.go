// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the taskdeck command-line interface.
//
// # Key Types
//
//   - Command: the enumeration of subcommands, with CmdTUI as default
//   - Args: parsed global and command-specific arguments
//   - Runtime: the wired dependency stack shared by all handlers
//
// # Usage
//
//	cmd, args := cli.Parse()
//	switch cmd {
//	case cli.CmdList:
//	    err = cli.HandleList(args)
//	...
//
// Handlers return errors; exit codes are main's concern. Every handler
// that talks to the server goes through the same client as the TUI, so
// session expiry behaves identically in both.
package cli
