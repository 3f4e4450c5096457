// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command routing for taskdeck.
//
// CLI: Comprehensive help and examples for all commands
package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.2.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdLogout
	CmdList
	CmdShow
	CmdAdd
	CmdEdit
	CmdDone
	CmdRm
	CmdStatus
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool // Output in JSON format
	BaseURL string

	// Command-specific
	TaskID      string
	Title       string
	Description string
	Status      string
	ConfigKey   string
	ConfigVal   string
	Subcommand  string

	// Listing flags
	Page  int
	Size  int
	Query string
	Sort  string

	// Raw args (remaining after flag parsing)
	Raw []string

	// Options holds command-specific named options (e.g., --format)
	Options map[string]string
}

const usageText = `taskdeck - terminal client for the task service

Taskdeck is a terminal front-end for a task-management HTTP API.

It provides:
  - A full-screen TUI with a filterable, paginated task table
  - Scriptable subcommands for every task operation
  - Bearer-token sessions persisted between runs
  - Session expiry warnings before the token runs out

Usage:
  taskdeck                     Start TUI (default)
  taskdeck login               Login and store the session
  taskdeck logout              Logout and clear the session
  taskdeck list, ls            List tasks
    --page N                   Page number (1-based)
    --size N                   Page size
    --status STATUS            Filter: pending, in_progress, completed
    --query TEXT, -q TEXT      Free-text search
    --sort FIELD,DIR           Sort order (e.g. createdAt,desc)
    --json                     Output in JSON format
  taskdeck show <id>           Show one task in detail
  taskdeck add <title>         Create a task
    --desc TEXT                Optional description
  taskdeck edit <id>           Update a task
    --title TEXT               New title
    --desc TEXT                New description
    --status STATUS            New status
  taskdeck done <id>           Mark a task completed
  taskdeck rm <id>             Delete a task
    --yes                      Skip the confirmation prompt
  taskdeck status, s           Show session and connection status
  taskdeck config [show|set|path]  Configuration
  taskdeck version             Show version information
  taskdeck help                Show this help

Global Flags:
  --url URL                    Override the API base URL
  -q, --quiet                  Suppress non-essential output
  -v, --verbose                Verbose output
  --json                       Output in JSON format

Environment:
  TASKDECK_API_URL             API base URL
  TASKDECK_THEME               TUI theme (auto, dark, light)
  TASKDECK_PAGE_SIZE           Default page size

Examples:
  taskdeck login
  taskdeck list --status pending --sort createdAt,desc
  taskdeck add "Write quarterly report" --desc "due Friday"
  taskdeck done 1b9f
  taskdeck rm 1b9f --yes

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("taskdeck version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses os.Args and returns the command and args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses the given argument list and returns the command and args.
func ParseArgs(args []string) (Command, Args) {
	// Parse global flags first
	remaining, parsedArgs := parseGlobalFlags(args)

	// If no remaining args, default to TUI
	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	// Check first argument for command
	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs

	case "login":
		return CmdLogin, parsedArgs

	case "logout":
		return CmdLogout, parsedArgs

	case "list", "ls":
		parseListArgs(&parsedArgs, remaining)
		return CmdList, parsedArgs

	case "show", "get":
		if len(remaining) > 0 {
			parsedArgs.TaskID = remaining[0]
		}
		return CmdShow, parsedArgs

	case "add", "new", "create":
		parseAddArgs(&parsedArgs, remaining)
		return CmdAdd, parsedArgs

	case "edit", "update":
		parseEditArgs(&parsedArgs, remaining)
		return CmdEdit, parsedArgs

	case "done", "complete":
		if len(remaining) > 0 {
			parsedArgs.TaskID = remaining[0]
		}
		return CmdDone, parsedArgs

	case "rm", "delete", "del":
		parseRmArgs(&parsedArgs, remaining)
		return CmdRm, parsedArgs

	case "status", "s":
		return CmdStatus, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, remaining)
		return CmdConfig, parsedArgs

	case "version", "--version":
		return CmdVersion, parsedArgs

	case "help", "--help", "-h":
		return CmdHelp, parsedArgs

	default:
		// Unknown command: show help rather than guessing
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		return CmdHelp, parsedArgs
	}
}

// parseGlobalFlags extracts flags that apply to every command.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	parsedArgs := Args{
		Options: make(map[string]string),
	}

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--url":
			if i+1 < len(args) {
				i++
				parsedArgs.BaseURL = args[i]
			}
		default:
			if strings.HasPrefix(arg, "--url=") {
				parsedArgs.BaseURL = strings.TrimPrefix(arg, "--url=")
			} else {
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// parseListArgs parses list command specific arguments.
func parseListArgs(args *Args, remaining []string) {
	i := 0
	for i < len(remaining) {
		arg := remaining[i]

		switch arg {
		case "--page", "-p":
			if i+1 < len(remaining) {
				i++
				if n, err := strconv.Atoi(remaining[i]); err == nil {
					args.Page = n
				}
			}
		case "--size", "-n":
			if i+1 < len(remaining) {
				i++
				if n, err := strconv.Atoi(remaining[i]); err == nil {
					args.Size = n
				}
			}
		case "--status":
			if i+1 < len(remaining) {
				i++
				args.Status = remaining[i]
			}
		case "--query", "-q", "--search":
			if i+1 < len(remaining) {
				i++
				args.Query = remaining[i]
			}
		case "--sort":
			if i+1 < len(remaining) {
				i++
				args.Sort = remaining[i]
			}
		case "--json":
			args.JSON = true
		default:
			// Bare words are treated as search text
			if !strings.HasPrefix(arg, "-") {
				if args.Query == "" {
					args.Query = arg
				} else {
					args.Query += " " + arg
				}
			}
		}
		i++
	}
}

// parseAddArgs parses add command specific arguments.
// Bare words form the title; --desc supplies the description.
func parseAddArgs(args *Args, remaining []string) {
	var title []string

	i := 0
	for i < len(remaining) {
		arg := remaining[i]

		switch arg {
		case "--desc", "--description", "-d":
			if i+1 < len(remaining) {
				i++
				args.Description = remaining[i]
			}
		case "--status":
			if i+1 < len(remaining) {
				i++
				args.Status = remaining[i]
			}
		default:
			if !strings.HasPrefix(arg, "-") {
				title = append(title, arg)
			}
		}
		i++
	}

	args.Title = strings.Join(title, " ")
}

// parseEditArgs parses edit command specific arguments.
func parseEditArgs(args *Args, remaining []string) {
	i := 0
	for i < len(remaining) {
		arg := remaining[i]

		switch arg {
		case "--title", "-t":
			if i+1 < len(remaining) {
				i++
				args.Title = remaining[i]
			}
		case "--desc", "--description", "-d":
			if i+1 < len(remaining) {
				i++
				args.Description = remaining[i]
				args.Options["desc"] = remaining[i]
			}
		case "--status", "-s":
			if i+1 < len(remaining) {
				i++
				args.Status = remaining[i]
			}
		default:
			if !strings.HasPrefix(arg, "-") && args.TaskID == "" {
				args.TaskID = arg
			}
		}
		i++
	}
}

// parseRmArgs parses rm command specific arguments.
func parseRmArgs(args *Args, remaining []string) {
	for _, arg := range remaining {
		switch arg {
		case "--yes", "-y", "--confirm", "-f":
			args.Options["yes"] = "true"
		default:
			if !strings.HasPrefix(arg, "-") && args.TaskID == "" {
				args.TaskID = arg
			}
		}
	}
}

// parseConfigArgs parses config command specific arguments.
//
//	taskdeck config              -> show
//	taskdeck config show
//	taskdeck config path
//	taskdeck config set KEY VAL
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) == 0 {
		args.Subcommand = "show"
		return
	}
	args.Subcommand = strings.ToLower(remaining[0])
	if args.Subcommand == "set" {
		if len(remaining) > 1 {
			args.ConfigKey = remaining[1]
		}
		if len(remaining) > 2 {
			args.ConfigVal = remaining[2]
		}
	}
}
