// taskdeck - a terminal client for the task service.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DarthRevanXX/assignment-front/internal/cli"
	"github.com/DarthRevanXX/assignment-front/internal/session"
	"github.com/DarthRevanXX/assignment-front/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "0.2.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	var err error
	switch cmd {
	case cli.CmdTUI:
		err = runTUI(args)
	case cli.CmdLogin:
		err = cli.HandleLogin(args)
	case cli.CmdLogout:
		err = cli.HandleLogout(args)
	case cli.CmdList:
		err = cli.HandleList(args)
	case cli.CmdShow:
		err = cli.HandleShow(args)
	case cli.CmdAdd:
		err = cli.HandleAdd(args)
	case cli.CmdEdit:
		err = cli.HandleEdit(args)
	case cli.CmdDone:
		err = cli.HandleDone(args)
	case cli.CmdRm:
		err = cli.HandleRm(args)
	case cli.CmdStatus:
		err = cli.HandleStatus(args)
	case cli.CmdConfig:
		err = cli.HandleConfig(args)
	case cli.CmdVersion:
		cli.PrintVersion()
	case cli.CmdHelp:
		cli.PrintUsage()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runTUI wires the full stack and starts the Bubble Tea program.
func runTUI(args cli.Args) error {
	rt, err := cli.NewRuntime(args)
	if err != nil {
		return err
	}
	defer rt.Close()

	watcher := session.NewWatcher(rt.Session, session.WatcherConfig{
		Interval:   rt.Cfg.WatchInterval(),
		WarnBefore: rt.Cfg.WarnBefore(),
	})

	app := ui.NewApp(rt.Cfg, rt.Client, rt.Session, watcher)

	// Mouse capture disabled to allow terminal text selection/copy
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
