// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package main provides taskdeck-setup - a guided first-run configuration.
//
// The wizard asks for the API base URL, probes the server, and writes
// ~/.taskdeck/config.toml. It is plain text so it works over SSH and in
// copy/paste-unfriendly terminals alike.
package main

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/DarthRevanXX/assignment-front/internal/config"
)

const version = "1.0.0"

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "--help" || arg == "-h" {
			printHelp()
			return
		}
		if arg == "--version" || arg == "-v" {
			fmt.Printf("taskdeck-setup v%s\n", version)
			return
		}
	}

	runSetup()
}

// printHelp shows usage information
func printHelp() {
	fmt.Println(`taskdeck-setup v` + version + `

Usage: taskdeck-setup [OPTIONS]

Options:
  --help, -h     Show this help
  --version, -v  Show version

The wizard asks for the task service URL, checks that the server is
reachable, and writes the configuration file. Run "taskdeck login"
afterwards to start a session.`)
}

func runSetup() {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println()
	fmt.Println("================================================================================")
	fmt.Println("                              TASKDECK SETUP")
	fmt.Println("================================================================================")
	fmt.Println()
	fmt.Println("This wizard will:")
	fmt.Println("  [1] Ask for the task service URL")
	fmt.Println("  [2] Check that the server is reachable")
	fmt.Println("  [3] Write your configuration")
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Warning: could not read existing config: %v\n", err)
		cfg = config.Default()
	}

	fmt.Printf("Task service URL [%s]: ", cfg.API.BaseURL)
	input, _ := reader.ReadString('\n')
	if url := strings.TrimSpace(input); url != "" {
		cfg.API.BaseURL = url
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("\nThat configuration is not valid: %v\n", err)
		os.Exit(1)
	}

	fmt.Print("\nChecking server... ")
	if probeServer(cfg.API.BaseURL) {
		fmt.Println("reachable.")
	} else {
		fmt.Println("NOT reachable.")
		fmt.Print("Save the configuration anyway? [y/N]: ")
		answer, _ := reader.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Setup cancelled.")
			os.Exit(1)
		}
	}

	if err := config.Save(cfg); err != nil {
		fmt.Printf("Failed to write configuration: %v\n", err)
		os.Exit(1)
	}

	path, _ := config.ConfigPathTOML()
	fmt.Println()
	fmt.Printf("Configuration written to %s\n", path)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  taskdeck login      Start a session")
	fmt.Println("  taskdeck            Open the TUI")
	fmt.Println()
}

// probeServer reports whether anything answers HTTP at the base URL.
// Any response counts; an unauthenticated request is expected to fail
// with a 4xx, which still proves the server is there.
func probeServer(baseURL string) bool {
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(strings.TrimRight(baseURL, "/") + "/api/v1/tasks")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}
