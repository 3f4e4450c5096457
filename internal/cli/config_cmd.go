// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Config command implementation for taskdeck.
//
// CLI: Comprehensive help and examples for all commands
//
// Command: config
// Short:   Show and change configuration
//
// Examples:
//   taskdeck config                   Show active configuration
//   taskdeck config show              Same
//   taskdeck config path              Print the config file path
//   taskdeck config set api.url http://localhost:9090
//   taskdeck config set ui.page_size 50
//
// Keys:
//   api.url                API base URL
//   api.timeout_secs       Request timeout in seconds
//   session.watch_interval_secs  Expiry watcher interval
//   session.warn_before_secs     Warning threshold before expiry
//   ui.theme               auto, dark or light
//   ui.page_size           Default page size
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/DarthRevanXX/assignment-front/internal/config"
)

// HandleConfig routes the config subcommands.
func HandleConfig(args Args) error {
	switch args.Subcommand {
	case "", "show":
		return configShow(args)
	case "path":
		path, err := fmtConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	case "set":
		return configSet(args)
	default:
		return fmt.Errorf("unknown config subcommand %q (expected show, set or path)", args.Subcommand)
	}
}

// configShow prints the active configuration after env overrides.
func configShow(args Args) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if args.JSON {
		NewJSONResponse("config", cfg).Print()
		return nil
	}

	fmt.Println("api:")
	fmt.Printf("  url:                  %s\n", cfg.API.BaseURL)
	fmt.Printf("  timeout_secs:         %d\n", cfg.API.TimeoutSecs)
	fmt.Printf("  rate_per_second:      %g\n", cfg.API.RatePerSecond)
	fmt.Println("session:")
	fmt.Printf("  watch_interval_secs:  %d\n", cfg.Session.WatchIntervalSecs)
	fmt.Printf("  warn_before_secs:     %d\n", cfg.Session.WarnBeforeSecs)
	fmt.Println("ui:")
	fmt.Printf("  theme:                %s\n", cfg.UI.Theme)
	fmt.Printf("  page_size:            %d\n", cfg.UI.PageSize)
	return nil
}

// configSet updates one key and persists the file.
func configSet(args Args) error {
	if args.ConfigKey == "" || args.ConfigVal == "" {
		return fmt.Errorf("usage: taskdeck config set KEY VALUE")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := applyConfigKey(cfg, args.ConfigKey, args.ConfigVal); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return err
	}

	if !args.Quiet {
		fmt.Printf("Set %s = %s\n", args.ConfigKey, args.ConfigVal)
	}
	return nil
}

// applyConfigKey mutates cfg for a dotted key name.
func applyConfigKey(cfg *config.Config, key, value string) error {
	switch strings.ToLower(key) {
	case "api.url":
		cfg.API.BaseURL = value
	case "api.timeout_secs":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be a number: %w", key, err)
		}
		cfg.API.TimeoutSecs = n
	case "api.rate_per_second":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s must be a number: %w", key, err)
		}
		cfg.API.RatePerSecond = f
	case "session.watch_interval_secs":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be a number: %w", key, err)
		}
		cfg.Session.WatchIntervalSecs = n
	case "session.warn_before_secs":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be a number: %w", key, err)
		}
		cfg.Session.WarnBeforeSecs = n
	case "ui.theme":
		cfg.UI.Theme = strings.ToLower(value)
	case "ui.page_size":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be a number: %w", key, err)
		}
		cfg.UI.PageSize = n
	default:
		return fmt.Errorf("unknown config key %q", key)
	}
	return nil
}

// fmtConfigPath returns the path of the TOML config file.
func fmtConfigPath() (string, error) {
	return config.ConfigPathTOML()
}
