// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads and validates the taskdeck configuration.
//
// # Key Types
//
//   - Config: the complete configuration (API connection, session watcher,
//     UI presentation), loadable from TOML or JSON with env overrides
//   - ValidationError / ValidateErrors: per-field validation failures,
//     all reported in one pass
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil { ... }
//	client := api.NewClient(cfg.API.BaseURL, sess).WithTimeout(cfg.Timeout())
package config
