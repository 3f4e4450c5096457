// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// runtime.go - Shared wiring for CLI command handlers.
//
// Every subcommand needs the same stack: configuration, the persistent
// state store, the sealer for the token at rest, the session store on
// top of them, and the API client. Runtime assembles it once so the
// handlers stay small.
package cli

import (
	"fmt"

	"github.com/DarthRevanXX/assignment-front/internal/api"
	"github.com/DarthRevanXX/assignment-front/internal/config"
	"github.com/DarthRevanXX/assignment-front/internal/session"
	"github.com/DarthRevanXX/assignment-front/internal/storage"
)

// Runtime holds the dependencies shared by all CLI handlers.
type Runtime struct {
	Cfg     *config.Config
	State   *storage.StateStore
	Session *session.Store
	Client  *api.Client
}

// NewRuntime loads configuration, opens the on-disk state store, and
// builds the session store and API client. Global flags override the
// configuration where they apply.
func NewRuntime(args Args) (*Runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if args.BaseURL != "" {
		cfg.API.BaseURL = args.BaseURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	statePath, err := storage.DefaultPath()
	if err != nil {
		return nil, err
	}
	state, err := storage.Open(statePath)
	if err != nil {
		return nil, fmt.Errorf("open state store: %w", err)
	}

	keyPath, err := storage.DefaultKeyPath()
	if err != nil {
		state.Close()
		return nil, err
	}
	sealer, err := storage.NewSealer(keyPath)
	if err != nil {
		state.Close()
		return nil, fmt.Errorf("init sealer: %w", err)
	}

	sess, err := session.NewStore(state, sealer)
	if err != nil {
		state.Close()
		return nil, fmt.Errorf("init session: %w", err)
	}

	client := api.NewClient(cfg.API.BaseURL, sess).
		WithTimeout(cfg.Timeout()).
		WithRateLimit(cfg.API.RatePerSecond, int(cfg.API.RatePerSecond)*2)

	return &Runtime{
		Cfg:     cfg,
		State:   state,
		Session: sess,
		Client:  client,
	}, nil
}

// Close releases the state store.
func (rt *Runtime) Close() error {
	return rt.State.Close()
}
