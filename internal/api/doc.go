// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the request pipeline between the client and the
// task service.
//
// # Key Types
//
//   - Client: executes every outbound call through one pipeline with
//     pre-flight expiry checks, bearer injection, and error normalization
//   - APIError: the single error shape all failures are converted to,
//     carrying a human-readable message and an HTTP status (0 for
//     failures below the HTTP layer)
//
// # Usage
//
//	client := api.NewClient(cfg.APIURL, sessionStore)
//	client.SetSessionEndedCallback(func() { ... })
//
//	result, err := client.Login(ctx, model.Credentials{Username: u, Password: p})
//	page, err := client.ListTasks(ctx, model.TaskFilter{Page: 0, Size: 20})
//
// Error handling is uniform: every error returned by a Client method is an
// *APIError. A 401 from the server, or an expired token caught before the
// call, clears the session and fires the session-ended callback; callers
// never perform that cleanup themselves.
package api
