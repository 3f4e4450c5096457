// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui implements the taskdeck terminal interface with Bubble Tea.
//
// # Key Types
//
//   - App: the root model, routing between the login screen, the task
//     table, and the create/edit/delete dialogs
//   - LoginView, TaskListView, TaskFormView, ConfirmView: the screens
//
// The expiration watcher is driven from the event loop via its tick
// command; its warning and expiry arrive as messages. Session-ended
// signals from the request pipeline are bridged through a channel so all
// navigation decisions happen inside Update.
package ui
