// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the domain types shared across the client:
// tasks and their status enum, the listing filter, and the
// authentication request/response shapes.
//
// # Key Types
//
//   - Task: a task as returned by the server
//   - TaskStatus: PENDING / IN_PROGRESS / COMPLETED
//   - TaskFilter: pagination, search, status and sort query state
//   - Credentials / LoginResult: the login exchange
//
// The types here mirror the REST API wire format exactly; anything
// display-related (labels, sort cycling) is a convenience on top and
// never changes what goes over the wire.
package model
