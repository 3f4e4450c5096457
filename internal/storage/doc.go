// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the durable client-side state store backing the
// session layer.
//
// State lives in a small SQLite database (~/.taskdeck/state.db) holding the
// bearer token, its expiry, and the one-shot session-ended flag. Writes are
// last-write-wins; SetPair is the only multi-key operation and exists so a
// token is never persisted without its expiry.
//
// The token value is sealed at rest (see Sealer) with a key kept in a
// separate 0600 file, following the same at-rest posture the rest of the
// client uses for credentials.
package storage
