// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"strings"
)

// =============================================================================
// AUTHENTICATION TYPES
// =============================================================================

// Credentials is the body of POST /api/v1/auth/login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks the credentials before a login attempt.
// The server enforces its own rules; this only catches empty submissions
// so the UI never wastes a round-trip.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if c.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// LoginResult is the body of a successful login response.
// ExpiresInSeconds is optional; when zero the token has no known lifetime
// and the client treats it as non-expiring.
type LoginResult struct {
	Token            string `json:"token"`
	ExpiresInSeconds int64  `json:"expiresInSeconds,omitempty"`
}
