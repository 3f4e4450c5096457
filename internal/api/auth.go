// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"log"
	"net/http"

	"github.com/DarthRevanXX/assignment-front/internal/model"
)

// =============================================================================
// AUTHENTICATION OPERATIONS
// =============================================================================

// Login authenticates with the service and stores the returned token in the
// session store before returning. The login request itself carries no bearer
// header; every later call does.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (*model.LoginResult, error) {
	if err := creds.Validate(); err != nil {
		return nil, &APIError{Message: err.Error(), Status: http.StatusBadRequest}
	}

	var result model.LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, creds, &result); err != nil {
		return nil, err
	}

	if err := c.session.SetToken(result.Token, result.ExpiresInSeconds); err != nil {
		return nil, &APIError{Message: err.Error(), Status: 0}
	}
	return &result, nil
}

// Logout notifies the server and clears the session locally. The server
// call is best-effort: a transport or server failure never leaves stale
// credentials behind, so the local clear happens unconditionally and its
// outcome is what Logout reports.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil); err != nil {
		log.Printf("logout request failed, clearing session anyway: %v", err)
	}
	return c.session.Clear()
}
