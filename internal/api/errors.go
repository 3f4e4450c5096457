// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// =============================================================================
// NORMALIZED ERRORS
// =============================================================================

// SessionExpiredMessage is the message carried by the synthetic 401 raised
// when an expired token is caught before the network call.
const SessionExpiredMessage = "Your session has expired. Please login again."

// APIError is the single error shape every pipeline failure is converted to.
//
// Status is the HTTP status code when the server responded, 0 when the
// failure happened below the HTTP layer, and a synthetic 401 for
// client-side-detected expiry. Message is always human-readable.
type APIError struct {
	Message string
	Status  int
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// IsAuthError reports whether this error represents a rejected or expired
// credential.
func (e *APIError) IsAuthError() bool {
	return e.Status == http.StatusUnauthorized
}

// newSessionExpiredError builds the synthetic pre-flight 401.
func newSessionExpiredError() *APIError {
	return &APIError{Message: SessionExpiredMessage, Status: http.StatusUnauthorized}
}

// newStatusError builds the fallback error for a response body that yielded
// no usable message.
func newStatusError(status int) *APIError {
	text := http.StatusText(status)
	if text == "" {
		text = "Unknown Status"
	}
	return &APIError{
		Message: fmt.Sprintf("HTTP %d: %s", status, text),
		Status:  status,
	}
}

// =============================================================================
// TRANSPORT FAULT CLASSIFICATION
// =============================================================================

// transportPattern maps keywords found in low-level failure text to a
// user-facing message. Matching is case-insensitive; first match wins, so
// patterns are ordered most specific first.
type transportPattern struct {
	keywords []string
	message  string
}

var transportPatterns = []transportPattern{
	{
		keywords: []string{
			"failed to fetch", "connection refused", "dial tcp",
			"no such host", "cannot connect", "failed to connect",
		},
		message: "Cannot connect to the server. Please check that it is running and try again.",
	},
	{
		keywords: []string{
			"cross-origin", "cors", "blocked by", "origin",
		},
		message: "The service is temporarily unavailable. Please try again later.",
	},
	{
		keywords: []string{
			"network", "connection reset", "broken pipe", "timeout",
			"deadline exceeded", "unexpected eof",
		},
		message: "A network error occurred. Please check your connection and try again.",
	},
}

// genericTransportMessage covers failures no pattern recognizes.
const genericTransportMessage = "Something went wrong. Please try again."

// classifyTransportError converts a failure raised below the HTTP layer into
// a status-0 APIError. An error that already carries a status passes through
// unchanged.
func classifyTransportError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	text := strings.ToLower(err.Error())
	for _, p := range transportPatterns {
		for _, kw := range p.keywords {
			if strings.Contains(text, kw) {
				return &APIError{Message: p.message, Status: 0}
			}
		}
	}
	return &APIError{Message: genericTransportMessage, Status: 0}
}
