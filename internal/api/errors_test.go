// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestClassifyTransportError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantPart string
	}{
		{"fetch-style failure", errors.New("failed to fetch"), "connect"},
		{"refused connection", errors.New("dial tcp 127.0.0.1:8080: connect: connection refused"), "connect"},
		{"unknown host", errors.New("no such host"), "connect"},
		{"cross-origin", errors.New("blocked by CORS policy"), "temporarily unavailable"},
		{"reset", errors.New("read: connection reset by peer"), "network error"},
		{"timeout", errors.New("context deadline exceeded"), "network error"},
		{"unrecognized", errors.New("weirdness"), "Something went wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyTransportError(tt.err)
			if got.Status != 0 {
				t.Errorf("Status = %d, want 0", got.Status)
			}
			if !strings.Contains(strings.ToLower(got.Message), strings.ToLower(tt.wantPart)) {
				t.Errorf("Message = %q, want it to contain %q", got.Message, tt.wantPart)
			}
		})
	}
}

func TestClassifyTransportError_PassesThroughAPIErrors(t *testing.T) {
	// An error already carrying a status is never re-wrapped.
	orig := &APIError{Message: "Forbidden", Status: 403}
	got := classifyTransportError(fmt.Errorf("wrapped: %w", orig))
	if got != orig {
		t.Errorf("got %+v, want the original error unchanged", got)
	}
}

func TestAPIError_Error(t *testing.T) {
	if got := (&APIError{Message: "boom", Status: 500}).Error(); got != "boom" {
		t.Errorf("Error() = %q, want boom", got)
	}
	if got := (&APIError{Status: 502}).Error(); got != "HTTP 502" {
		t.Errorf("Error() = %q, want HTTP 502", got)
	}
}

func TestAPIError_IsAuthError(t *testing.T) {
	if !(&APIError{Status: 401}).IsAuthError() {
		t.Error("401 is an auth error")
	}
	if (&APIError{Status: 403}).IsAuthError() {
		t.Error("403 is not an auth error")
	}
}

func TestIsJSONContentType(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"application/json", true},
		{"application/json; charset=utf-8", true},
		{"application/problem+json", true},
		{"application/hal+json", true},
		{"text/plain", false},
		{"text/html; charset=utf-8", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isJSONContentType(tt.contentType); got != tt.want {
			t.Errorf("isJSONContentType(%q) = %v, want %v", tt.contentType, got, tt.want)
		}
	}
}
