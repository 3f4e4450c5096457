// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the authenticated request pipeline for the task
// service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/DarthRevanXX/assignment-front/internal/session"
)

// Configuration constants for the task service API.
const (
	// DefaultBaseURL is the base URL of the task service.
	DefaultBaseURL = "http://localhost:8080"

	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 30 * time.Second

	// apiPrefix is the versioned path prefix shared by all endpoints.
	apiPrefix = "/api/v1"

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion.
	MaxResponseSize = 4 * 1024 * 1024 // 4MB limit

	// userAgent identifies this client to the server.
	userAgent = "taskdeck/0.2.0"
)

// Client executes calls against the task service.
//
// Every request goes through the same pipeline: a pre-flight expiry check
// that short-circuits with a synthetic 401, bearer header injection when a
// token is present, and normalization of every failure into an APIError.
// A server-side 401 clears the session and notifies the session-ended
// callback; the decision to navigate belongs to whoever registered it.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Store
	limiter    *rate.Limiter

	onSessionEnded func()
}

// NewClient creates a client for the service at baseURL, bound to the given
// session store.
//
// The underlying HTTP client carries a cookie jar: the server may set its
// own same-site cookie alongside the bearer token, and cookies are always
// sent back even though the pipeline never reads them.
func NewClient(baseURL string, sess *session.Store) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			Jar:     jar,
		},
		session: sess,
		limiter: rate.NewLimiter(rate.Limit(20), 40),
	}
}

// WithTimeout sets the request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient.Timeout = timeout
	return c
}

// WithHTTPClient swaps the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc.Jar == nil {
		hc.Jar, _ = cookiejar.New(nil)
	}
	c.httpClient = hc
	return c
}

// WithRateLimit caps outbound requests per second with the given burst.
func (c *Client) WithRateLimit(perSecond float64, burst int) *Client {
	c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	return c
}

// SetSessionEndedCallback registers the function called when the session is
// ended by expiry or a server-side 401. The callback fires at most once per
// live session.
func (c *Client) SetSessionEndedCallback(fn func()) {
	c.onSessionEnded = fn
}

// BaseURL returns the configured service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// =============================================================================
// REQUEST LOGGING
// =============================================================================

// logRequest logs an API request without exposing sensitive data.
// SECURITY: Never log headers (carry auth) or bodies (carry credentials).
func (c *Client) logRequest(method, path string) {
	log.Printf("API Request: %s %s", method, path)
}

// logResponse logs status and duration only, no response body.
func (c *Client) logResponse(status int, duration time.Duration) {
	log.Printf("API Response: %d (%v)", status, duration)
}

// =============================================================================
// REQUEST PIPELINE
// =============================================================================

// do executes one call through the full pipeline. path is relative to the
// API prefix; query may be nil; body is JSON-marshalled when non-nil; out is
// filled from a JSON response body when non-nil.
//
// Every returned error is an *APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	// Pre-flight: an expired token never reaches the network. The session
	// ends here exactly as it would on a server-side 401.
	if c.session.HasToken() && c.session.IsTokenExpired() {
		c.endSession()
		return newSessionExpiredError()
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return classifyTransportError(err)
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: fmt.Sprintf("failed to encode request: %v", err), Status: 0}
		}
		reqBody = bytes.NewReader(payload)
	}

	requestURL := c.baseURL + apiPrefix + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reqBody)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("failed to build request: %v", err), Status: 0}
	}
	c.setHeaders(req)

	c.logRequest(method, apiPrefix+path)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	// SECURITY: Clear the bearer header immediately after the request so a
	// logged or retained request never exposes it.
	req.Header.Del("Authorization")

	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()
	c.logResponse(resp.StatusCode, duration)

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	raw, err := readResponse(resp)
	if err != nil {
		return &APIError{Message: err.Error(), Status: 0}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized {
			c.endSession()
		}
		return c.errorFromResponse(resp, raw)
	}

	if out != nil && isJSONContentType(resp.Header.Get("Content-Type")) {
		if err := json.Unmarshal(raw, out); err != nil {
			return &APIError{Message: fmt.Sprintf("failed to parse response: %v", err), Status: 0}
		}
	}
	return nil
}

// setHeaders sets the standard headers, attaching the bearer token only
// when one is present. An anonymous request carries no Authorization header
// at all.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// readResponse reads the body with a size limit.
// SECURITY: Response size limit prevents memory exhaustion.
func readResponse(resp *http.Response) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(raw)) == MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return raw, nil
}

// errorBody is the shape of a JSON error payload. Servers vary between
// RFC 7807 problem documents and plain message envelopes, so all three
// candidate fields are read with detail taking priority over message over
// title.
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
	Title   string `json:"title"`
}

// errorFromResponse converts a non-2xx response into an APIError.
func (c *Client) errorFromResponse(resp *http.Response, raw []byte) *APIError {
	if isJSONContentType(resp.Header.Get("Content-Type")) {
		var body errorBody
		if err := json.Unmarshal(raw, &body); err == nil {
			for _, msg := range []string{body.Detail, body.Message, body.Title} {
				if msg != "" {
					return &APIError{Message: msg, Status: resp.StatusCode}
				}
			}
		}
		return newStatusError(resp.StatusCode)
	}

	if text := strings.TrimSpace(string(raw)); text != "" {
		return &APIError{Message: text, Status: resp.StatusCode}
	}
	return newStatusError(resp.StatusCode)
}

// isJSONContentType accepts plain JSON and problem+json media types.
func isJSONContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" ||
		mediaType == "application/problem+json" ||
		strings.HasSuffix(mediaType, "+json")
}

// =============================================================================
// SESSION TERMINATION
// =============================================================================

// endSession clears the session, records the durable session-ended flag,
// and fires the callback. A session that is already empty (a stale 401
// racing the watcher) is left alone and nothing is re-notified.
func (c *Client) endSession() {
	if !c.session.HasToken() {
		return
	}
	if err := c.session.Clear(); err != nil {
		log.Printf("failed to clear session: %v", err)
	}
	if err := c.session.MarkEnded(); err != nil {
		log.Printf("failed to record session end: %v", err)
	}
	if c.onSessionEnded != nil {
		c.onSessionEnded()
	}
}
