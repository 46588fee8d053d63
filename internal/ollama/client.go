// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/rigchat/internal/config"
	"github.com/jeranaias/rigchat/internal/util"
)

const (
	// maxResponseBytes caps how much of any reply body is read.
	maxResponseBytes = 8 << 20
	// maxErrorDetail caps the server error text kept in a ClientError.
	maxErrorDetail = 200
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the client.
type ClientConfig struct {
	// BaseURL is the server base URL (default: http://localhost:11434)
	BaseURL string

	// APIKey is sent as a bearer token when non-empty
	APIKey string

	// Request paths appended to BaseURL
	ProbePath    string
	ModelsPath   string
	GeneratePath string

	// Timeout bounds the probe and model listing (default: 10s)
	Timeout time.Duration

	// GenerateTimeout bounds a generation (default: 120s)
	GenerateTimeout time.Duration

	// RateLimit is the sustained requests per second (default: 5)
	RateLimit float64

	// RateBurst is the limiter bucket size (default: 5)
	RateBurst int

	// HTTPClient overrides the transport, mainly for tests
	HTTPClient *http.Client
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:         "http://localhost:11434",
		ProbePath:       "/api/version",
		ModelsPath:      "/api/tags",
		GeneratePath:    "/api/generate",
		Timeout:         10 * time.Second,
		GenerateTimeout: 120 * time.Second,
		RateLimit:       5,
		RateBurst:       5,
	}
}

// ConfigFromSettings builds a client configuration from a settings snapshot.
// Surrounding whitespace in the endpoint and key is dropped, matching what
// validation accepts.
func ConfigFromSettings(s config.Settings) *ClientConfig {
	cfg := DefaultConfig()
	cfg.BaseURL = strings.TrimSpace(s.APIEndpoint)
	cfg.APIKey = strings.TrimSpace(s.APIKey)
	cfg.ProbePath = s.Paths.Probe
	cfg.ModelsPath = s.Paths.Models
	cfg.GeneratePath = s.Paths.Generate
	if d := s.RequestTimeout(); d > 0 {
		cfg.Timeout = d
	}
	if d := s.GenerateTimeout(); d > 0 {
		cfg.GenerateTimeout = d
	}
	return cfg
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the inference server.
//
// The Client is safe for concurrent use. It holds no conversation state;
// every call is independent.
//
// Example:
//
//	client := ollama.NewClientWithConfig(ollama.ConfigFromSettings(settings))
//	if !client.ProbeConnection(ctx) {
//	    log.Warn("server not reachable")
//	}
//	text, err := client.Generate(ctx, ollama.GenerateRequest{Model: "mistral", Prompt: "Hi"})
type Client struct {
	config     ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClientWithConfig creates a new client with custom configuration.
// Zero values are filled from DefaultConfig.
func NewClientWithConfig(cfg *ClientConfig) *Client {
	defaults := DefaultConfig()
	if cfg == nil {
		cfg = defaults
	}
	c := *cfg

	if c.BaseURL == "" {
		c.BaseURL = defaults.BaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.ProbePath == "" {
		c.ProbePath = defaults.ProbePath
	}
	if c.ModelsPath == "" {
		c.ModelsPath = defaults.ModelsPath
	}
	if c.GeneratePath == "" {
		c.GeneratePath = defaults.GeneratePath
	}
	if c.Timeout <= 0 {
		c.Timeout = defaults.Timeout
	}
	if c.GenerateTimeout <= 0 {
		c.GenerateTimeout = defaults.GenerateTimeout
	}
	if c.RateLimit <= 0 {
		c.RateLimit = defaults.RateLimit
	}
	if c.RateBurst <= 0 {
		c.RateBurst = defaults.RateBurst
	}

	// Deadlines come from per-call contexts, not http.Client.Timeout, so a
	// caller's cancel and the generate budget both apply.
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		config:     c,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(c.RateLimit), c.RateBurst),
	}
}

// Config returns a copy of the effective configuration.
func (c *Client) Config() ClientConfig {
	return c.config
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// CheckRunning verifies that the server is reachable and answering.
func (c *Client) CheckRunning(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	resp, err := c.do(ctx, http.MethodGet, c.config.ProbePath, nil)
	if err != nil {
		return err
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp, "probe failed", nil)
	}
	return nil
}

// ProbeConnection reports whether the server is reachable. It never fails;
// every error reads as false.
func (c *Client) ProbeConnection(ctx context.Context) bool {
	return c.CheckRunning(ctx) == nil
}

// =============================================================================
// MODEL OPERATIONS
// =============================================================================

// ListModels retrieves all available models in server order.
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	resp, err := c.do(ctx, http.MethodGet, c.config.ModelsPath, nil)
	if err != nil {
		return nil, err
	}
	defer drainAndClose(resp.Body)

	body, err := readBody(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp, "failed to list models", body)
	}

	var result ListModelsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &ClientError{Type: ErrTypeProtocol, Message: "failed to decode model list", Cause: err}
	}
	if result.Models == nil {
		return nil, &ClientError{Type: ErrTypeProtocol, Message: "model list missing \"models\""}
	}

	return *result.Models, nil
}

// =============================================================================
// GENERATION
// =============================================================================

// Generate sends a single non-streaming generation request and returns the
// complete text. Cancelling ctx abandons the request.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	req.Stream = false

	body, err := json.Marshal(req)
	if err != nil {
		return "", &ClientError{Type: ErrTypeProtocol, Message: "failed to marshal request", Cause: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.GenerateTimeout)
	defer cancel()

	resp, err := c.do(ctx, http.MethodPost, c.config.GeneratePath, body)
	if err != nil {
		return "", err
	}
	defer drainAndClose(resp.Body)

	data, err := readBody(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode == http.StatusNotFound {
		e := statusError(resp, "generate request failed", data)
		e.Type = ErrTypeModelNotFound
		return "", e
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", statusError(resp, "generate request failed", data)
	}

	var result GenerateResponse
	if err := json.Unmarshal(data, &result); err != nil {
		return "", &ClientError{Type: ErrTypeProtocol, Message: "failed to decode response", Cause: err}
	}

	text, ok := result.Content()
	if !ok {
		if result.Error != "" {
			if mentionsMissingModel(result.Error) {
				return "", &ClientError{Type: ErrTypeModelNotFound, Message: result.Error}
			}
			return "", &ClientError{Type: ErrTypeProtocol, Message: result.Error}
		}
		return "", &ClientError{Type: ErrTypeProtocol, Message: "response carried no text"}
	}
	return text, nil
}

// =============================================================================
// TRANSPORT HELPERS
// =============================================================================

// do waits on the rate limiter and sends one request. Transport failures
// come back as classified ClientErrors.
func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, classifyTransport("request not sent", ctxErr)
		}
		// The wait would outlast the deadline.
		return nil, &ClientError{Type: ErrTypeTimeout, Message: "request not sent", Cause: err}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reader)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport(fmt.Sprintf("%s %s", method, path), err)
	}
	return resp, nil
}

// readBody reads at most maxResponseBytes of a reply.
func readBody(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxResponseBytes+1))
	if err != nil {
		return nil, classifyTransport("failed to read response", err)
	}
	if len(data) > maxResponseBytes {
		return nil, &ClientError{Type: ErrTypeProtocol, Message: "response too large"}
	}
	return data, nil
}

// statusError maps a non-2xx reply onto an ErrorType.
func statusError(resp *http.Response, msg string, body []byte) *ClientError {
	detail := resp.Status
	var apiErr apiError
	if len(body) > 0 && json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
		detail = util.TruncateRunes(apiErr.Error, maxErrorDetail)
	}
	msg = msg + ": " + detail

	switch {
	case mentionsMissingModel(apiErr.Error):
		return &ClientError{Type: ErrTypeModelNotFound, Message: msg}
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return &ClientError{Type: ErrTypeUnauthorized, Message: msg}
	case resp.StatusCode >= 500:
		return &ClientError{Type: ErrTypeConnection, Message: msg}
	default:
		return &ClientError{Type: ErrTypeProtocol, Message: msg}
	}
}

// Helper to drain response body
func drainAndClose(r io.ReadCloser) {
	io.Copy(io.Discard, io.LimitReader(r, maxResponseBytes))
	r.Close()
}
