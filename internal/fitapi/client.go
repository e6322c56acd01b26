// Package fitapi is a typed client for the remote fitness-tracking REST API.
// It exposes one call per logical upstream query; each call either returns a
// typed payload or a classified error. Failure handling policy (blocking vs
// degraded) lives with the caller, not here.
package fitapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fitsight/fitsight/internal/upstream/resilience"
)

// DefaultBasePath is the upstream API base path.
const DefaultBasePath = "/api/v1"

// Logical upstream resources. Each gets its own circuit breaker.
const (
	ResourceAuth       = "auth"
	ResourceWorkouts   = "workouts"
	ResourceNutrition  = "nutrition"
	ResourceAnalytics  = "analytics"
	ResourceML         = "ml"
	ResourcePrediction = "prediction"
)

// TokenSource supplies the bearer token for authenticated calls. It is read
// fresh on every request: logout can happen mid-session and a cached token
// must not outlive it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// RequestRecorder receives per-request telemetry for upstream calls.
type RequestRecorder interface {
	RecordRequest(resource, operation string, duration time.Duration, err error)
}

// ClientConfig holds configuration for the fitness API client.
type ClientConfig struct {
	// BaseURL is the upstream origin, e.g. "https://api.example.com".
	// The /api/v1 base path is appended automatically.
	BaseURL string

	// TokenSource supplies bearer tokens for authenticated calls (required
	// for everything except Register and Login).
	TokenSource TokenSource

	// HTTPClients maps logical resources to resilient clients. Missing
	// entries get a default client.
	HTTPClients map[string]*resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger

	// Recorder receives per-request telemetry. Optional.
	Recorder RequestRecorder
}

// Client issues authenticated HTTP calls to the upstream fitness API.
type Client struct {
	baseURL     string
	tokenSource TokenSource
	clients     map[string]*resilience.Client
	logger      zerolog.Logger
	recorder    RequestRecorder
}

// NewClient creates a new fitness API client.
func NewClient(cfg ClientConfig) *Client {
	clients := make(map[string]*resilience.Client, 6)
	for _, resource := range []string{
		ResourceAuth, ResourceWorkouts, ResourceNutrition,
		ResourceAnalytics, ResourceML, ResourcePrediction,
	} {
		if c, ok := cfg.HTTPClients[resource]; ok && c != nil {
			clients[resource] = c
			continue
		}
		clients[resource] = resilience.NewClient(resilience.DefaultClientConfig(resource))
	}

	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/") + DefaultBasePath,
		tokenSource: cfg.TokenSource,
		clients:     clients,
		logger:      cfg.Logger,
		recorder:    cfg.Recorder,
	}
}

// Breakers returns the resilient client per logical resource, for circuit
// status reporting.
func (c *Client) Breakers() map[string]*resilience.Client {
	return c.clients
}

// get issues an authenticated GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, resource, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	return c.send(ctx, resource, req, true, out)
}

// postJSON issues a JSON POST. Authenticated unless authed is false.
func (c *Client) postJSON(ctx context.Context, resource, path string, authed bool, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.send(ctx, resource, req, authed, out)
}

// putJSON issues an authenticated JSON PUT.
func (c *Client) putJSON(ctx context.Context, resource, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.send(ctx, resource, req, true, out)
}

// delete issues an authenticated DELETE.
func (c *Client) delete(ctx context.Context, resource, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	return c.send(ctx, resource, req, true, nil)
}

// send executes the request through the resource's circuit breaker, maps the
// response status to the error taxonomy, and decodes the body into out.
func (c *Client) send(ctx context.Context, resource string, req *http.Request, authed bool, out any) error {
	if authed {
		if c.tokenSource == nil {
			return ErrNoSession
		}
		token, err := c.tokenSource.Token(ctx)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.clients[resource].Do(req)
	if c.recorder != nil {
		c.recorder.RecordRequest(resource, req.Method+" "+req.URL.Path, time.Since(start), err)
	}
	if err != nil {
		c.logger.Debug().
			Err(err).
			Str("resource", resource).
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Msg("upstream request failed")
		return &TransportError{Resource: resource, Err: err}
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp); err != nil {
		c.logger.Debug().
			Err(err).
			Str("resource", resource).
			Int("status", resp.StatusCode).
			Str("path", req.URL.Path).
			Msg("upstream rejected request")
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", resource, err)
	}

	return nil
}

// upstreamErrorBody is the FastAPI-style error envelope.
type upstreamErrorBody struct {
	Detail string `json:"detail"`
}

// classifyStatus maps a non-2xx response to the error taxonomy.
func classifyStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	detail := ""
	if body, err := io.ReadAll(io.LimitReader(resp.Body, 4096)); err == nil {
		var envelope upstreamErrorBody
		if json.Unmarshal(body, &envelope) == nil {
			detail = envelope.Detail
		}
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &AuthError{Detail: detail}
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return &APIError{StatusCode: resp.StatusCode, Detail: detail}
	}
}
