// Package api is the client for the Hobby Part Tracker REST backend.
//
// A Client fetches the base collections (items, containers, locations,
// item-location links, projects) and performs the item placement write. All
// failures are returned as *FetchError so callers can tell an unreachable
// server from an error response. The package never decides what to show the
// user; that is left to the caller.
//
// Credentials are passed explicitly through AuthContext:
//
//	c := api.New(api.Options{
//		BaseURL: "http://localhost:5000",
//		Auth:    api.AuthContext{Token: token},
//	})
//	snap, err := c.Snapshot(ctx, api.SnapshotOptions{})
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a single request when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of an error response is kept in FetchError.
const maxErrorBody = 512

// AuthContext carries the credentials attached to every request.
type AuthContext struct {
	// Token is sent as "Authorization: Bearer <token>" when non-empty.
	Token string
}

// Options configures a Client.
type Options struct {
	// BaseURL is the API root, e.g. "http://localhost:5000" or "https://host/hpt/api".
	BaseURL string
	Auth    AuthContext

	// HTTPClient overrides the transport; tests use this. Timeout is ignored
	// when HTTPClient is set.
	HTTPClient *http.Client
	Timeout    time.Duration

	// Logger receives request traces at debug level and failures at warn level.
	// Nil discards output.
	Logger *zerolog.Logger

	UserAgent string
}

// Client talks to one backend. It is safe for concurrent use.
type Client struct {
	baseURL    string
	auth       AuthContext
	httpClient *http.Client
	log        zerolog.Logger
	userAgent  string
}

// New creates a Client.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = "hpt"
	}

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		auth:       opts.Auth,
		httpClient: httpClient,
		log:        logger,
		userAgent:  userAgent,
	}
}

// BaseURL returns the API root the client was configured with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends a request and returns the response when the status is 2xx.
// The caller must close the body.
func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	op := method + " " + path

	var bodyReader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%s: marshal request body: %w", op, err)
		}
		bodyReader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.auth.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.auth.Token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		fe := transportError(ctx, op, err)
		c.log.Warn().
			Str("request_id", requestID).
			Str("op", op).
			Str("kind", string(fe.Kind)).
			Err(err).
			Msg("request failed")
		return nil, fe
	}

	c.log.Debug().
		Str("request_id", requestID).
		Str("op", op).
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		fe := &FetchError{
			Kind:       KindStatus,
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
		c.log.Warn().
			Str("request_id", requestID).
			Str("op", op).
			Int("status", resp.StatusCode).
			Msg("unexpected status")
		return nil, fe
	}

	return resp, nil
}

// getJSON fetches path and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		op := http.MethodGet + " " + path
		if ctx.Err() != nil {
			return &FetchError{Kind: KindCanceled, Op: op, Err: ctx.Err()}
		}
		return &FetchError{Kind: KindDecode, Op: op, Err: err}
	}
	return nil
}
