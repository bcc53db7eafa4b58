// Package api talks to the HashUtility backend: POST /hash for generating or
// matching digests and POST /subscribe for the newsletter.
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

	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "http://127.0.0.1:5000"
	DefaultTimeout = 10 * time.Second
	DefaultAlgo    = "md5"
)

// Algorithms are the digests the backend accepts, in the order it tries them
// when matching.
var Algorithms = []string{"md5", "sha1", "sha224", "sha256", "sha384", "sha512", "blake2b", "blake2s"}

type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

type hashRequest struct {
	Text      string `json:"text"`
	Algorithm string `json:"algorithm,omitempty"`
	Match     string `json:"match,omitempty"`
}

// HashResult is the generate-mode reply. Exactly one of Hash or Error is
// normally set.
type HashResult struct {
	Hash      string `json:"hash"`
	Algorithm string `json:"algorithm"`
	Error     string `json:"error"`
}

// MatchResult is the match-mode reply.
type MatchResult struct {
	Match     bool   `json:"match"`
	Algorithm string `json:"algorithm"`
	Message   string `json:"message"`
	Error     string `json:"error"`
}

type subscribeRequest struct {
	Email string `json:"email"`
}

type SubscribeResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Hash asks the server for the digest of text. An empty algorithm lets the
// server pick its default.
func (c *Client) Hash(ctx context.Context, text, algorithm string) (*HashResult, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	var res HashResult
	if err := c.post(ctx, "/hash", hashRequest{Text: text, Algorithm: algorithm}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Match asks the server which algorithm, if any, turns text into digest.
func (c *Client) Match(ctx context.Context, text, digest string) (*MatchResult, error) {
	if text == "" || digest == "" {
		return nil, ErrEmptyText
	}
	var res MatchResult
	if err := c.post(ctx, "/hash", hashRequest{Text: text, Match: digest}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Subscribe validates email locally, then registers it.
func (c *Client) Subscribe(ctx context.Context, email string) (*SubscribeResult, error) {
	email = strings.TrimSpace(email)
	if !ValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	var res SubscribeResult
	if err := c.post(ctx, "/subscribe", subscribeRequest{Email: email}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// post sends body as JSON and decodes the reply into out. The backend
// reports failures as {"error": ...} with a 4xx/5xx status, so the body is
// decoded whatever the status. A non-2xx reply that is not JSON leaves out
// zeroed, which callers render as the generic failure.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("path", path), zap.Error(err))
		return &TransportError{Endpoint: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Endpoint: path, Err: err}
	}

	c.log.Debug("response", zap.String("path", path), zap.Int("status", resp.StatusCode))

	if err := json.Unmarshal(data, out); err != nil {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return &TransportError{Endpoint: path, Err: fmt.Errorf("decode response: %w", err)}
		}
		c.log.Warn("unexpected response", zap.String("path", path), zap.Int("status", resp.StatusCode))
	}
	return nil
}
