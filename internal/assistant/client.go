// Package assistant talks to the natural-language-to-SQL service.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	askPath = "/preguntar"
	sqlPath = "/preguntar-sql"

	// maxBodyBytes bounds how much of a reply is read into memory
	maxBodyBytes = 32 << 20
)

// Client calls the question and SQL endpoints of one service
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sends token as a bearer Authorization header
func WithToken(token string) Option {
	return func(c *Client) { c.token = strings.TrimSpace(token) }
}

// NewClient returns a client for the service at baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service location
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ask sends a natural-language question
func (c *Client) Ask(ctx context.Context, question string) (*Response, error) {
	return c.post(ctx, askPath, AskRequest{Question: question})
}

// RunSQL executes sql without natural-language translation. The statement is
// attached to the response unless the service echoes its own.
func (c *Client) RunSQL(ctx context.Context, sql string) (*Response, error) {
	resp, err := c.post(ctx, sqlPath, SQLRequest{SQL: sql})
	if err != nil {
		return nil, err
	}
	if resp.SQL == "" {
		resp.SQL = sql
	}
	return resp, nil
}

func (c *Client) post(ctx context.Context, path string, body any) (*Response, error) {
	endpoint := c.baseURL + path
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("assistant: %s %s failed after %s: %v", requestID, path, time.Since(start), err)
		return nil, &TransportError{Endpoint: path, Underlying: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &TransportError{Endpoint: path, Underlying: fmt.Errorf("read body: %w", err)}
	}
	log.Printf("assistant: %s %s -> %d (%d bytes, %s)", requestID, path, resp.StatusCode, len(raw), time.Since(start))

	var parsed Response
	decodeErr := json.Unmarshal(raw, &parsed)

	if resp.StatusCode >= 300 {
		if decodeErr == nil && parsed.Failed() {
			return &parsed, nil
		}
		return nil, &StatusError{Endpoint: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if decodeErr != nil {
		return nil, &DecodeError{Endpoint: path, Underlying: decodeErr}
	}
	return &parsed, nil
}
