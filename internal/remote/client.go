// Package remote is the HTTP client for the chat backend. It carries an
// opaque identifier (the canonical phone for registered users, a guest token
// otherwise) and normalizes the service's reply shapes into model types.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Osisami00/Nelfund-Project/internal/model"
)

// Client talks to the chat backend. Construct with New.
type Client struct {
	baseURL string
	http    *http.Client
}

// New constructs a Client for the given base URL. Additional options can be
// provided via functional arguments.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL cannot be empty")
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Send posts a user message for the given identifier and returns the
// normalized reply. Transport failures surface as *ConnectivityError,
// non-2xx statuses as *ServiceError.
func (c *Client) Send(ctx context.Context, identifier, message string) (*model.Reply, error) {
	body, err := json.Marshal(chatRequest{PhoneNumber: identifier, Message: message})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		sendTotal.WithLabelValues(outcomeUnreachable).Inc()
		return nil, &ConnectivityError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		sendTotal.WithLabelValues(outcomeServiceError).Inc()
		return nil, &ServiceError{Status: resp.StatusCode, Body: readBodyPrefix(resp.Body)}
	}
	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		sendTotal.WithLabelValues(outcomeServiceError).Inc()
		return nil, &ServiceError{Status: resp.StatusCode, Body: fmt.Sprintf("malformed reply: %v", err)}
	}
	sendTotal.WithLabelValues(outcomeOK).Inc()
	return normalizeReply(&cr), nil
}

// FetchHistory retrieves the remote transcript for an identifier. A 404 means
// the backend has no session yet and yields an empty transcript, not an error.
func (c *Client) FetchHistory(ctx context.Context, identifier string) ([]model.Message, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/sessions/"+url.PathEscape(identifier), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ConnectivityError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return []model.Message{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ServiceError{Status: resp.StatusCode, Body: readBodyPrefix(resp.Body)}
	}
	var sr sessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, &ServiceError{Status: resp.StatusCode, Body: fmt.Sprintf("malformed reply: %v", err)}
	}
	return normalizeHistory(&sr), nil
}

// ResetSession asks the backend to clear the session for an identifier.
// Callers clearing local state should proceed even when this fails.
func (c *Client) ResetSession(ctx context.Context, identifier string) (*ResetAck, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/reset/"+url.PathEscape(identifier), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ConnectivityError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &ServiceError{Status: resp.StatusCode, Body: readBodyPrefix(resp.Body)}
	}
	var ack ResetAck
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return nil, &ServiceError{Status: resp.StatusCode, Body: fmt.Sprintf("malformed reply: %v", err)}
	}
	return &ack, nil
}

// Status returns the backend's status report.
func (c *Client) Status(ctx context.Context) (*SystemStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ConnectivityError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &ServiceError{Status: resp.StatusCode, Body: readBodyPrefix(resp.Body)}
	}
	var st SystemStatus
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return nil, &ServiceError{Status: resp.StatusCode, Body: fmt.Sprintf("malformed reply: %v", err)}
	}
	return &st, nil
}

// Health reports whether the backend answers its root endpoint at all. Used
// by the reconnect probe while degraded.
func (c *Client) Health(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()
	return resp.StatusCode >= 200 && resp.StatusCode <= 299
}

// readBodyPrefix captures up to 4 KiB of an error body for diagnostics.
func readBodyPrefix(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 4096))
	return string(b)
}
