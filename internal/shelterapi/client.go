package shelterapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"shelterhub/internal/credstore"
)

const (
	headerOrganization = "X-Organization-ID"
	headerRequestID    = "X-Request-ID"
)

// Client is an authenticated client for the shelter REST API. It attaches
// the stored bearer token and the selected organization to every request and
// transparently recovers from access-token expiry: the first request to see
// a 401 performs the refresh call, every other request that sees a 401 in
// the meantime queues up behind it, and all of them are replayed exactly
// once with the new token.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      credstore.Store
	logger     *slog.Logger

	orgMu sync.RWMutex
	orgID string

	// refreshMu guards the single-flight refresh state. waiters holds one
	// buffered channel per request queued behind the in-flight refresh,
	// in enqueue order; it is non-empty only while refreshing is true and
	// is always drained completely before the flag is cleared.
	refreshMu  sync.Mutex
	refreshing bool
	waiters    []chan error
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (used by tests and for
// custom transports).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithOrganization pre-selects the organization scope.
func WithOrganization(orgID string) Option {
	return func(c *Client) {
		c.orgID = orgID
	}
}

// New creates an API client. Tokens are read from and written to creds; the
// client is the only writer of the token keys.
func New(baseURL string, creds credstore.Store, logger *slog.Logger, opts ...Option) *Client {
	client := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		creds:  creds,
		logger: logger.With("component", "shelterapi"),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// SetOrganization selects the organization attached to subsequent requests.
// An empty id removes the header.
func (c *Client) SetOrganization(orgID string) {
	c.orgMu.Lock()
	c.orgID = orgID
	c.orgMu.Unlock()
}

// Organization returns the currently selected organization id.
func (c *Client) Organization() string {
	c.orgMu.RLock()
	defer c.orgMu.RUnlock()
	return c.orgID
}

// Get performs an authenticated GET request.
func (c *Client) Get(ctx context.Context, path string, result interface{}) error {
	return c.request(ctx, http.MethodGet, path, nil, result)
}

// Post performs an authenticated POST request.
func (c *Client) Post(ctx context.Context, path string, body, result interface{}) error {
	return c.request(ctx, http.MethodPost, path, body, result)
}

// Put performs an authenticated PUT request.
func (c *Client) Put(ctx context.Context, path string, body, result interface{}) error {
	return c.request(ctx, http.MethodPut, path, body, result)
}

// Patch performs an authenticated PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body, result interface{}) error {
	return c.request(ctx, http.MethodPatch, path, body, result)
}

// Delete performs an authenticated DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.request(ctx, http.MethodDelete, path, nil, nil)
}

// request performs an authenticated request with the refresh-and-replay
// protocol. A request is retried at most once, and only after a successful
// refresh.
func (c *Client) request(ctx context.Context, method, path string, body, result interface{}) error {
	return c.do(ctx, method, path, body, result, false)
}

func (c *Client) do(ctx context.Context, method, path string, body, result interface{}, retried bool) error {
	status, respBody, err := c.send(ctx, method, path, body, true)
	if err != nil {
		// Transport-level failure: surfaced as-is, never triggers refresh.
		return err
	}

	if status == http.StatusUnauthorized && !retried {
		if err := c.awaitRefresh(ctx); err != nil {
			return err
		}
		return c.do(ctx, method, path, body, result, true)
	}

	return decodeResponse(status, respBody, result)
}

// send issues one HTTP attempt and returns the raw status and body. Only
// errors where no response was received are returned as err.
func (c *Client) send(ctx context.Context, method, path string, body interface{}, authenticated bool) (int, []byte, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if authenticated {
		if token, err := c.creds.Get(ctx, credstore.KeyAccessToken); err == nil && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		} else if err != nil && !errors.Is(err, credstore.ErrNotFound) {
			return 0, nil, fmt.Errorf("failed to read access token: %w", err)
		}

		if orgID := c.Organization(); orgID != "" {
			req.Header.Set(headerOrganization, orgID)
		}
	}

	c.logger.Debug("API request",
		"method", method,
		"path", path,
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return resp.StatusCode, respBody, nil
}

// decodeResponse maps an HTTP status and body to a typed result or error.
func decodeResponse(status int, body []byte, result interface{}) error {
	if status < 200 || status >= 300 {
		apiErr := &APIError{StatusCode: status}

		var payload struct {
			Error   string `json:"error"`
			Message string `json:"message"`
			Code    string `json:"code"`
		}
		if err := json.Unmarshal(body, &payload); err == nil {
			apiErr.Code = payload.Code
			if payload.Error != "" {
				apiErr.Message = payload.Error
			} else {
				apiErr.Message = payload.Message
			}
		}
		if apiErr.Message == "" {
			apiErr.Message = string(body)
		}

		if status == http.StatusUnauthorized {
			return fmt.Errorf("%w: %w", ErrUnauthenticated, apiErr)
		}
		return apiErr
	}

	if result != nil && status != http.StatusNoContent && len(body) > 0 {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}
