package notes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultBaseURL = "http://localhost:3001"
	DefaultTimeout = 30 * time.Second

	notesPath = "/api/notes"
	loginPath = "/api/login"
)

type AuthMethod interface {
	Apply(*http.Request)
}

// NoAuth leaves the request anonymous.
type NoAuth struct{}

func (NoAuth) Apply(*http.Request) {}

// BearerAuth attaches the session token the way the notes backend expects it.
type BearerAuth struct {
	Token string
}

func (a BearerAuth) Apply(req *http.Request) {
	if a.Token == "" {
		return
	}
	req.Header.Set("Authorization", "bearer "+a.Token)
}

// Client talks to the notes API. It holds no credential of its own: every
// mutating call takes the AuthMethod to use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     slog.Default(),
	}
}

func (c *Client) WithHTTPClient(client *http.Client) *Client {
	c.httpClient = client
	return c
}

func (c *Client) WithLogger(logger *slog.Logger) *Client {
	if logger != nil {
		c.logger = logger
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) makeRequest(ctx context.Context, method, path string, auth AuthMethod, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if auth == nil {
		auth = NoAuth{}
	}
	auth.Apply(req)

	c.logger.Debug("api request", "method", method, "path", path, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrNetwork, method, path, err)
	}

	c.logger.Debug("api response", "method", method, "path", path, "status", resp.StatusCode, "request_id", requestID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, newStatusError(method, path, resp)
	}

	return resp, nil
}

func decode[T any](resp *http.Response, what string) (T, error) {
	defer resp.Body.Close()

	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("%w: failed to decode %s response: %w", ErrDecode, what, err)
	}
	return out, nil
}
