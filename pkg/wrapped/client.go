package wrapped

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GenericErrorMessage is shown when the backend gives no usable detail.
const GenericErrorMessage = "Could not retrieve your wrapped data. Make sure the username is correct and the server is running."

// maxBody caps the response size read from the backend.
const maxBody = 4 << 20

// Fetcher produces the payload for a user.
type Fetcher interface {
	Fetch(ctx context.Context, username string) (*Payload, error)
}

// APIError is a non-2xx response. Detail is the backend's "detail" field,
// possibly empty.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("wrapped: backend returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("wrapped: backend returned %d", e.Status)
}

// Message returns the text to show for a fetch error: the backend detail when
// there is one, otherwise the generic message.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return GenericErrorMessage
}

// Client fetches payloads from GET {base}/leetcode/wrapped/{username}.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient returns a client for baseURL. timeout bounds each request.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Fetch issues the request and decodes the payload.
func (c *Client) Fetch(ctx context.Context, username string) (*Payload, error) {
	endpoint := c.baseURL + "/leetcode/wrapped/" + url.PathEscape(username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("wrapped: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wrapped: request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("wrapped: read body: %w", err)
	}
	c.logger.Debug("wrapped: fetched", "user", username, "status", resp.StatusCode,
		"bytes", len(body), "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Detail any `json:"detail"`
		}
		apiErr := &APIError{Status: resp.StatusCode}
		if json.Unmarshal(body, &e) == nil {
			// FastAPI validation errors carry a list; only plain strings
			// are user-facing.
			if s, ok := e.Detail.(string); ok {
				apiErr.Detail = s
			}
		}
		return nil, apiErr
	}

	var p Payload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("wrapped: decode payload: %w", err)
	}
	if err := p.Check(); err != nil {
		return nil, err
	}
	return &p, nil
}
