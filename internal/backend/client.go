package backend

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

	"github.com/linkbio/linkbio/internal/config"
	"github.com/linkbio/linkbio/internal/version"
)

// TokenSource provides the session token attached to outgoing requests.
// An empty token means the request is sent without credentials.
type TokenSource interface {
	Token() string
}

// TokenSourceFunc adapts a function to the TokenSource interface.
type TokenSourceFunc func() string

// Token returns f().
func (f TokenSourceFunc) Token() string { return f() }

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Body)
}

// Client is a client for the link-in-bio backend API.
// It is safe for concurrent use; use WithTokenSource to bind it to a session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// New creates a new backend client.
func New(cfg *config.APIConfig) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// WithTokenSource returns a copy of the client that reads its bearer token from ts.
func (c *Client) WithTokenSource(ts TokenSource) *Client {
	cp := *c
	cp.tokens = ts
	return &cp
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs a GET request and decodes the response into out.
func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.doJSON(ctx, http.MethodGet, endpoint, nil, out)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	return c.doJSON(ctx, http.MethodPost, endpoint, body, out)
}

// PostForm performs a POST request with a form-encoded body.
func (c *Client) PostForm(ctx context.Context, endpoint string, form url.Values, out any) error {
	resp, err := c.doRequest(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	return decode(resp, out)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, endpoint string, body, out any) error {
	return c.doJSON(ctx, http.MethodPut, endpoint, body, out)
}

// Patch performs a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, endpoint string, body, out any) error {
	return c.doJSON(ctx, http.MethodPatch, endpoint, body, out)
}

// Delete performs a DELETE request. The response body is decoded into out if out is not nil.
func (c *Client) Delete(ctx context.Context, endpoint string, out any) error {
	return c.doJSON(ctx, http.MethodDelete, endpoint, nil, out)
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, body, out any) error {
	var reqBody io.Reader
	contentType := ""
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error marshaling request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
		contentType = "application/json"
	}

	resp, err := c.doRequest(ctx, method, endpoint, reqBody, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	return decode(resp, out)
}

// doRequest performs an HTTP request against the backend and attaches the session token.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "linkbio/"+version.Version)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error performing request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close() //nolint:errcheck
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}

	return resp, nil
}

func decode(resp *http.Response, out any) error {
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}
