// Package client is the booking API gateway used by the admin dashboard.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is the booking API client. Construct it once with New and derive
// per-caller copies with WithCredentials.
type Client struct {
	baseURL      string
	token        string
	httpClient   *http.Client
	interceptors []ResponseInterceptor

	Stats    *StatsService
	Vehicles *VehiclesService
	Tours    *ToursService
	Bookings *BookingsService
	Users    *UsersService
	Cities   *CitiesService
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// WithResponseInterceptor registers fn to run after every request.
func WithResponseInterceptor(fn ResponseInterceptor) Option {
	return func(c *Client) {
		c.interceptors = append(c.interceptors, fn)
	}
}

// New creates a new API client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.bind()
	return c
}

// WithCredentials returns a copy of c that sends token as a bearer credential.
// An empty token sends no Authorization header.
func (c *Client) WithCredentials(token string) *Client {
	cp := &Client{
		baseURL:      c.baseURL,
		token:        token,
		httpClient:   c.httpClient,
		interceptors: c.interceptors,
	}
	cp.bind()
	return cp
}

// HasCredentials reports whether requests carry a bearer token.
func (c *Client) HasCredentials() bool {
	return c.token != ""
}

func (c *Client) bind() {
	c.Stats = &StatsService{c: c}
	c.Vehicles = &VehiclesService{c: c}
	c.Tours = &ToursService{c: c}
	c.Bookings = &BookingsService{c: c}
	c.Users = &UsersService{c: c}
	c.Cities = &CitiesService{c: c}
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.doRequest(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body any, out any) error {
	return c.doRequest(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.doRequest(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.intercept(ctx, Response{Method: method, Path: path, Elapsed: time.Since(start), Err: err})
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	callErr := c.handleResponse(resp, out)
	c.intercept(ctx, Response{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Elapsed:    time.Since(start),
		Err:        callErr,
	})
	return callErr
}

func (c *Client) handleResponse(resp *http.Response, out any) error {
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		if resp.StatusCode >= 400 {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", err)}
		}
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return &HTTPError{StatusCode: resp.StatusCode, Message: errorMessage(respBody, resp.Status)}
	}

	return decodeBody(resp.StatusCode, respBody, out)
}

// envelope is the {success, data, message} wrapper some endpoints use.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func decodeBody(status int, body []byte, out any) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}

	if trimmed[0] == '{' {
		var env envelope
		if json.Unmarshal(trimmed, &env) == nil && env.Success != nil {
			if !*env.Success {
				msg := env.Message
				if msg == "" {
					msg = "request failed"
				}
				return &HTTPError{StatusCode: status, Message: msg}
			}
			if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
				return nil
			}
			trimmed = env.Data
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage pulls a human readable message from an error body: the JSON
// "message" field, then "error", then the raw text.
func errorMessage(body []byte, fallback string) string {
	var fields map[string]any
	if json.Unmarshal(body, &fields) == nil {
		for _, key := range []string{"message", "error"} {
			if s, ok := fields[key].(string); ok && s != "" {
				return s
			}
		}
	}
	if s := strings.TrimSpace(string(body)); s != "" {
		return s
	}
	return fallback
}
