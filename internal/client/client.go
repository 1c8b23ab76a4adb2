// Package client is the Go consumer of the brokerage API: the session, the
// quote submission used by the wizard, the staff proposal board, the customer
// portfolio and the policy document download with its print fallback.
//
// Every exported operation that talks to the API either returns a normalized
// Result or an error that Normalize turns into one. Nothing here panics.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"

	"corretora_seguros/internal/config"
	"corretora_seguros/pkg"
)

// Client calls the /v1 API with the bearer token of the current session.
type Client struct {
	baseURL         string
	http            *http.Client
	policiesEnabled bool

	mu    sync.RWMutex
	token string
}

// New builds a client from cfg. A nil httpClient gets one with cfg.Timeout.
func New(cfg config.ClientConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	base := strings.TrimRight(cfg.APIBaseURL, "/")
	if base == "" {
		base = config.DefaultAPIBaseURL
	}
	return &Client{baseURL: base, http: httpClient, policiesEnabled: cfg.PoliciesAPIEnabled}
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// PoliciesEnabled reports whether the generic /policies API may be called.
func (c *Client) PoliciesEnabled() bool {
	return c.policiesEnabled
}

// do sends in as JSON and decodes a 2xx body into out. Non-2xx answers become
// an *APIError built from the pkg.HTTPError body; transport failures a *NetworkError.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	res, err := c.send(ctx, method, path, in)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return readAPIError(res)
	}
	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, in any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		log.Printf("[client][http] %s %s failed err=%v", method, path, err)
		return nil, &NetworkError{Err: err}
	}
	return res, nil
}

func readAPIError(res *http.Response) error {
	apiErr := &APIError{Status: res.StatusCode}
	var body pkg.HTTPError
	if err := json.NewDecoder(res.Body).Decode(&body); err == nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Message
		apiErr.Fields = body.Fields
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(res.StatusCode)
	}
	return apiErr
}
