// Package restapi implements the gateway ports against the platform's
// versioned REST API. It is the only package that talks HTTP; everything
// above it works with domain values and sentinel errors.
package restapi

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

	"go.uber.org/zap"
)

// tenantHeader carries the resolved effective tenant on scoped calls.
const tenantHeader = "X-Tenant-ID"

// Client is a thin HTTP client for the platform API: bearer auth, tenant
// scoping header, and envelope-tolerant JSON decoding.
type Client struct {
	base  *url.URL
	http  *http.Client
	token string
	log   *zap.Logger
}

// New builds a client for the given base URL (including the versioned
// prefix, e.g. https://api.example.com/api/v1).
func New(baseURL, token string, timeout time.Duration, log *zap.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q is not absolute", baseURL)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		base:  base,
		http:  &http.Client{Timeout: timeout},
		token: token,
		log:   log,
	}, nil
}

// do issues a request and decodes a 2xx JSON response into out (when out
// is non-nil). Non-2xx responses come back as *RemoteError. The tenant
// header is only set when the scope carries a tenant; unscoped reads are a
// global-admin privilege the server enforces.
func (c *Client) do(ctx context.Context, method, path, tenantID string, query url.Values, body, out any) error {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if tenantID != "" {
		req.Header.Set(tenantHeader, tenantID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		remote := parseRemoteError(resp.StatusCode, raw)
		c.log.Debug("api error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", remote.Message),
		)
		return remote
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// decodeCollection accepts both response shapes the API produces: a bare
// JSON array, or an envelope with a "data" array.
func decodeCollection[T any](raw json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode collection: %w", err)
		}
		return items, nil
	}
	var envelope struct {
		Data []T `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("decode collection envelope: %w", err)
	}
	return envelope.Data, nil
}

// listCollection is the shared GET-and-decode path for all list endpoints.
func listCollection[T any](ctx context.Context, c *Client, path, tenantID string, query url.Values) ([]T, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, tenantID, query, nil, &raw); err != nil {
		return nil, err
	}
	return decodeCollection[T](raw)
}

// flexID tolerates the API's mixed identifier encoding: some endpoints
// emit numeric IDs, others strings.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*f = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("id is neither string nor number: %s", trimmed)
	}
	*f = flexID(n.String())
	return nil
}

func (f flexID) String() string { return string(f) }

func (f *flexID) ptr() *string {
	if f == nil || *f == "" {
		return nil
	}
	s := string(*f)
	return &s
}
