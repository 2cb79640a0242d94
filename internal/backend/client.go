// Package backend is the HTTP client for the remote Swift Food API: the
// pricing endpoint, promotion validation, the user directory, order
// creation, and catalogue search. All authoritative state lives behind
// this API; the client only shapes requests and validates responses.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"
)

// maxBodyBytes caps how much of a response body is read. Backend responses
// are small JSON documents; anything bigger is a misbehaving upstream.
const maxBodyBytes = 1 << 20

// DefaultZoneMarkers are the substrings that mark a server error message as
// a delivery-zone rejection. The backend has no structured error code for
// this case; it mentions the serviced region by name.
var DefaultZoneMarkers = []string{"London"}

// Config configures a backend Client.
type Config struct {
	// BaseURL is the API root, without a trailing slash.
	BaseURL string
	// Token is attached as a bearer token on every request.
	Token string
	// ZoneMarkers overrides DefaultZoneMarkers when non-nil.
	ZoneMarkers []string
	// HTTPClient supplies the underlying transport (instrumentation,
	// proxies). When nil a client with a 30s timeout is used.
	HTTPClient *http.Client
}

// Client calls the remote Swift Food API.
type Client struct {
	baseURL     string
	http        *http.Client
	zoneMarkers []string
}

// NewClient builds a Client from cfg. The bearer token transport is always
// installed on top of the supplied HTTP client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("backend base URL is required")
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	// Copy so the caller's client is not mutated.
	wrapped := *hc
	wrapped.Transport = &bearerTransport{token: cfg.Token, base: hc.Transport}

	markers := cfg.ZoneMarkers
	if markers == nil {
		markers = DefaultZoneMarkers
	}

	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		http:        &wrapped,
		zoneMarkers: markers,
	}, nil
}

// bearerTransport adds the Authorization header to every outgoing request.
type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	if t.token == "" {
		return base.RoundTrip(req)
	}
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+t.token)
	return base.RoundTrip(clone)
}

// do executes one JSON request/response round trip. Non-2xx responses are
// converted into classified errors; the decoded body lands in out when out
// is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request body")
		}
		rd = bytes.NewReader(buf)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return errors.Wrap(err, "read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.classify(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return errors.Wrapf(err, "decode %s %s response", method, path)
		}
	}
	return nil
}

// Ping reports whether the backend is reachable. Any response below 500
// counts: the gateway only needs to know the API answers.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search", nil)
	if err != nil {
		return errors.Wrap(err, "build ping request")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "ping backend")
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))

	if resp.StatusCode >= 500 {
		return errors.Errorf("backend unhealthy: status %d", resp.StatusCode)
	}
	return nil
}
