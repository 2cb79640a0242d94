// Package geocode resolves free-text addresses to coordinates via the
// Google Geocoding API. Coordinates are attached to pricing requests so the
// backend can check the address against its delivery zones.
package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-faster/errors"

	"github.com/swiftfood/checkout-gateway/internal/domain/pricing"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// ErrNoResults is returned when the provider finds no match for an address.
var ErrNoResults = errors.New("no geocoding results")

// Client calls the Google Geocoding API.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the provider URL, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a geocoding Client with the given API key.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Resolve geocodes a free-text address to coordinates. ErrNoResults is
// returned when the provider recognizes the request but finds no match.
func (c *Client) Resolve(ctx context.Context, address string) (pricing.Coordinates, error) {
	q := url.Values{
		"address": {address},
		"key":     {c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return pricing.Coordinates{}, errors.Wrap(err, "build geocode request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return pricing.Coordinates{}, errors.Wrap(err, "geocode request")
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return pricing.Coordinates{}, errors.Wrap(err, "read geocode response")
	}
	if resp.StatusCode != http.StatusOK {
		return pricing.Coordinates{}, errors.Errorf("geocode provider status %d", resp.StatusCode)
	}

	var body geocodeResponse
	if err := json.Unmarshal(data, &body); err != nil {
		return pricing.Coordinates{}, errors.Wrap(err, "decode geocode response")
	}

	switch body.Status {
	case "OK":
	case "ZERO_RESULTS":
		return pricing.Coordinates{}, ErrNoResults
	default:
		return pricing.Coordinates{}, errors.Errorf("geocode provider status %q", body.Status)
	}
	if len(body.Results) == 0 {
		return pricing.Coordinates{}, ErrNoResults
	}

	loc := body.Results[0].Geometry.Location
	return pricing.Coordinates{Lat: loc.Lat, Lng: loc.Lng}, nil
}
