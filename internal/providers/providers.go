// Package providers fetches FX rates, crypto prices, weather, and
// timezone-local time for the display's ticker and metrics panel.
//
// Every fetch is bounded by a timeout and memoized for a short window.
// Failures never propagate: each result carries a Valid flag and the
// display renders a placeholder when it is false.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"tvcorporativa/internal/cache"
)

// Public endpoints, all keyless.
const (
	DefaultFXBaseURL      = "https://api.exchangerate.host"
	DefaultCryptoBaseURL  = "https://api.coingecko.com/api/v3"
	DefaultWeatherBaseURL = "https://api.open-meteo.com/v1"
)

// Cache windows. Staleness inside these is acceptable.
const (
	quoteTTL   = 60 * time.Second
	weatherTTL = 15 * time.Minute
)

// Client fetches data from the external quote and weather providers.
type Client struct {
	http  *http.Client
	cache *cache.TTL

	// Base URLs are fields so tests can point them at a local server.
	FXBaseURL      string
	CryptoBaseURL  string
	WeatherBaseURL string
}

// New creates a provider client with the given request timeout.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http:           &http.Client{Timeout: timeout},
		cache:          cache.New(),
		FXBaseURL:      DefaultFXBaseURL,
		CryptoBaseURL:  DefaultCryptoBaseURL,
		WeatherBaseURL: DefaultWeatherBaseURL,
	}
}

// getJSON is the single fetch-with-fallback helper: it issues a GET and
// decodes the response into target, returning an error the callers turn
// into an invalid (placeholder) result.
func (c *Client) getJSON(ctx context.Context, rawURL string, params url.Values, target any) error {
	u := rawURL
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode %s: %w", rawURL, err)
	}
	return nil
}
