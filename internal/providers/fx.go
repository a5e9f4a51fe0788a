package providers

import (
	"context"
	"net/url"
)

// Rate is a single quoted value. Valid is false when the fetch failed and
// the display should show a placeholder.
type Rate struct {
	Value float64
	Valid bool
}

// FXRates holds USD→BRL and EUR→BRL quotes.
type FXRates struct {
	USD Rate
	EUR Rate
}

type fxResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// FXRates returns the current FX quotes, memoized for a minute. Each
// currency is fetched independently, so one failure does not blank the
// other.
func (c *Client) FXRates(ctx context.Context) FXRates {
	if v, ok := c.cache.Get("fx"); ok {
		return v.(FXRates)
	}

	out := FXRates{
		USD: c.fxRate(ctx, "USD"),
		EUR: c.fxRate(ctx, "EUR"),
	}
	c.cache.Set("fx", out, quoteTTL)
	return out
}

func (c *Client) fxRate(ctx context.Context, base string) Rate {
	params := url.Values{}
	params.Set("base", base)
	params.Set("symbols", "BRL")

	var resp fxResponse
	if err := c.getJSON(ctx, c.FXBaseURL+"/latest", params, &resp); err != nil {
		return Rate{}
	}
	brl, ok := resp.Rates["BRL"]
	if !ok {
		return Rate{}
	}
	return Rate{Value: brl, Valid: true}
}
