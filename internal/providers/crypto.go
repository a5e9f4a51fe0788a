package providers

import (
	"context"
	"net/url"
)

// CryptoRates holds BTC and ETH prices in BRL.
type CryptoRates struct {
	BTC Rate
	ETH Rate
}

type cryptoResponse map[string]map[string]float64

// CryptoRates returns the current crypto quotes, memoized for a minute.
func (c *Client) CryptoRates(ctx context.Context) CryptoRates {
	if v, ok := c.cache.Get("crypto"); ok {
		return v.(CryptoRates)
	}

	params := url.Values{}
	params.Set("ids", "bitcoin,ethereum")
	params.Set("vs_currencies", "brl")

	var resp cryptoResponse
	out := CryptoRates{}
	if err := c.getJSON(ctx, c.CryptoBaseURL+"/simple/price", params, &resp); err == nil {
		if v, ok := resp["bitcoin"]["brl"]; ok {
			out.BTC = Rate{Value: v, Valid: true}
		}
		if v, ok := resp["ethereum"]["brl"]; ok {
			out.ETH = Rate{Value: v, Valid: true}
		}
	}
	c.cache.Set("crypto", out, quoteTTL)
	return out
}
