package gateway

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"go-kiezmap/cache"
)

type exchangeRateResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// ExchangeRate returns how many units of the target currency one unit of the base currency buys.
func (c *Client) ExchangeRate(ctx context.Context) Result[float64] {
	return cache.Remember(ctx, c.memo, c.exchangeRateKey(), func(ctx context.Context) (Result[float64], bool) {
		r := c.fetchExchangeRate(ctx)
		return r, r.Live
	})
}

func (c *Client) exchangeRateKey() string {
	return "fx:" + c.profile.Currency.Base + ":" + c.profile.Currency.Target
}

func (c *Client) fetchExchangeRate(ctx context.Context) (res Result[float64]) {
	base, target := c.profile.Currency.Base, c.profile.Currency.Target
	ctx, span := startSpan(ctx, "gateway.ExchangeRate", attribute.String("currency.pair", base+"/"+target))
	defer func() { endSpan(span, res.Reason) }()

	url := strings.TrimRight(c.endpoints.ExchangeRate, "/") + "/v4/latest/" + base
	var out exchangeRateResponse
	if err := getJSON(ctx, c.http, url, nil, nil, &out); err != nil {
		c.log.Warn("exchange rate unavailable, using fallback", "error", err)
		return NewFallback(c.profile.Currency.Fallback, err)
	}
	rate, ok := out.Rates[target]
	if !ok || rate <= 0 {
		err := fmt.Errorf("rate for %s missing in response", target)
		c.log.Warn("exchange rate unavailable, using fallback", "error", err)
		return NewFallback(c.profile.Currency.Fallback, err)
	}
	return NewLive(rate)
}
