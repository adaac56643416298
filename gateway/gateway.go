package gateway

import (
	"context"
	"net/http"

	"go-kiezmap/cache"
	"go-kiezmap/config"
	"go-kiezmap/logger"
)

// Client bundles the keyless upstreams: exchange rate, weather, Overpass places and district boundaries.
// Every method returns its documented fallback instead of an error.
type Client struct {
	http      *http.Client
	memo      *cache.Memo
	log       *logger.Logger
	endpoints config.Endpoints
	profile   config.Profile
}

func New(cfg *config.Config, memo *cache.Memo, log *logger.Logger) *Client {
	return &Client{
		http:      newHTTPClient(),
		memo:      memo,
		log:       log.With("component", "Gateway"),
		endpoints: cfg.Endpoints,
		profile:   cfg.Profile,
	}
}

// Refresh re-fetches the slow-changing values and overwrites their cache entries when the fetch is live.
// It returns how many entries were refreshed.
func (c *Client) Refresh(ctx context.Context) int {
	refreshed := 0
	if r := c.fetchExchangeRate(ctx); r.Live {
		c.memo.Put(ctx, c.exchangeRateKey(), r)
		refreshed++
	}
	if r := c.fetchWeather(ctx); r.Live {
		c.memo.Put(ctx, weatherKey, r)
		refreshed++
	}
	if r := c.fetchBoundaries(ctx); r.Live {
		c.memo.Put(ctx, c.boundariesKey(), r)
		refreshed++
	}
	return refreshed
}
