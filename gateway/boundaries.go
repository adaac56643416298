package gateway

import (
	"context"
	"fmt"

	"go-kiezmap/cache"
	"go-kiezmap/types"
)

// Boundaries fetches the district boundary FeatureCollection named by the profile.
func (c *Client) Boundaries(ctx context.Context) Result[types.FeatureCollection] {
	return cache.Remember(ctx, c.memo, c.boundariesKey(), func(ctx context.Context) (Result[types.FeatureCollection], bool) {
		r := c.fetchBoundaries(ctx)
		return r, r.Live
	})
}

func (c *Client) boundariesKey() string {
	return "boundaries:" + c.profile.Boundaries.URL
}

func (c *Client) fetchBoundaries(ctx context.Context) (res Result[types.FeatureCollection]) {
	ctx, span := startSpan(ctx, "gateway.Boundaries")
	defer func() { endSpan(span, res.Reason) }()

	empty := types.FeatureCollection{Type: "FeatureCollection", Features: []types.Feature{}}
	var out types.FeatureCollection
	if err := getJSON(ctx, c.http, c.profile.Boundaries.URL, nil, nil, &out); err != nil {
		c.log.Warn("district boundaries unavailable", "error", err)
		return NewFallback(empty, err)
	}
	if out.Type != "FeatureCollection" || len(out.Features) == 0 {
		err := fmt.Errorf("boundaries: expected a non-empty FeatureCollection, got type %q with %d features", out.Type, len(out.Features))
		c.log.Warn("district boundaries unavailable", "error", err)
		return NewFallback(empty, err)
	}
	return NewLive(out)
}
