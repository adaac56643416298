package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"github.com/golang/geo/s2"
	"go.opentelemetry.io/otel/attribute"

	"go-kiezmap/cache"
	"go-kiezmap/types"
)

const earthRadiusMeters = 6371008.8

var ErrUnknownCategory = errors.New("unknown place category")

type overpassResponse struct {
	Elements []struct {
		Type string            `json:"type"`
		Lat  float64           `json:"lat"`
		Lon  float64           `json:"lon"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

// Places returns named points of interest of one category within radiusM meters of center,
// nearest first. A radius <= 0 uses the profile default.
func (c *Client) Places(ctx context.Context, category types.Category, center types.LatLng, radiusM int) Result[[]types.Place] {
	if radiusM <= 0 {
		radiusM = c.profile.Places.RadiusM
	}
	if _, ok := c.profile.Places.Tags[string(category)]; !ok {
		return NewFallback([]types.Place{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category))
	}
	key := fmt.Sprintf("places:%s:%.5f:%.5f:%d", category, center.Lat, center.Lng, radiusM)
	return cache.Remember(ctx, c.memo, key, func(ctx context.Context) (Result[[]types.Place], bool) {
		r := c.fetchPlaces(ctx, category, center, radiusM)
		return r, r.Live
	})
}

func overpassQuery(tag string, center types.LatLng, radiusM int) string {
	return fmt.Sprintf(`[out:json];
(
  node%s(around:%d,%s,%s);
);
out body;`, tag, radiusM,
		strconv.FormatFloat(center.Lat, 'f', -1, 64),
		strconv.FormatFloat(center.Lng, 'f', -1, 64))
}

func (c *Client) fetchPlaces(ctx context.Context, category types.Category, center types.LatLng, radiusM int) (res Result[[]types.Place]) {
	ctx, span := startSpan(ctx, "gateway.Places",
		attribute.String("place.category", string(category)),
		attribute.Int("place.radius_m", radiusM))
	defer func() { endSpan(span, res.Reason) }()

	params := url.Values{}
	params.Set("data", overpassQuery(c.profile.Places.Tags[string(category)], center, radiusM))

	var out overpassResponse
	if err := getJSON(ctx, c.http, c.endpoints.Overpass, params, nil, &out); err != nil {
		c.log.Warn("place search failed", "category", category, "error", err)
		return NewFallback([]types.Place{}, err)
	}

	origin := s2.LatLngFromDegrees(center.Lat, center.Lng)
	places := make([]types.Place, 0, len(out.Elements))
	for _, el := range out.Elements {
		name := el.Tags["name"]
		if name == "" {
			continue
		}
		places = append(places, types.Place{
			Name:           name,
			Lat:            el.Lat,
			Lng:            el.Lon,
			Link:           c.SearchLink(name),
			Category:       category,
			DistanceMeters: origin.Distance(s2.LatLngFromDegrees(el.Lat, el.Lon)).Radians() * earthRadiusMeters,
		})
	}
	sort.SliceStable(places, func(i, j int) bool { return places[i].DistanceMeters < places[j].DistanceMeters })

	c.log.Debug("places found", "category", category, "count", len(places))
	return NewLive(places)
}

// SearchLink builds the outbound search URL for a place name qualified with the city.
func (c *Client) SearchLink(name string) string {
	return c.profile.Places.SearchLink + url.QueryEscape(name+" "+c.profile.City)
}
