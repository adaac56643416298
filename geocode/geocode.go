package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"googlemaps.github.io/maps"

	"go-kiezmap/cache"
	"go-kiezmap/config"
	"go-kiezmap/gateway"
	"go-kiezmap/logger"
	"go-kiezmap/types"
)

// Nominatim's usage policy requires an identifying User-Agent.
const nominatimUserAgent = "go-kiezmap/1.0 (city dashboard)"

var ErrEmptyQuery = errors.New("empty search query")

type nominatimHit struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocoder resolves free text to a single location. It uses Google geocoding when a maps key is
// configured and Nominatim otherwise.
type Geocoder struct {
	mapsClient   *maps.Client
	httpClient   *http.Client
	nominatimURL string
	memo         *cache.Memo
	log          *logger.Logger
}

func New(cfg *config.Config, memo *cache.Memo, log *logger.Logger) *Geocoder {
	g := &Geocoder{
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		nominatimURL: cfg.Endpoints.Nominatim,
		memo:         memo,
		log:          log.With("component", "Geocoder"),
	}
	if cfg.MapsAPIKey == "" {
		return g
	}
	opts := []maps.ClientOption{maps.WithAPIKey(cfg.MapsAPIKey), maps.WithHTTPClient(g.httpClient)}
	if cfg.Endpoints.Maps != "" {
		opts = append(opts, maps.WithBaseURL(cfg.Endpoints.Maps))
	}
	client, err := maps.NewClient(opts...)
	if err != nil {
		g.log.Warn("failed to create maps client, using Nominatim", "error", err)
		return g
	}
	g.mapsClient = client
	return g
}

// Search returns the best hit for query, or a nil location when there is none.
// A blank query never reaches the network.
func (g *Geocoder) Search(ctx context.Context, query string) gateway.Result[*types.Location] {
	query = strings.TrimSpace(query)
	if query == "" {
		return gateway.NewFallback[*types.Location](nil, ErrEmptyQuery)
	}
	key := "geocode:" + strings.ToLower(query)
	return cache.Remember(ctx, g.memo, key, func(ctx context.Context) (gateway.Result[*types.Location], bool) {
		r := g.lookup(ctx, query)
		return r, r.Live
	})
}

func (g *Geocoder) lookup(ctx context.Context, query string) gateway.Result[*types.Location] {
	provider := "nominatim"
	if g.mapsClient != nil {
		provider = "google"
	}
	ctx, span := otel.Tracer("go-kiezmap/geocode").Start(ctx, "geocode.Search")
	span.SetAttributes(attribute.String("geocode.provider", provider))
	defer span.End()

	var (
		loc *types.Location
		err error
	)
	if g.mapsClient != nil {
		loc, err = g.geocodeGoogle(ctx, query)
	} else {
		loc, err = g.geocodeNominatim(ctx, query)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		g.log.Warn("geocoding failed", "provider", provider, "query", query, "error", err)
		return gateway.NewFallback[*types.Location](nil, err)
	}
	if loc == nil {
		g.log.Debug("no geocoding results found", "provider", provider, "query", query)
	}
	return gateway.NewLive(loc)
}

func (g *Geocoder) geocodeGoogle(ctx context.Context, address string) (*types.Location, error) {
	results, err := g.mapsClient.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	location := results[0].Geometry.Location
	return &types.Location{Lat: location.Lat, Lng: location.Lng, Label: results[0].FormattedAddress}, nil
}

func (g *Geocoder) geocodeNominatim(ctx context.Context, query string) (*types.Location, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.nominatimURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", nominatimUserAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Nominatim: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Nominatim error (status %d)", resp.StatusCode)
	}

	var hits []nominatimHit
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return nil, fmt.Errorf("failed to parse Nominatim response: %w", err)
	}
	if len(hits) == 0 {
		return nil, nil
	}
	lat, err := strconv.ParseFloat(hits[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q: %w", hits[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(hits[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q: %w", hits[0].Lon, err)
	}
	return &types.Location{Lat: lat, Lng: lng, Label: hits[0].DisplayName}, nil
}
