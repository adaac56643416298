package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-kiezmap/config"
	"go-kiezmap/gateway"
	"go-kiezmap/logger"
	"go-kiezmap/mapview"
	"go-kiezmap/session"
	"go-kiezmap/types"
)

var (
	ErrEmptyQuery  = errors.New("empty search query")
	ErrEmptyPrompt = errors.New("empty chat prompt")
)

type CrimeSource interface {
	Load(ctx context.Context, path string) types.CrimeTable
}

// CityData is the keyless gateway surface.
type CityData interface {
	ExchangeRate(ctx context.Context) gateway.Result[float64]
	Weather(ctx context.Context) gateway.Result[types.Weather]
	Places(ctx context.Context, category types.Category, center types.LatLng, radiusM int) gateway.Result[[]types.Place]
	Boundaries(ctx context.Context) gateway.Result[types.FeatureCollection]
}

type Geocoder interface {
	Search(ctx context.Context, query string) gateway.Result[*types.Location]
}

type Assistant interface {
	Complete(ctx context.Context, prompt string) gateway.Result[string]
}

// Metrics are the header values above the map.
type Metrics struct {
	Currency     string                        `json:"currency"`
	ExchangeRate gateway.Result[float64]       `json:"exchangeRate"`
	Weather      gateway.Result[types.Weather] `json:"weather"`
}

// Page is one full recomputation of everything a session sees.
type Page struct {
	City            string                 `json:"city"`
	Metrics         Metrics                `json:"metrics"`
	Map             mapview.View           `json:"map"`
	Layers          types.LayerToggles     `json:"layers"`
	Recommendations []types.Recommendation `json:"recommendations"`
	Messages        []types.ChatMessage    `json:"messages"`
	Notices         []string               `json:"notices"`
}

// Service owns one entry point per user interaction plus the full view recomputation.
type Service struct {
	crime     CrimeSource
	data      CityData
	geocoder  Geocoder
	assistant Assistant
	profile   config.Profile
	crimeFile string
	log       *logger.Logger
}

func New(cfg *config.Config, crime CrimeSource, data CityData, geocoder Geocoder, assistant Assistant, log *logger.Logger) *Service {
	return &Service{
		crime:     crime,
		data:      data,
		geocoder:  geocoder,
		assistant: assistant,
		profile:   cfg.Profile,
		crimeFile: cfg.CrimeFile,
		log:       log.With("component", "Dashboard"),
	}
}

func (s *Service) City() string { return s.profile.City }

// Search geocodes query within the city and moves the map on a hit.
// A blank query is ignored without calling the geocoder.
func (s *Service) Search(ctx context.Context, st *session.State, query string) gateway.Result[*types.Location] {
	res := s.Locate(ctx, query)
	if errors.Is(res.Reason, ErrEmptyQuery) {
		return res
	}
	if res.Value == nil {
		s.log.Debug("search without result", "query", query, "reason", res.ReasonText())
	}
	st.ApplySearch(query, res.Value)
	return res
}

// Locate geocodes query within the city without touching any session.
func (s *Service) Locate(ctx context.Context, query string) gateway.Result[*types.Location] {
	query = strings.TrimSpace(query)
	if query == "" {
		return gateway.NewFallback[*types.Location](nil, ErrEmptyQuery)
	}
	return s.geocoder.Search(ctx, query+" "+s.profile.City)
}

func (s *Service) ToggleLayers(st *session.State, layers types.LayerToggles) {
	st.SetLayers(layers)
}

func (s *Service) Recommend(st *session.State, place, description string) types.Recommendation {
	return st.AddRecommendation(strings.TrimSpace(place), strings.TrimSpace(description))
}

func (s *Service) Reply(st *session.State, id, text string) error {
	return st.AddReply(id, strings.TrimSpace(text))
}

// Chat records the prompt, asks the assistant and records the answer. Placeholder answers are
// recorded too so the history shows what the user saw.
func (s *Service) Chat(ctx context.Context, st *session.State, prompt string) gateway.Result[string] {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return gateway.NewFallback("", ErrEmptyPrompt)
	}
	st.AppendMessage(types.RoleUser, prompt)
	answer := s.assistant.Complete(ctx, prompt)
	st.AppendMessage(types.RoleAssistant, answer.Value)
	return answer
}

// Crime returns the normalized crime table.
func (s *Service) Crime(ctx context.Context) types.CrimeTable {
	return s.crime.Load(ctx, s.crimeFile)
}

// Warm loads the crime table ahead of the first view and returns its row count.
func (s *Service) Warm(ctx context.Context) int {
	return len(s.Crime(ctx).Rows)
}

// JoinedBoundaries returns the district geometry annotated with crime totals and fill colors.
func (s *Service) JoinedBoundaries(ctx context.Context) gateway.Result[types.FeatureCollection] {
	b := s.data.Boundaries(ctx)
	if !b.Live {
		return b
	}
	joined, _ := mapview.Join(s.Crime(ctx), b.Value, s.profile.Boundaries.NameProperty)
	return gateway.NewLive(joined)
}

// View recomputes the whole page from st. Gateway calls run one after another.
func (s *Service) View(ctx context.Context, st *session.State) Page {
	notice := st.TakeNotice()
	snap := st.Snapshot()
	layers := snap.View.Layers

	page := Page{
		City: s.profile.City,
		Metrics: Metrics{
			Currency:     s.profile.Currency.Base + "/" + s.profile.Currency.Target,
			ExchangeRate: s.data.ExchangeRate(ctx),
			Weather:      s.data.Weather(ctx),
		},
		Layers:          layers,
		Recommendations: snap.Recommendations,
		Messages:        snap.Messages,
		Notices:         []string{},
	}
	if notice != "" {
		page.Notices = append(page.Notices, notice)
	}

	in := mapview.Input{
		Center:       snap.View.MapCenter,
		Zoom:         s.profile.Zoom,
		Layers:       layers,
		CrimeFile:    s.crimeFile,
		Legend:       s.profile.Crime.Legend,
		NameProperty: s.profile.Boundaries.NameProperty,
		SearchMarker: snap.View.SearchMarker,
		Places:       map[types.Category][]types.Place{},
	}
	if layers.Crime {
		in.Crime = s.Crime(ctx)
		if !in.Crime.Empty() {
			if b := s.data.Boundaries(ctx); b.Live {
				in.Boundaries = &b.Value
			}
		}
	}
	for _, category := range types.Categories {
		if !layers.Enabled(category) {
			continue
		}
		r := s.data.Places(ctx, category, snap.View.MapCenter, 0)
		if !r.Live {
			page.Notices = append(page.Notices, fmt.Sprintf("%s search is unavailable right now", category))
		}
		in.Places[category] = r.Value
	}
	page.Map = mapview.Compose(in)
	return page
}
