package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"go-kiezmap/config"
	"go-kiezmap/gateway"
	"go-kiezmap/logger"
	"go-kiezmap/session"
	"go-kiezmap/types"
)

type fakeCrime struct {
	table types.CrimeTable
	paths []string
}

func (f *fakeCrime) Load(_ context.Context, path string) types.CrimeTable {
	f.paths = append(f.paths, path)
	return f.table
}

type fakeData struct {
	mu            sync.Mutex
	offline       bool
	placeCalls    []types.Category
	boundaryCalls int
}

var errOffline = errors.New("offline")

func (f *fakeData) ExchangeRate(context.Context) gateway.Result[float64] {
	if f.offline {
		return gateway.NewFallback(1450.0, errOffline)
	}
	return gateway.NewLive(1502.25)
}

func (f *fakeData) Weather(context.Context) gateway.Result[types.Weather] {
	if f.offline {
		return gateway.NewFallback(types.Weather{TemperatureC: 15, Condition: "Clear sky"}, errOffline)
	}
	return gateway.NewLive(types.Weather{TemperatureC: 21.5, ConditionCode: 2, Condition: "Partly cloudy"})
}

func (f *fakeData) Places(_ context.Context, category types.Category, center types.LatLng, _ int) gateway.Result[[]types.Place] {
	f.mu.Lock()
	f.placeCalls = append(f.placeCalls, category)
	f.mu.Unlock()
	if f.offline {
		return gateway.NewFallback([]types.Place{}, errOffline)
	}
	return gateway.NewLive([]types.Place{{Name: string(category) + " near", Lat: center.Lat, Lng: center.Lng, Category: category}})
}

func (f *fakeData) Boundaries(context.Context) gateway.Result[types.FeatureCollection] {
	f.boundaryCalls++
	if f.offline {
		return gateway.NewFallback(types.FeatureCollection{Type: "FeatureCollection", Features: []types.Feature{}}, errOffline)
	}
	return gateway.NewLive(types.FeatureCollection{Type: "FeatureCollection", Features: []types.Feature{
		{Type: "Feature", Properties: map[string]any{"name": "Mitte"}, Geometry: json.RawMessage(`null`)},
		{Type: "Feature", Properties: map[string]any{"name": "Pankow"}, Geometry: json.RawMessage(`null`)},
	}})
}

type fakeGeocoder struct {
	queries []string
	hit     *types.Location
}

func (f *fakeGeocoder) Search(_ context.Context, query string) gateway.Result[*types.Location] {
	f.queries = append(f.queries, query)
	return gateway.NewLive(f.hit)
}

type fakeAssistant struct {
	prompts []string
	answer  gateway.Result[string]
}

func (f *fakeAssistant) Complete(_ context.Context, prompt string) gateway.Result[string] {
	f.prompts = append(f.prompts, prompt)
	return f.answer
}

type fixture struct {
	svc       *Service
	crime     *fakeCrime
	data      *fakeData
	geocoder  *fakeGeocoder
	assistant *fakeAssistant
	state     *session.State
}

func newFixture() *fixture {
	cfg := &config.Config{Profile: config.DefaultProfile(), CrimeFile: "crime.xlsx"}
	f := &fixture{
		crime: &fakeCrime{table: types.CrimeTable{Rows: []types.CrimeRow{
			{District: "Mitte", TotalCrime: 80000},
			{District: "Pankow", TotalCrime: 20000},
		}}},
		data:      &fakeData{},
		geocoder:  &fakeGeocoder{},
		assistant: &fakeAssistant{answer: gateway.NewLive("Visit the Pergamon.")},
		state:     session.NewState(cfg.Profile.Center),
	}
	f.svc = New(cfg, f.crime, f.data, f.geocoder, f.assistant, logger.Nop())
	return f
}

func TestViewDefaults(t *testing.T) {
	f := newFixture()
	page := f.svc.View(context.Background(), f.state)

	if page.City != "Berlin" {
		t.Errorf("city: want=%q got=%q", "Berlin", page.City)
	}
	if !page.Metrics.ExchangeRate.Live || page.Metrics.ExchangeRate.Value != 1502.25 {
		t.Errorf("exchange rate: got %+v", page.Metrics.ExchangeRate)
	}
	if page.Metrics.Currency != "EUR/KRW" {
		t.Errorf("currency: want=%q got=%q", "EUR/KRW", page.Metrics.Currency)
	}
	if page.Map.Choropleth == nil {
		t.Fatalf("choropleth: want layer with default toggles")
	}
	if diff := cmp.Diff([]types.Category{types.CategoryFood}, f.data.placeCalls); diff != "" {
		t.Errorf("place calls mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"crime.xlsx"}, f.crime.paths); diff != "" {
		t.Errorf("crime paths mismatch (-want +got):\n%s", diff)
	}
	if len(page.Notices) != 0 {
		t.Errorf("notices: want none got %v", page.Notices)
	}
}

func TestViewOffline(t *testing.T) {
	f := newFixture()
	f.data.offline = true
	f.svc.ToggleLayers(f.state, types.LayerToggles{Crime: true, Lodging: true})
	page := f.svc.View(context.Background(), f.state)

	if page.Metrics.ExchangeRate.Live || page.Metrics.ExchangeRate.Value != 1450 {
		t.Errorf("exchange rate: want fallback 1450 got %+v", page.Metrics.ExchangeRate)
	}
	if page.Map.Choropleth != nil {
		t.Errorf("choropleth: want none without boundaries")
	}
	if len(page.Map.Warnings) != 1 {
		t.Errorf("map warnings: want 1 got %v", page.Map.Warnings)
	}
	if diff := cmp.Diff([]string{"lodging search is unavailable right now"}, page.Notices); diff != "" {
		t.Errorf("notices mismatch (-want +got):\n%s", diff)
	}
}

func TestViewCrimeOffSkipsLoader(t *testing.T) {
	f := newFixture()
	f.svc.ToggleLayers(f.state, types.LayerToggles{})
	page := f.svc.View(context.Background(), f.state)
	if len(f.crime.paths) != 0 || f.data.boundaryCalls != 0 {
		t.Errorf("crime layer off: loader=%d boundaries=%d calls", len(f.crime.paths), f.data.boundaryCalls)
	}
	if len(page.Map.Groups) != 0 || len(f.data.placeCalls) != 0 {
		t.Errorf("no layers: want no groups and no place calls")
	}
}

func TestSearch(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.svc.Search(ctx, f.state, "  ")
	if len(f.geocoder.queries) != 0 {
		t.Fatalf("blank search reached the geocoder: %v", f.geocoder.queries)
	}
	if snap := f.state.Snapshot(); snap.View.SearchMarker != nil || snap.View.MapCenter != config.DefaultProfile().Center {
		t.Fatalf("blank search mutated the map: %+v", snap.View)
	}

	f.geocoder.hit = &types.Location{Lat: 52.4986, Lng: 13.4033, Label: "Kreuzberg"}
	f.svc.Search(ctx, f.state, "Kreuzberg")
	if diff := cmp.Diff([]string{"Kreuzberg Berlin"}, f.geocoder.queries); diff != "" {
		t.Errorf("geocoder queries mismatch (-want +got):\n%s", diff)
	}
	page := f.svc.View(ctx, f.state)
	if page.Map.Center != (types.LatLng{Lat: 52.4986, Lng: 13.4033}) || page.Map.SearchMarker == nil {
		t.Errorf("map not moved: center=%+v marker=%+v", page.Map.Center, page.Map.SearchMarker)
	}
	if diff := cmp.Diff([]string{"Moved to Kreuzberg"}, page.Notices); diff != "" {
		t.Errorf("notices mismatch (-want +got):\n%s", diff)
	}
	if again := f.svc.View(ctx, f.state); len(again.Notices) != 0 {
		t.Errorf("notice shown twice: %v", again.Notices)
	}
}

func TestRecommendAndReply(t *testing.T) {
	f := newFixture()
	rec := f.svc.Recommend(f.state, " Alexanderplatz ", "Great views")
	if err := f.svc.Reply(f.state, rec.ID, "Agreed!"); err != nil {
		t.Fatalf("Reply: %v", err)
	}
	page := f.svc.View(context.Background(), f.state)
	got := page.Recommendations[0]
	if got.Place != "Alexanderplatz" || got.Description != "Great views" {
		t.Errorf("recommendation: got %+v", got)
	}
	if diff := cmp.Diff([]string{"Agreed!"}, got.Replies); diff != "" {
		t.Errorf("replies mismatch (-want +got):\n%s", diff)
	}
	if err := f.svc.Reply(f.state, "nope", "x"); !errors.Is(err, session.ErrRecommendationNotFound) {
		t.Errorf("Reply unknown: want ErrRecommendationNotFound got %v", err)
	}
}

func TestChat(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if r := f.svc.Chat(ctx, f.state, "   "); !errors.Is(r.Reason, ErrEmptyPrompt) {
		t.Errorf("blank prompt: want ErrEmptyPrompt got %v", r.Reason)
	}
	f.svc.Chat(ctx, f.state, "What should I see?")

	f.assistant.answer = gateway.NewFallback(gateway.UnavailableAnswer, errOffline)
	f.svc.Chat(ctx, f.state, "And then?")

	want := []types.ChatMessage{
		{Role: types.RoleUser, Content: "What should I see?"},
		{Role: types.RoleAssistant, Content: "Visit the Pergamon."},
		{Role: types.RoleUser, Content: "And then?"},
		{Role: types.RoleAssistant, Content: gateway.UnavailableAnswer},
	}
	if diff := cmp.Diff(want, f.state.Snapshot().Messages); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"What should I see?", "And then?"}, f.assistant.prompts); diff != "" {
		t.Errorf("prompts mismatch (-want +got):\n%s", diff)
	}
}

func TestJoinedBoundaries(t *testing.T) {
	f := newFixture()
	got := f.svc.JoinedBoundaries(context.Background())
	if !got.Live || len(got.Value.Features) != 2 {
		t.Fatalf("JoinedBoundaries: got %+v", got)
	}
	if c := got.Value.Features[0].Properties["fillColor"]; c != "#bd0026" {
		t.Errorf("Mitte color: want=%q got=%v", "#bd0026", c)
	}

	f.data.offline = true
	if got := f.svc.JoinedBoundaries(context.Background()); got.Live {
		t.Errorf("offline: want fallback")
	}
}
