package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-kiezmap/types"
)

var ErrRecommendationNotFound = errors.New("recommendation not found")

// State is everything one browser session owns. Each interaction mutates it through exactly one method;
// views are rendered from a Snapshot.
type State struct {
	mu              sync.Mutex
	view            types.ViewState
	recommendations []types.Recommendation
	messages        []types.ChatMessage
	notice          string
}

// Snapshot is a deep copy of a State, safe to read without the lock.
type Snapshot struct {
	View            types.ViewState        `json:"view"`
	Recommendations []types.Recommendation `json:"recommendations"`
	Messages        []types.ChatMessage    `json:"messages"`
	Notice          string                 `json:"notice,omitempty"`
}

func NewState(center types.LatLng) *State {
	return &State{
		view: types.ViewState{
			MapCenter: center,
			Layers:    types.DefaultLayers(),
		},
		recommendations: []types.Recommendation{},
		messages:        []types.ChatMessage{},
	}
}

func (s *State) SetLayers(layers types.LayerToggles) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Layers = layers
}

// ApplySearch records the outcome of a location search. A blank query changes nothing; a query with
// no hit only leaves a notice. Center and marker move only on a hit.
func (s *State) ApplySearch(query string, loc *types.Location) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if loc == nil {
		s.notice = fmt.Sprintf("No location found for %q.", query)
		return
	}
	s.view.MapCenter = types.LatLng{Lat: loc.Lat, Lng: loc.Lng}
	s.view.SearchMarker = &types.Marker{Lat: loc.Lat, Lng: loc.Lng, Label: loc.Label}
	s.notice = "Moved to " + loc.Label
}

// AddRecommendation puts a new recommendation at the top of the board.
func (s *State) AddRecommendation(place, description string) types.Recommendation {
	rec := types.Recommendation{
		ID:          uuid.NewString(),
		Place:       place,
		Description: description,
		Replies:     []string{},
		CreatedAt:   time.Now().UTC(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recommendations = append([]types.Recommendation{rec}, s.recommendations...)
	return copyRecommendation(rec)
}

// AddReply appends text to the replies of the recommendation with id.
func (s *State) AddReply(id, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.recommendations {
		if s.recommendations[i].ID == id {
			s.recommendations[i].Replies = append(s.recommendations[i].Replies, text)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrRecommendationNotFound, id)
}

func (s *State) AppendMessage(role types.Role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, types.ChatMessage{Role: role, Content: content})
}

// TakeNotice returns the pending notice and clears it.
func (s *State) TakeNotice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.notice
	s.notice = ""
	return n
}

func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		View:            s.view,
		Recommendations: make([]types.Recommendation, len(s.recommendations)),
		Messages:        append([]types.ChatMessage{}, s.messages...),
		Notice:          s.notice,
	}
	if s.view.SearchMarker != nil {
		m := *s.view.SearchMarker
		snap.View.SearchMarker = &m
	}
	for i, r := range s.recommendations {
		snap.Recommendations[i] = copyRecommendation(r)
	}
	return snap
}

func copyRecommendation(r types.Recommendation) types.Recommendation {
	r.Replies = append([]string{}, r.Replies...)
	return r
}
