package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"go-kiezmap/types"
)

// CookieName carries the session id.
const CookieName = "kiezmap_session"

// Store maps session ids to states. An entry expires after ttl without access.
type Store struct {
	mu     sync.Mutex
	items  *gocache.Cache
	ttl    time.Duration
	center types.LatLng
}

// NewStore creates a store whose new sessions start centered on center.
func NewStore(ttl time.Duration, center types.LatLng) *Store {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Store{
		items:  gocache.New(ttl, ttl/2),
		ttl:    ttl,
		center: center,
	}
}

// Get returns the state for id, creating a fresh session when id is empty, unknown or expired.
// The returned id is the one the client should keep.
func (s *Store) Get(id string) (string, *State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if v, ok := s.items.Get(id); ok {
			st := v.(*State)
			// touch
			s.items.Set(id, st, s.ttl)
			return id, st
		}
	}
	id = uuid.NewString()
	st := NewState(s.center)
	s.items.Set(id, st, s.ttl)
	return id, st
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	return s.items.ItemCount()
}

// TTL is the idle lifetime of a session.
func (s *Store) TTL() time.Duration {
	return s.ttl
}
