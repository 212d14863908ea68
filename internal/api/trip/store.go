package trip

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

// SessionStore keeps per-session trip state in memory. Entries expire with
// the session TTL; there is no persistence beyond the process lifetime.
type SessionStore struct {
	sessions *cache.Cache
}

func NewSessionStore(ttl, cleanupInterval time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 1 * time.Hour
	}
	return &SessionStore{
		sessions: cache.New(ttl, cleanupInterval),
	}
}

// Create registers a fresh session and returns its initial state.
func (s *SessionStore) Create() types.TripState {
	state := types.TripState{SessionID: uuid.NewString()}
	s.sessions.SetDefault(state.SessionID, state)
	return state
}

// Get returns the state for a session ID.
func (s *SessionStore) Get(sessionID string) (types.TripState, bool) {
	v, found := s.sessions.Get(sessionID)
	if !found {
		return types.TripState{}, false
	}
	return v.(types.TripState), true
}

// Apply reduces the session state with the action and stores the result.
func (s *SessionStore) Apply(sessionID string, action types.TripAction) (types.TripState, bool) {
	state, found := s.Get(sessionID)
	if !found {
		return types.TripState{}, false
	}
	next := types.Reduce(state, action)
	s.sessions.SetDefault(sessionID, next)
	return next, true
}

// Delete removes a session entirely.
func (s *SessionStore) Delete(sessionID string) {
	s.sessions.Delete(sessionID)
}
