package session

import (
	"encoding/json"

	"github.com/coocood/freecache"
	"github.com/foodlens-ai/foodlens/internal/acquisition"
	"github.com/rs/zerolog/log"
)

// cacheSize holds UI state blobs only; freecache enforces a 512KB floor.
const cacheSize = 1024 * 1024

// Store keeps per-browser-session acquisition state in an in-memory cache
// with TTL eviction. An expired or unknown session just reads as the zero
// state (camera hidden).
type Store struct {
	cache      *freecache.Cache
	ttlSeconds int
}

func NewStore(ttlSeconds int) *Store {
	return &Store{
		cache:      freecache.NewCache(cacheSize),
		ttlSeconds: ttlSeconds,
	}
}

// Get returns the stored state for sessionID, or the zero state.
func (s *Store) Get(sessionID string) acquisition.State {
	data, err := s.cache.Get([]byte(sessionID))
	if err != nil {
		return acquisition.State{}
	}
	var state acquisition.State
	if err := json.Unmarshal(data, &state); err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("Corrupt session state, resetting")
		return acquisition.State{}
	}
	return state
}

// TTLSeconds returns the configured session lifetime.
func (s *Store) TTLSeconds() int {
	return s.ttlSeconds
}

// Put stores state for sessionID with the configured TTL.
func (s *Store) Put(sessionID string, state acquisition.State) {
	data, err := json.Marshal(state)
	if err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("Failed to marshal session state")
		return
	}
	if err := s.cache.Set([]byte(sessionID), data, s.ttlSeconds); err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("Failed to store session state")
	}
}
