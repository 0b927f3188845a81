// README: In-memory trip registry. Sessions are transient by design; there
// is no persistence layer.
package trip

import (
	"sync"

	"zotra/internal/types"
)

type Store struct {
	mu    sync.RWMutex
	trips map[types.ID]*Trip
}

func NewStore() *Store {
	return &Store{trips: make(map[types.ID]*Trip)}
}

func (s *Store) Create() *Trip {
	t := NewTrip()
	s.mu.Lock()
	s.trips[t.ID] = t
	s.mu.Unlock()
	return t
}

func (s *Store) Get(id types.ID) (*Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.trips[id]
	if !ok {
		return nil, ErrTripNotFound
	}
	return t, nil
}

func (s *Store) Delete(id types.ID) {
	s.mu.Lock()
	delete(s.trips, id)
	s.mu.Unlock()
}
