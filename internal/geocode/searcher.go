// README: Debounced search wrapper with stale-response protection.
package geocode

import (
	"context"
	"strings"
	"sync"
	"time"
)

// DefaultDebounce is the quiet period waited after the last keystroke
// before a request is issued.
const DefaultDebounce = 400 * time.Millisecond

// Searcher coalesces rapid query updates into at most one provider request
// per quiet period. Only the most recent query within the debounce window
// is ever sent ("last write wins"). Each issued request carries a sequence
// number; a response is dropped unless its sequence is still the latest, so
// out-of-order network completions never overwrite fresher results.
type Searcher struct {
	client    Geocoder
	delay     time.Duration
	onResults func([]Candidate, error)

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	query   string
	results []Candidate
}

// NewSearcher wraps client with a debounce of delay. onResults is invoked
// after every completed search (and with no candidates when the query is
// cleared); it may be nil.
func NewSearcher(client Geocoder, delay time.Duration, onResults func([]Candidate, error)) *Searcher {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Searcher{client: client, delay: delay, onResults: onResults}
}

// SetQuery records the latest query and restarts the debounce timer. A
// pending timer from a prior call is cancelled outright, so superseded
// input never reaches the network. Blank input clears results synchronously
// and issues no request.
func (s *Searcher) SetQuery(text string) {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.query = text
	s.seq++

	if strings.TrimSpace(text) == "" {
		s.results = nil
		cb := s.onResults
		s.mu.Unlock()
		if cb != nil {
			cb(nil, nil)
		}
		return
	}

	id := s.seq
	s.timer = time.AfterFunc(s.delay, func() {
		s.fire(id, text)
	})
	s.mu.Unlock()
}

// Clear cancels any pending timer and resets query and results.
func (s *Searcher) Clear() {
	s.SetQuery("")
}

// Results returns a snapshot of the most recent result set.
func (s *Searcher) Results() []Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Candidate, len(s.results))
	copy(out, s.results)
	return out
}

// Query returns the most recently recorded query text.
func (s *Searcher) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

func (s *Searcher) fire(id uint64, text string) {
	candidates, err := s.client.Search(context.Background(), text)

	s.mu.Lock()
	if id != s.seq {
		// A newer query was recorded while this request was in flight.
		s.mu.Unlock()
		return
	}
	if err != nil {
		s.results = nil
	} else {
		s.results = candidates
	}
	cb := s.onResults
	s.mu.Unlock()

	if cb != nil {
		cb(candidates, err)
	}
}
