package memory

import (
	"context"
	"sync"

	"votegate/pkg/platform/audit"
)

// Store is an in-memory audit sink for tests and local development.
type Store struct {
	mu     sync.RWMutex
	events []audit.Event
}

func New() *Store {
	return &Store{}
}

func (s *Store) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListByVoter returns all events recorded for a voter, oldest first.
func (s *Store) ListByVoter(_ context.Context, voterID string) []audit.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []audit.Event
	for _, e := range s.events {
		if e.VoterID == voterID {
			out = append(out, e)
		}
	}
	return out
}

// All returns every recorded event, oldest first.
func (s *Store) All() []audit.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Event(nil), s.events...)
}
