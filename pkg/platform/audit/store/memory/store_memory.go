package memory

import (
	"context"
	"sync"

	audit "passprove/pkg/platform/audit"
)

// DefaultCapacity bounds the store when no capacity is given.
const DefaultCapacity = 10000

// InMemoryStore keeps the most recent events in a ring. When full, the
// oldest event is overwritten.
type InMemoryStore struct {
	mu      sync.RWMutex
	events  []audit.Event
	head    int // next write position
	count   int
	dropped int64
}

func NewInMemoryStore() *InMemoryStore {
	return NewInMemoryStoreWithCapacity(DefaultCapacity)
}

func NewInMemoryStoreWithCapacity(capacity int) *InMemoryStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &InMemoryStore{events: make([]audit.Event, capacity)}
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.count == len(s.events) {
		s.dropped++
	} else {
		s.count++
	}
	s.events[s.head] = event
	s.head = (s.head + 1) % len(s.events)
	return nil
}

func (s *InMemoryStore) ListBySession(_ context.Context, sessionID string) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []audit.Event
	for _, e := range s.ordered(s.count) {
		if e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListRecent returns up to limit events in insertion order, newest last.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	limit = max(0, min(limit, s.count))
	return s.ordered(limit), nil
}

// Dropped reports how many events were overwritten.
func (s *InMemoryStore) Dropped() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dropped
}

// ordered copies the newest n events, oldest first. Caller holds the lock.
func (s *InMemoryStore) ordered(n int) []audit.Event {
	out := make([]audit.Event, 0, n)
	start := s.head - n
	if start < 0 {
		start += len(s.events)
	}
	for i := range n {
		out = append(out, s.events[(start+i)%len(s.events)])
	}
	return out
}
