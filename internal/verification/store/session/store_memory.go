package session

import (
	"context"
	"sync"

	"passprove/internal/verification/models"
	"passprove/pkg/domain"
	"passprove/pkg/platform/sentinel"
)

// InMemory keeps sessions in a map guarded by one mutex.
type InMemory struct {
	mu       sync.Mutex
	sessions map[domain.SessionID]*models.Session
}

func NewInMemory() *InMemory {
	return &InMemory{sessions: make(map[domain.SessionID]*models.Session)}
}

func (s *InMemory) Create(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[session.ID]; exists {
		return sentinel.ErrConflict
	}
	s.sessions[session.ID] = clone(session)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.SessionID) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(session), nil
}

// Execute runs validate then mutate on a copy while holding the lock and
// stores the copy only when validate passes.
func (s *InMemory) Execute(_ context.Context, id domain.SessionID, validate func(*models.Session) error, mutate func(*models.Session)) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.sessions[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	working := clone(current)
	if err := validate(working); err != nil {
		return nil, err
	}
	mutate(working)
	s.sessions[id] = working
	return clone(working), nil
}

func clone(session *models.Session) *models.Session {
	cp := *session
	if session.CompletedAt != nil {
		t := *session.CompletedAt
		cp.CompletedAt = &t
	}
	return &cp
}
