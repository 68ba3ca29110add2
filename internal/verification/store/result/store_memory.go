package result

import (
	"context"
	"maps"
	"sync"

	"passprove/internal/verification/models"
	"passprove/pkg/domain"
	"passprove/pkg/platform/sentinel"
)

// InMemory stores one verification result per session.
type InMemory struct {
	mu      sync.RWMutex
	results map[domain.SessionID]*models.VerificationResult
}

func NewInMemory() *InMemory {
	return &InMemory{results: make(map[domain.SessionID]*models.VerificationResult)}
}

func (s *InMemory) Save(_ context.Context, r *models.VerificationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.results[r.VerificationID]; exists {
		return sentinel.ErrConflict
	}
	s.results[r.VerificationID] = clone(r)
	return nil
}

func (s *InMemory) FindByVerificationID(_ context.Context, id domain.SessionID) (*models.VerificationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.results[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(r), nil
}

func clone(r *models.VerificationResult) *models.VerificationResult {
	cp := *r
	cp.Metadata = maps.Clone(r.Metadata)
	return &cp
}
