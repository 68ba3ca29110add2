package saved

import (
	"context"
	"sync"

	"passprove/internal/verification/models"
	"passprove/pkg/platform/sentinel"
)

// InMemory stores saved verifications keyed by hash.
type InMemory struct {
	mu    sync.RWMutex
	saved map[string]*models.SavedVerification
}

func NewInMemory() *InMemory {
	return &InMemory{saved: make(map[string]*models.SavedVerification)}
}

// Save inserts v. An existing hash returns sentinel.ErrConflict.
func (s *InMemory) Save(_ context.Context, v *models.SavedVerification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.saved[v.Hash]; exists {
		return sentinel.ErrConflict
	}
	cp := *v
	s.saved[v.Hash] = &cp
	return nil
}

func (s *InMemory) FindByHash(_ context.Context, hash string) (*models.SavedVerification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.saved[hash]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *v
	return &cp, nil
}
