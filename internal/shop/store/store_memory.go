package store

import (
	"context"
	"sync"

	"passprove/internal/shop/models"
	"passprove/pkg/domain"
	"passprove/pkg/platform/sentinel"
)

// InMemory is a map-backed shop store for tests and local runs.
type InMemory struct {
	mu       sync.RWMutex
	shops    map[domain.ShopID]*models.Shop
	byAPIKey map[string]domain.ShopID
}

func NewInMemory() *InMemory {
	return &InMemory{
		shops:    make(map[domain.ShopID]*models.Shop),
		byAPIKey: make(map[string]domain.ShopID),
	}
}

// Create inserts a shop. A taken API key returns sentinel.ErrConflict.
func (s *InMemory) Create(_ context.Context, shop *models.Shop) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byAPIKey[shop.APIKey]; taken {
		return sentinel.ErrConflict
	}
	if _, exists := s.shops[shop.ID]; exists {
		return sentinel.ErrConflict
	}
	cp := *shop
	s.shops[shop.ID] = &cp
	s.byAPIKey[shop.APIKey] = shop.ID
	return nil
}

// FindActiveByAPIKey treats inactive shops as missing.
func (s *InMemory) FindActiveByAPIKey(_ context.Context, apiKey string) (*models.Shop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byAPIKey[apiKey]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	shop := s.shops[id]
	if !shop.IsActive() {
		return nil, sentinel.ErrNotFound
	}
	cp := *shop
	return &cp, nil
}

func (s *InMemory) FindByID(_ context.Context, id domain.ShopID) (*models.Shop, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	shop, ok := s.shops[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *shop
	return &cp, nil
}
