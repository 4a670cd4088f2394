package storage

import (
	"context"
	"sync"

	"productworker/internal/scraper"
)

// MemoryStore is an in-memory Store for tests and one-shot CLI runs.
// Insertion order is preserved so category-order assertions hold.
type MemoryStore struct {
	mu       sync.Mutex
	order    []string
	products map[string]scraper.Product
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products: make(map[string]scraper.Product),
	}
}

// Upsert creates or updates a product keyed on its external id
func (s *MemoryStore) Upsert(ctx context.Context, p *scraper.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.products[p.ExternalID]; !exists {
		s.order = append(s.order, p.ExternalID)
	}
	s.products[p.ExternalID] = *p
	return nil
}

// ListAll returns stored products in first-insertion order
func (s *MemoryStore) ListAll(ctx context.Context) ([]scraper.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]scraper.Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.products[id])
	}
	return out, nil
}

// FindByExternalID returns the product for an external id
func (s *MemoryStore) FindByExternalID(ctx context.Context, externalID string) (*scraper.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[externalID]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

// Close is a no-op for the in-memory store
func (s *MemoryStore) Close() error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
