package storage

import (
	"context"
	"errors"

	"productworker/internal/scraper"
)

// ErrNotFound is returned when no product exists for an external id.
var ErrNotFound = errors.New("storage: product not found")

// Store persists product records keyed by external id. Upsert is
// idempotent create-or-update; callers never pre-query for dedup.
type Store interface {
	// Upsert creates or updates a product keyed on its external id
	Upsert(ctx context.Context, p *scraper.Product) error

	// ListAll returns all stored products
	ListAll(ctx context.Context) ([]scraper.Product, error)

	// FindByExternalID returns the product for an external id, or ErrNotFound
	FindByExternalID(ctx context.Context, externalID string) (*scraper.Product, error)

	// Close releases the underlying connection
	Close() error
}
