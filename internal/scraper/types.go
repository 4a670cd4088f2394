package scraper

import (
	"context"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Product is the canonical record extracted from a product page. ExternalID
// and Title are always non-empty for any record that reaches storage; Price
// keeps the platform's original formatting.
type Product struct {
	ExternalID string    `json:"external_id"`
	Title      string    `json:"title"`
	Price      string    `json:"price"`
	ImageURL   string    `json:"image_url"`
	URL        string    `json:"url"`
	Provider   string    `json:"provider"`
	ScrapedAt  time.Time `json:"scraped_at"`
}

// Scraper is the capability set a platform implementation provides.
type Scraper interface {
	// Supports reports whether this scraper handles the URL. Purely
	// syntactic, never touches the network.
	Supports(rawURL string) bool

	// ScrapeProduct fetches a product page and extracts its record
	ScrapeProduct(ctx context.Context, rawURL string) (*Product, error)

	// CategoryLinks fetches a listing page and returns product URLs in
	// page order. An empty result is a valid outcome, not an error.
	CategoryLinks(ctx context.Context, rawURL string) ([]string, error)

	// GetName returns the scraper's name for logging and identification
	GetName() string

	// GetProvider returns the provider name for the scraper
	GetProvider() string
}

// Fetcher retrieves a URL and returns a parsed document. Implemented by
// internal/fetch; tests substitute in-memory documents.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*goquery.Document, error)
}

// ProductStore is the storage collaborator boundary the pipeline writes to.
type ProductStore interface {
	Upsert(ctx context.Context, p *Product) error
}
