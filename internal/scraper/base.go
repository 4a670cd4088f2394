package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"

	"productworker/logger"
	"productworker/pkg/errors"
	"productworker/services/cache"
)

// BaseScraper provides the fetch path shared by all site scrapers: a
// rate-limit cool-off check before the request and a block window after a
// rate-limited response.
type BaseScraper struct {
	Fetcher   Fetcher
	CacheSvc  cache.CacheService
	CacheKey  string
	BlockTime time.Duration
	Provider  string
}

// fetchDocument fetches a URL honoring the provider's cool-off window
func (b *BaseScraper) fetchDocument(ctx context.Context, rawURL string) (*goquery.Document, error) {
	if b.CacheSvc != nil && b.CacheKey != "" {
		if _, err := b.CacheSvc.Get(b.CacheKey); err == nil {
			return nil, errors.NewRateLimit(b.Provider, rawURL, 0)
		}
	}

	doc, err := b.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		if errors.IsType(err, errors.ErrorTypeRateLimit) && b.CacheSvc != nil && b.CacheKey != "" {
			blockSeconds := []byte(fmt.Sprintf("%d", int(b.BlockTime/time.Second)))
			if setErr := b.CacheSvc.Set(b.CacheKey, blockSeconds, b.BlockTime); setErr != nil {
				// The rate-limit error stays authoritative; a failed
				// block write only costs the cool-off window
				logger.Warn("Failed to set block window for %s: %v", b.Provider, setErr)
			}
		}
		return nil, err
	}

	return doc, nil
}
