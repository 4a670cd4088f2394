package scraper

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"productworker/helpers"
	"productworker/internal/fetch"
	"productworker/pkg/errors"
	"productworker/services/cache"
)

// FieldSelector is one step of an ordered selector chain. An empty Attr
// means the element's text content is used.
type FieldSelector struct {
	Selector string
	Attr     string
}

// Selectors contains the platform-specific structural selectors
type Selectors struct {
	Title []FieldSelector
	Price []FieldSelector
	Image []FieldSelector

	// Listing pages: item containers, the anchor within each, and the
	// path fragment a real product link must contain
	ProductList       string
	ProductLink       string
	ProductPathMarker string
}

// SiteConfig contains the configuration for one platform
type SiteConfig struct {
	Provider  string
	Hosts     []string
	BaseURL   string
	Selectors Selectors
	IDPattern *regexp.Regexp
	CacheKey  string
	BlockTime int
}

// SiteScraper is a selector-config-driven scraper. One instance per
// platform; adding a platform means adding a SiteConfig in the factory.
type SiteScraper struct {
	BaseScraper
	config SiteConfig
}

// NewSiteScraper creates a scraper for one platform configuration
func NewSiteScraper(config SiteConfig, fetcher Fetcher, cacheSvc cache.CacheService) *SiteScraper {
	return &SiteScraper{
		BaseScraper: BaseScraper{
			Fetcher:   fetcher,
			CacheSvc:  cacheSvc,
			CacheKey:  config.CacheKey,
			BlockTime: time.Duration(config.BlockTime) * time.Second,
			Provider:  config.Provider,
		},
		config: config,
	}
}

// GetName returns the scraper name
func (s *SiteScraper) GetName() string {
	return s.config.Provider + "Scraper"
}

// GetProvider returns the provider name
func (s *SiteScraper) GetProvider() string {
	return s.config.Provider
}

// Supports reports whether the URL's host belongs to this platform. Purely
// syntactic; unparseable URLs are simply not supported.
func (s *SiteScraper) Supports(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range s.config.Hosts {
		if strings.Contains(host, h) {
			return true
		}
	}
	return false
}

// ScrapeProduct fetches a product page and extracts its record. A page
// missing any of title, price, or image fails as a whole; there is no
// partial product record.
func (s *SiteScraper) ScrapeProduct(ctx context.Context, rawURL string) (*Product, error) {
	doc, err := s.fetchDocument(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return s.ExtractProduct(doc, rawURL)
}

// ExtractProduct extracts a product record from an already fetched document
func (s *SiteScraper) ExtractProduct(doc *goquery.Document, rawURL string) (*Product, error) {
	title := s.extractField(doc, s.config.Selectors.Title)
	if title == "" {
		return nil, errors.NewExtraction(s.config.Provider, rawURL, "title not found")
	}

	price := s.extractField(doc, s.config.Selectors.Price)
	if price == "" {
		return nil, errors.NewExtraction(s.config.Provider, rawURL, "price not found")
	}

	image := s.extractField(doc, s.config.Selectors.Image)
	if image == "" {
		return nil, errors.NewExtraction(s.config.Provider, rawURL, "image not found")
	}

	return &Product{
		ExternalID: s.externalID(rawURL),
		Title:      title,
		Price:      price,
		ImageURL:   helpers.ResolveHref(s.config.BaseURL, image),
		URL:        rawURL,
		Provider:   s.config.Provider,
		ScrapedAt:  time.Now(),
	}, nil
}

// CategoryLinks fetches a listing page and returns product URLs in page
// order. Duplicates pass through; the storage upsert absorbs re-scrapes.
func (s *SiteScraper) CategoryLinks(ctx context.Context, rawURL string) ([]string, error) {
	doc, err := s.fetchDocument(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return s.ExtractCategoryLinks(doc), nil
}

// ExtractCategoryLinks extracts product URLs from a fetched listing document
func (s *SiteScraper) ExtractCategoryLinks(doc *goquery.Document) []string {
	var links []string
	doc.Find(s.config.Selectors.ProductList).Each(func(i int, item *goquery.Selection) {
		href, exists := item.Find(s.config.Selectors.ProductLink).First().Attr("href")
		if !exists {
			// The item container may itself be the anchor
			if item.Is("a") {
				href, exists = item.Attr("href")
			}
			if !exists {
				return
			}
		}

		link := helpers.ResolveHref(s.config.BaseURL, href)
		if link == "" {
			return
		}
		if s.config.Selectors.ProductPathMarker != "" &&
			!strings.Contains(link, s.config.Selectors.ProductPathMarker) {
			return
		}
		links = append(links, helpers.StripQuery(link))
	})
	return links
}

// externalID derives the platform ID from the URL path, falling back to a
// deterministic digest of the full URL when the pattern does not match.
func (s *SiteScraper) externalID(rawURL string) string {
	if s.config.IDPattern != nil {
		path := rawURL
		if u, err := url.Parse(rawURL); err == nil {
			path = u.Path
		}
		if match := s.config.IDPattern.FindStringSubmatch(path); len(match) > 1 {
			return match[1]
		}
	}
	return helpers.HashID(rawURL)
}

// extractField walks an ordered selector chain, first non-empty match wins
func (s *SiteScraper) extractField(doc *goquery.Document, chain []FieldSelector) string {
	for _, fs := range chain {
		sel := doc.Find(fs.Selector).First()
		if sel.Length() == 0 {
			continue
		}

		var value string
		if fs.Attr != "" {
			value, _ = sel.Attr(fs.Attr)
		} else {
			value = sel.Text()
		}

		value = strings.TrimSpace(value)
		if value != "" {
			return value
		}
	}
	return ""
}

var _ Scraper = (*SiteScraper)(nil)
var _ Fetcher = (*fetch.Client)(nil)
