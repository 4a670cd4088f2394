package scraper

import (
	"regexp"

	"productworker/services/cache"
)

// amazonIDPattern captures the ASIN from /dp/ or /gp/product/ paths
var amazonIDPattern = regexp.MustCompile(`/(?:dp|gp/product)/([A-Z0-9]{10})`)

// jumiaIDPattern captures the numeric SKU ending a Jumia product path
var jumiaIDPattern = regexp.MustCompile(`-(\d+)\.html$`)

// NewScrapers creates the platform scrapers in registration order. First
// match wins during resolution, so earlier entries are authoritative on
// (unexpected) host overlap.
func NewScrapers(fetcher Fetcher, cacheSvc cache.CacheService) []Scraper {
	configurations := []SiteConfig{
		{
			Provider:  "Amazon",
			Hosts:     []string{"amazon."},
			BaseURL:   "https://www.amazon.com",
			CacheKey:  "amazon_rate_limited",
			BlockTime: 300,
			IDPattern: amazonIDPattern,
			Selectors: Selectors{
				Title: []FieldSelector{
					{Selector: "#productTitle"},
					{Selector: "span#title"},
				},
				Price: []FieldSelector{
					{Selector: "span.a-price span.a-offscreen"},
					{Selector: "#priceblock_ourprice"},
					{Selector: "#priceblock_dealprice"},
				},
				Image: []FieldSelector{
					{Selector: "#landingImage", Attr: "data-old-hires"},
					{Selector: "#landingImage", Attr: "src"},
					{Selector: "#imgBlkFront", Attr: "src"},
				},
				ProductList:       "div.s-result-item",
				ProductLink:       "a.a-link-normal",
				ProductPathMarker: "/dp/",
			},
		},
		{
			Provider:  "Jumia",
			Hosts:     []string{"jumia."},
			BaseURL:   "https://www.jumia.com.ng",
			CacheKey:  "jumia_rate_limited",
			BlockTime: 300,
			IDPattern: jumiaIDPattern,
			Selectors: Selectors{
				Title: []FieldSelector{
					{Selector: "h1.-fs20"},
					{Selector: "h1"},
				},
				Price: []FieldSelector{
					{Selector: "span.-b.-ltr.-tal.-fs24"},
					{Selector: "span.-b.-ubpt"},
					{Selector: "div.-hr span.-b"},
				},
				Image: []FieldSelector{
					{Selector: "img.-fw.-fh", Attr: "data-src"},
					{Selector: "img.-fw.-fh", Attr: "src"},
					{Selector: "#imgs img", Attr: "data-src"},
				},
				ProductList:       "article.prd",
				ProductLink:       "a.core",
				ProductPathMarker: ".html",
			},
		},
	}

	var scrapers []Scraper
	for _, config := range configurations {
		scrapers = append(scrapers, NewSiteScraper(config, fetcher, cacheSvc))
	}
	return scrapers
}
