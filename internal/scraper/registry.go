package scraper

import (
	"net/url"
	"strings"

	"productworker/pkg/errors"
)

// Registry dispatches URLs to the scraper that supports them. Resolution is
// an ordered linear scan; first match wins. The scraper list is immutable
// after construction and safe for concurrent readers.
type Registry struct {
	scrapers []Scraper
}

// NewRegistry creates a registry with scrapers in registration order
func NewRegistry(scrapers []Scraper) *Registry {
	return &Registry{scrapers: scrapers}
}

// Resolve returns the first scraper whose Supports matches the URL.
// Malformed URLs fail with an invalid-input error before any scraper is
// consulted; no match fails with an unsupported-source error.
func (r *Registry) Resolve(rawURL string) (Scraper, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}
	for _, s := range r.scrapers {
		if s.Supports(rawURL) {
			return s, nil
		}
	}
	return nil, errors.NewUnsupportedSource(rawURL)
}

// IsSupported reports whether any scraper handles the URL. Never fails:
// malformed input counts as unsupported.
func (r *Registry) IsSupported(rawURL string) bool {
	_, err := r.Resolve(rawURL)
	return err == nil
}

// Count returns the number of registered scrapers
func (r *Registry) Count() int {
	return len(r.scrapers)
}

// All returns the registered scrapers in registration order
func (r *Registry) All() []Scraper {
	out := make([]Scraper, len(r.scrapers))
	copy(out, r.scrapers)
	return out
}

// validateURL performs the basic syntactic check shared by Resolve paths
func validateURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return errors.NewInvalidInput(rawURL, "url is empty")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return errors.NewInvalidInput(rawURL, "url is malformed")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.NewInvalidInput(rawURL, "url scheme must be http or https")
	}
	if u.Host == "" {
		return errors.NewInvalidInput(rawURL, "url has no host")
	}
	return nil
}
