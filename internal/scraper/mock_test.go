package scraper

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"productworker/pkg/errors"
)

// MockFetcher serves in-memory HTML keyed by URL
type MockFetcher struct {
	pages  map[string]string
	errs   map[string]error
	visits []string
}

func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		pages: make(map[string]string),
		errs:  make(map[string]error),
	}
}

func (m *MockFetcher) AddPage(url, html string) {
	m.pages[url] = html
}

func (m *MockFetcher) FailWith(url string, err error) {
	m.errs[url] = err
}

func (m *MockFetcher) Fetch(ctx context.Context, rawURL string) (*goquery.Document, error) {
	m.visits = append(m.visits, rawURL)
	if err, ok := m.errs[rawURL]; ok {
		return nil, err
	}
	html, ok := m.pages[rawURL]
	if !ok {
		return nil, errors.NewFetch(rawURL, 404)
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// MockCacheService implements a simple in-memory cache for testing
type MockCacheService struct {
	cache map[string][]byte
}

func NewMockCacheService() *MockCacheService {
	return &MockCacheService{
		cache: make(map[string][]byte),
	}
}

func (m *MockCacheService) Get(key string) ([]byte, error) {
	if val, ok := m.cache[key]; ok {
		return val, nil
	}
	return nil, &mockError{message: "cache miss"}
}

func (m *MockCacheService) Set(key string, value []byte, expiration time.Duration) error {
	m.cache[key] = value
	return nil
}

func (m *MockCacheService) Delete(key string) error {
	delete(m.cache, key)
	return nil
}

type mockError struct {
	message string
}

func (e *mockError) Error() string {
	return e.message
}

// brokenCacheService fails every write, simulating an unreachable cache
type brokenCacheService struct {
	setCalled bool
}

func (b *brokenCacheService) Get(key string) ([]byte, error) {
	return nil, &mockError{message: "cache miss"}
}

func (b *brokenCacheService) Set(key string, value []byte, expiration time.Duration) error {
	b.setCalled = true
	return &mockError{message: "cache unreachable"}
}

func (b *brokenCacheService) Delete(key string) error {
	return &mockError{message: "cache unreachable"}
}
