package cache

import (
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ErrCacheMiss is returned when a key is absent or expired.
var ErrCacheMiss = errors.New("cache: miss")

type lruEntry struct {
	value     []byte
	expiresAt time.Time
}

// LRUService implements CacheService with an in-process expirable LRU.
// Used when no memcache address is configured.
type LRUService struct {
	lru *expirable.LRU[string, lruEntry]
}

// NewLRUService creates an in-process cache holding up to size entries.
func NewLRUService(size int) *LRUService {
	if size <= 0 {
		size = 1024
	}
	return &LRUService{
		// Per-entry TTLs are enforced in Get; the LRU's own TTL is unset.
		lru: expirable.NewLRU[string, lruEntry](size, nil, 0),
	}
}

// Get retrieves a value, honoring the per-entry expiration
func (s *LRUService) Get(key string) ([]byte, error) {
	entry, ok := s.lru.Get(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		s.lru.Remove(key)
		return nil, ErrCacheMiss
	}
	return entry.value, nil
}

// Set stores a value with an expiration time
func (s *LRUService) Set(key string, value []byte, expiration time.Duration) error {
	entry := lruEntry{value: value}
	if expiration > 0 {
		entry.expiresAt = time.Now().Add(expiration)
	}
	s.lru.Add(key, entry)
	return nil
}

// Delete removes a value
func (s *LRUService) Delete(key string) error {
	s.lru.Remove(key)
	return nil
}
