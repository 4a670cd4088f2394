package storage

import (
	"context"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"productworker/internal/scraper"
)

const (
	productKeyPrefix = "product:"
	productIndexKey  = "products"
)

// RedisStore implements Store on redis: one hash per product plus a set
// index of known external ids.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new redis-backed product store
func NewRedisStore(addr string, db int) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	return &RedisStore{client: client}
}

// Upsert creates or updates the product hash for its external id
func (s *RedisStore) Upsert(ctx context.Context, p *scraper.Product) error {
	key := productKeyPrefix + p.ExternalID

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"external_id": p.ExternalID,
		"title":       p.Title,
		"price":       p.Price,
		"image_url":   p.ImageURL,
		"url":         p.URL,
		"provider":    p.Provider,
		"scraped_at":  p.ScrapedAt.Format(time.RFC3339),
	})
	pipe.SAdd(ctx, productIndexKey, p.ExternalID)
	_, err := pipe.Exec(ctx)
	return err
}

// ListAll returns all stored products, ordered by external id
func (s *RedisStore) ListAll(ctx context.Context) ([]scraper.Product, error) {
	ids, err := s.client.SMembers(ctx, productIndexKey).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)

	products := make([]scraper.Product, 0, len(ids))
	for _, id := range ids {
		p, err := s.FindByExternalID(ctx, id)
		if err == ErrNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, nil
}

// FindByExternalID returns the product for an external id
func (s *RedisStore) FindByExternalID(ctx context.Context, externalID string) (*scraper.Product, error) {
	fields, err := s.client.HGetAll(ctx, productKeyPrefix+externalID).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	scrapedAt, _ := time.Parse(time.RFC3339, fields["scraped_at"])
	return &scraper.Product{
		ExternalID: fields["external_id"],
		Title:      fields["title"],
		Price:      fields["price"],
		ImageURL:   fields["image_url"],
		URL:        fields["url"],
		Provider:   fields["provider"],
		ScrapedAt:  scrapedAt,
	}, nil
}

// Close closes the redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
