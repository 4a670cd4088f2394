package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"productworker/internal/scraper"
)

func TestMemoryStoreUpsert(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	p := &scraper.Product{
		ExternalID: "B08N5WRWNW",
		Title:      "Portable SSD 1TB",
		Price:      "$99.99",
		ImageURL:   "https://img.example.com/ssd.jpg",
		URL:        "https://www.amazon.com/dp/B08N5WRWNW",
		Provider:   "Amazon",
		ScrapedAt:  time.Now(),
	}
	assert.NoError(t, store.Upsert(ctx, p))

	got, err := store.FindByExternalID(ctx, "B08N5WRWNW")
	assert.NoError(t, err)
	assert.Equal(t, "Portable SSD 1TB", got.Title)

	// Second upsert with the same id updates in place
	p2 := *p
	p2.Price = "$89.99"
	assert.NoError(t, store.Upsert(ctx, &p2))

	all, err := store.ListAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, "$89.99", all[0].Price)
}

func TestMemoryStoreNotFound(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.FindByExternalID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStorePreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for _, id := range []string{"c", "a", "b"} {
		assert.NoError(t, store.Upsert(ctx, &scraper.Product{ExternalID: id, Title: "t-" + id}))
	}

	all, err := store.ListAll(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "c", all[0].ExternalID)
	assert.Equal(t, "a", all[1].ExternalID)
	assert.Equal(t, "b", all[2].ExternalID)
}
