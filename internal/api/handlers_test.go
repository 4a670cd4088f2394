package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productworker/internal/scraper"
	"productworker/services/storage"
)

func seededHandlers(t *testing.T) *Handlers {
	t.Helper()
	store := storage.NewMemoryStore()
	products := []scraper.Product{
		{ExternalID: "B08GLX7TNT", Title: "Samsung 980 PRO 1TB", Price: "$119.99", Provider: "Amazon", ScrapedAt: time.Now()},
		{ExternalID: "4521098", Title: "Generic Android Phone", Price: "₦ 52,300", Provider: "Jumia", ScrapedAt: time.Now()},
	}
	for i := range products {
		require.NoError(t, store.Upsert(context.Background(), &products[i]))
	}
	return NewHandlers(store, scraper.NewMetrics())
}

func TestListProducts(t *testing.T) {
	handlers := seededHandlers(t)

	rec := httptest.NewRecorder()
	handlers.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got []scraper.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "B08GLX7TNT", got[0].ExternalID)
	assert.Equal(t, "4521098", got[1].ExternalID)
}

func TestListProductsEmptyStore(t *testing.T) {
	handlers := NewHandlers(storage.NewMemoryStore(), nil)

	rec := httptest.NewRecorder()
	handlers.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestGetProduct(t *testing.T) {
	handlers := seededHandlers(t)

	rec := httptest.NewRecorder()
	handlers.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/B08GLX7TNT", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var got scraper.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Samsung 980 PRO 1TB", got.Title)
}

func TestGetProductNotFound(t *testing.T) {
	handlers := seededHandlers(t)

	rec := httptest.NewRecorder()
	handlers.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"product not found"}`, rec.Body.String())
}

func TestHealthz(t *testing.T) {
	handlers := seededHandlers(t)

	rec := httptest.NewRecorder()
	handlers.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	handlers := seededHandlers(t)

	rec := httptest.NewRecorder()
	handlers.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
