package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"productworker/internal/scraper"
	"productworker/logger"
	"productworker/services/storage"
)

// Handlers serves the read-only product API backed by the store.
type Handlers struct {
	store   storage.Store
	metrics *scraper.Metrics
	log     *logger.Logger
}

func NewHandlers(store storage.Store, metrics *scraper.Metrics) *Handlers {
	return &Handlers{
		store:   store,
		metrics: metrics,
		log:     logger.ForComponent("api"),
	}
}

// Router builds the chi router with all routes mounted
func (h *Handlers) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", h.handleHealth)
	r.Get("/products", h.handleListProducts)
	r.Get("/products/{externalID}", h.handleGetProduct)
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.metrics.Registry, promhttp.HandlerOpts{}))
	}

	return r
}

func (h *Handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.ListAll(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Listing products failed")
		h.respondError(w, http.StatusInternalServerError, "failed to list products")
		return
	}
	if products == nil {
		products = []scraper.Product{}
	}
	h.respondJSON(w, http.StatusOK, products)
}

func (h *Handlers) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	externalID := chi.URLParam(r, "externalID")

	product, err := h.store.FindByExternalID(r.Context(), externalID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.respondError(w, http.StatusNotFound, "product not found")
			return
		}
		h.log.Error().Err(err).Str("external_id", externalID).Msg("Product lookup failed")
		h.respondError(w, http.StatusInternalServerError, "failed to load product")
		return
	}
	h.respondJSON(w, http.StatusOK, product)
}

func (h *Handlers) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error().Err(err).Msg("Writing response failed")
	}
}

func (h *Handlers) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
