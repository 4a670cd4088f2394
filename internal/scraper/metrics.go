package scraper

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the scraping pipeline.
type Metrics struct {
	Registry             *prometheus.Registry
	ProductsScrapedTotal *prometheus.CounterVec
	ItemFailuresTotal    *prometheus.CounterVec
	CategoryRunsTotal    *prometheus.CounterVec
	CategoryDuration     prometheus.Histogram
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	productsScraped := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_products_scraped_total",
			Help: "Products successfully extracted and stored, by provider.",
		},
		[]string{"provider"},
	)
	itemFailures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_item_failures_total",
			Help: "Per-product failures during category fan-out, by error type.",
		},
		[]string{"error_type"},
	)
	categoryRuns := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scraper_category_runs_total",
			Help: "Category pipeline runs, by outcome.",
		},
		[]string{"outcome"},
	)
	categoryDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scraper_category_duration_seconds",
			Help:    "Wall time of a full category scrape.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)

	registry.MustRegister(productsScraped, itemFailures, categoryRuns, categoryDuration)

	return &Metrics{
		Registry:             registry,
		ProductsScrapedTotal: productsScraped,
		ItemFailuresTotal:    itemFailures,
		CategoryRunsTotal:    categoryRuns,
		CategoryDuration:     categoryDuration,
	}
}

// IncProduct increments the stored-products counter for a provider.
func (m *Metrics) IncProduct(provider string) {
	if m == nil {
		return
	}
	m.ProductsScrapedTotal.WithLabelValues(provider).Inc()
}

// IncItemFailure increments the per-item failure counter for an error type.
func (m *Metrics) IncItemFailure(errorType string) {
	if m == nil {
		return
	}
	m.ItemFailuresTotal.WithLabelValues(errorType).Inc()
}

// IncCategoryRun increments the category run counter for an outcome.
func (m *Metrics) IncCategoryRun(outcome string) {
	if m == nil {
		return
	}
	m.CategoryRunsTotal.WithLabelValues(outcome).Inc()
}

// ObserveCategoryDuration records the wall time of a category run.
func (m *Metrics) ObserveCategoryDuration(seconds float64) {
	if m == nil {
		return
	}
	m.CategoryDuration.Observe(seconds)
}
