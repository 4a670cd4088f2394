package scraper

import (
	"context"
	"time"

	"productworker/logger"
	"productworker/pkg/errors"
)

// Report aggregates the outcome of one category run. External schedulers
// use it for retry and alerting decisions.
type Report struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Pipeline orchestrates the category fan-out: resolve a scraper, collect
// product links, then fetch, extract and store each product. Products are
// processed strictly in page-listing order, one at a time, each completing
// before the next begins.
type Pipeline struct {
	registry *Registry
	store    ProductStore
	metrics  *Metrics
	log      *logger.Logger
}

// NewPipeline creates a pipeline writing to the given store
func NewPipeline(registry *Registry, store ProductStore, metrics *Metrics) *Pipeline {
	return &Pipeline{
		registry: registry,
		store:    store,
		metrics:  metrics,
		log:      logger.ForComponent("pipeline"),
	}
}

// ScrapeCategory runs a full category scrape. Failures before the fan-out
// (resolution, category fetch, link extraction) propagate to the caller;
// a failure on one product is logged, counted, and never aborts the run.
// Records stream to the store as they are produced.
func (p *Pipeline) ScrapeCategory(ctx context.Context, categoryURL string) (Report, error) {
	start := time.Now()

	s, err := p.registry.Resolve(categoryURL)
	if err != nil {
		p.metrics.IncCategoryRun("failed")
		return Report{}, err
	}

	links, err := s.CategoryLinks(ctx, categoryURL)
	if err != nil {
		p.metrics.IncCategoryRun("failed")
		return Report{}, err
	}

	report := Report{Total: len(links)}
	for _, link := range links {
		if ctx.Err() != nil {
			p.metrics.IncCategoryRun("cancelled")
			return report, errors.NewNetwork(categoryURL, ctx.Err())
		}
		if err := p.scrapeAndStore(ctx, s, link); err != nil {
			report.Failed++
			p.metrics.IncItemFailure(string(errors.TypeOf(err)))
			p.log.Warn().
				Str("provider", s.GetProvider()).
				Str("url", link).
				Err(err).
				Msg("Product scrape failed, continuing")
			continue
		}
		report.Succeeded++
	}

	p.metrics.IncCategoryRun("completed")
	p.metrics.ObserveCategoryDuration(time.Since(start).Seconds())
	p.log.Info().
		Str("provider", s.GetProvider()).
		Str("url", categoryURL).
		Int("total", report.Total).
		Int("succeeded", report.Succeeded).
		Int("failed", report.Failed).
		Msg("Category scrape finished")

	return report, nil
}

// ScrapeOne scrapes and stores a single product. Unlike the category
// fan-out there is no containment; any failure propagates.
func (p *Pipeline) ScrapeOne(ctx context.Context, rawURL string) (*Product, error) {
	s, err := p.registry.Resolve(rawURL)
	if err != nil {
		return nil, err
	}

	product, err := s.ScrapeProduct(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	if err := p.store.Upsert(ctx, product); err != nil {
		return nil, errors.NewStorage("upsert failed", err)
	}

	p.metrics.IncProduct(product.Provider)
	return product, nil
}

func (p *Pipeline) scrapeAndStore(ctx context.Context, s Scraper, link string) error {
	product, err := s.ScrapeProduct(ctx, link)
	if err != nil {
		return err
	}
	if err := p.store.Upsert(ctx, product); err != nil {
		return errors.NewStorage("upsert failed", err)
	}
	p.metrics.IncProduct(product.Provider)
	return nil
}
