package worker

import (
	"context"
	"sync"
	"time"

	"productworker/internal/scraper"
	"productworker/logger"
	"productworker/pkg/errors"
)

// CategoryScraper runs one full category scrape. Satisfied by
// scraper.Pipeline.
type CategoryScraper interface {
	ScrapeCategory(ctx context.Context, categoryURL string) (scraper.Report, error)
}

// PermanentFailureFunc is invoked once per job after every attempt has
// been exhausted or the error is not retryable.
type PermanentFailureFunc func(categoryURL string, err error)

// Worker schedules recurring category scrape jobs. Each configured
// category runs as its own job; categories run concurrently within a
// cycle, cycles repeat on a fixed interval.
type Worker struct {
	pipeline      CategoryScraper
	categoryURLs  []string
	crawlInterval time.Duration
	jobAttempts   int
	jobTimeout    time.Duration
	onPermanent   PermanentFailureFunc
	log           *logger.Logger
}

// NewWorker creates a worker over the given category URLs. onPermanent
// may be nil.
func NewWorker(
	pipeline CategoryScraper,
	categoryURLs []string,
	crawlInterval time.Duration,
	jobAttempts int,
	jobTimeout time.Duration,
	onPermanent PermanentFailureFunc,
) *Worker {
	if jobAttempts <= 0 {
		jobAttempts = 3
	}
	if jobTimeout <= 0 {
		jobTimeout = 300 * time.Second
	}
	return &Worker{
		pipeline:      pipeline,
		categoryURLs:  categoryURLs,
		crawlInterval: crawlInterval,
		jobAttempts:   jobAttempts,
		jobTimeout:    jobTimeout,
		onPermanent:   onPermanent,
		log:           logger.ForComponent("worker"),
	}
}

// Start runs scrape cycles until the context is cancelled
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.crawlInterval)
	defer ticker.Stop()

	w.runCycle(ctx)
	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping")
			return
		case <-ticker.C:
			w.runCycle(ctx)
		}
	}
}

// runCycle scrapes every configured category once, concurrently
func (w *Worker) runCycle(ctx context.Context) {
	start := time.Now()

	var wg sync.WaitGroup
	for _, categoryURL := range w.categoryURLs {
		wg.Add(1)
		go func(categoryURL string) {
			defer wg.Done()
			w.runJob(ctx, categoryURL)
		}(categoryURL)
	}
	wg.Wait()

	w.log.Info().
		Dur("elapsed", time.Since(start)).
		Int("categories", len(w.categoryURLs)).
		Msg("Scrape cycle finished")
}

// runJob executes one category scrape with retries. Only retryable
// errors earn another attempt; anything else fails the job immediately.
func (w *Worker) runJob(ctx context.Context, categoryURL string) {
	var lastErr error

	for attempt := 1; attempt <= w.jobAttempts; attempt++ {
		report, err := w.attempt(ctx, categoryURL)
		if err == nil {
			w.log.Info().
				Str("url", categoryURL).
				Int("attempt", attempt).
				Int("total", report.Total).
				Int("succeeded", report.Succeeded).
				Int("failed", report.Failed).
				Msg("Category job succeeded")
			return
		}
		lastErr = err

		if ctx.Err() != nil {
			return
		}
		if !errors.IsRetryable(err) {
			break
		}
		w.log.Warn().
			Str("url", categoryURL).
			Int("attempt", attempt).
			Err(err).
			Msg("Category job attempt failed, retrying")
	}

	w.log.Error().
		Str("url", categoryURL).
		Err(lastErr).
		Msg("Category job failed permanently")
	if w.onPermanent != nil {
		w.onPermanent(categoryURL, lastErr)
	}
}

func (w *Worker) attempt(ctx context.Context, categoryURL string) (scraper.Report, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, w.jobTimeout)
	defer cancel()
	return w.pipeline.ScrapeCategory(attemptCtx, categoryURL)
}
