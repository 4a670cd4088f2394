package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"productworker/config"
	"productworker/internal/fetch"
	"productworker/internal/scraper"
	"productworker/services/cache"
	"productworker/services/proxy"
	"productworker/services/storage"
)

// scrape fetches a single product page, upserts the extracted record
// into the configured store, and prints it as JSON. Exits non-zero on
// any failure so shell pipelines can branch on the outcome.
func main() {
	godotenv.Load()

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s <product-url>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	rawURL := flag.Arg(0)

	cfg := config.LoadConfig()

	pool, err := proxy.LoadPool(cfg.ProxyFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading proxy pool: %v\n", err)
		os.Exit(1)
	}

	store := storage.NewRedisStore(cfg.RedisAddr, cfg.RedisDB)
	defer store.Close()

	fetcher := fetch.NewClient(pool, cfg.FetchTimeout, cfg.FetchInsecureTLS)
	registry := scraper.NewRegistry(scraper.NewScrapers(fetcher, cache.NewLRUService(64)))
	pipeline := scraper.NewPipeline(registry, store, nil)

	if err := run(pipeline, rawURL, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run scrapes and stores one product, then prints the persisted record
func run(pipeline *scraper.Pipeline, rawURL string, out io.Writer) error {
	product, err := pipeline.ScrapeOne(context.Background(), rawURL)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(product)
}
