package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents the application configuration
type Config struct {
	// Redis configuration (product store)
	RedisAddr string
	RedisDB   int

	// Memcache configuration (rate-limit cool-off cache); empty means
	// an in-process cache is used instead
	MemcacheAddr string

	// Proxy pool source file; absence of the file means "no proxies"
	ProxyFile string

	// HTTP API
	HTTPAddr string

	// Scrape targets and scheduling
	CategoryURLs  []string
	CrawlInterval time.Duration

	// Job execution
	JobAttempts int
	JobTimeout  time.Duration

	// Fetch layer
	FetchTimeout     time.Duration
	FetchInsecureTLS bool

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	crawlInterval, _ := strconv.Atoi(getEnv("CRAWL_INTERVAL_SECONDS", "300"))
	jobAttempts, _ := strconv.Atoi(getEnv("JOB_ATTEMPTS", "3"))
	jobTimeout, _ := strconv.Atoi(getEnv("JOB_TIMEOUT_SECONDS", "300"))
	fetchTimeout, _ := strconv.Atoi(getEnv("FETCH_TIMEOUT_SECONDS", "15"))
	insecureTLS, _ := strconv.ParseBool(getEnv("FETCH_INSECURE_TLS", "false"))

	return &Config{
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:          redisDB,
		MemcacheAddr:     getEnv("MEMCACHE_ADDR", ""),
		ProxyFile:        getEnv("PROXY_FILE", "proxies.txt"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		CategoryURLs:     splitList(getEnv("CATEGORY_URLS", "")),
		CrawlInterval:    time.Duration(crawlInterval) * time.Second,
		JobAttempts:      jobAttempts,
		JobTimeout:       time.Duration(jobTimeout) * time.Second,
		FetchTimeout:     time.Duration(fetchTimeout) * time.Second,
		FetchInsecureTLS: insecureTLS,
		Environment:      getEnv("SCRAPER_ENVIRONMENT", "development"),
	}
}

// Validate ensures the configuration values are coherent
func (c *Config) Validate() error {
	if c.RedisAddr == "" {
		return fmt.Errorf("redis address cannot be empty")
	}
	if c.CrawlInterval <= 0 {
		return fmt.Errorf("crawl interval must be positive")
	}
	if c.JobAttempts <= 0 {
		return fmt.Errorf("job attempts must be positive")
	}
	if c.JobTimeout <= 0 {
		return fmt.Errorf("job timeout must be positive")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive")
	}
	for _, raw := range c.CategoryURLs {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid category url: %q", raw)
		}
	}
	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// splitList splits a comma-separated env value, dropping empty entries
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
