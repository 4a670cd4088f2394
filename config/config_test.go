package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	// Test with default values
	config := LoadConfig()
	assert.Equal(t, "localhost:6379", config.RedisAddr)
	assert.Equal(t, 0, config.RedisDB)
	assert.Equal(t, "", config.MemcacheAddr)
	assert.Equal(t, "proxies.txt", config.ProxyFile)
	assert.Equal(t, 300*time.Second, config.CrawlInterval)
	assert.Equal(t, 3, config.JobAttempts)
	assert.Equal(t, 300*time.Second, config.JobTimeout)
	assert.Equal(t, 15*time.Second, config.FetchTimeout)
	assert.False(t, config.FetchInsecureTLS)
	assert.Empty(t, config.CategoryURLs)

	// Test with environment variables
	os.Setenv("REDIS_ADDR", "redis.example.com:6379")
	os.Setenv("REDIS_DB", "1")
	os.Setenv("MEMCACHE_ADDR", "memcache.example.com:11211")
	os.Setenv("CRAWL_INTERVAL_SECONDS", "30")
	os.Setenv("CATEGORY_URLS", "https://www.amazon.com/s?k=ssd, https://www.jumia.com.ng/phones/")
	os.Setenv("FETCH_INSECURE_TLS", "true")

	config = LoadConfig()
	assert.Equal(t, "redis.example.com:6379", config.RedisAddr)
	assert.Equal(t, 1, config.RedisDB)
	assert.Equal(t, "memcache.example.com:11211", config.MemcacheAddr)
	assert.Equal(t, 30*time.Second, config.CrawlInterval)
	assert.Equal(t, []string{"https://www.amazon.com/s?k=ssd", "https://www.jumia.com.ng/phones/"}, config.CategoryURLs)
	assert.True(t, config.FetchInsecureTLS)

	// Clean up
	os.Unsetenv("REDIS_ADDR")
	os.Unsetenv("REDIS_DB")
	os.Unsetenv("MEMCACHE_ADDR")
	os.Unsetenv("CRAWL_INTERVAL_SECONDS")
	os.Unsetenv("CATEGORY_URLS")
	os.Unsetenv("FETCH_INSECURE_TLS")
}

func TestValidate(t *testing.T) {
	config := LoadConfig()
	assert.NoError(t, config.Validate())

	config.CategoryURLs = []string{"not a url"}
	assert.Error(t, config.Validate())

	config = LoadConfig()
	config.JobAttempts = 0
	assert.Error(t, config.Validate())

	config = LoadConfig()
	config.RedisAddr = ""
	assert.Error(t, config.Validate())
}
