package proxy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPoolFiltersInvalidEndpoints(t *testing.T) {
	pool := NewPool([]string{
		"http://185.217.143.123:3128",
		"https://proxy.example.com:8080",
		"socks5://1.2.3.4:1080",    // wrong scheme
		"http://no-port.example",   // missing port
		"http://1.2.3.4:80/extra",  // trailing path
		"  http://9.9.9.9:3128  ",  // whitespace is trimmed
		"",
		"# comment line",
	})

	assert.Equal(t, 3, pool.Count())
	assert.Equal(t, []string{
		"http://185.217.143.123:3128",
		"https://proxy.example.com:8080",
		"http://9.9.9.9:3128",
	}, pool.All())
}

func TestRandomSelection(t *testing.T) {
	pool := NewPool([]string{
		"http://1.1.1.1:3128",
		"http://2.2.2.2:3128",
	})

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		endpoint, ok := pool.Random()
		assert.True(t, ok)
		seen[endpoint] = true
	}
	// Both endpoints should show up over 100 draws
	assert.Len(t, seen, 2)
}

func TestEmptyPool(t *testing.T) {
	pool := NewPool(nil)

	endpoint, ok := pool.Random()
	assert.False(t, ok)
	assert.Empty(t, endpoint)
	assert.Nil(t, pool.RandomURL())
	assert.Equal(t, 0, pool.Count())
}

func TestLoadPoolMissingFile(t *testing.T) {
	pool, err := LoadPool(filepath.Join(t.TempDir(), "nope.txt"))
	assert.NoError(t, err)
	assert.Equal(t, 0, pool.Count())

	_, ok := pool.Random()
	assert.False(t, ok)
}

func TestLoadPoolFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proxies.txt")
	content := "http://185.217.143.123:3128\nnot-a-proxy\nhttps://91.214.31.234:8080\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	pool, err := LoadPool(path)
	assert.NoError(t, err)
	assert.Equal(t, 2, pool.Count())

	u := pool.RandomURL()
	assert.NotNil(t, u)
	assert.Contains(t, []string{"http", "https"}, u.Scheme)
}
