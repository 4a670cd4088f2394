package proxy

import (
	"bufio"
	"math/rand"
	"net/url"
	"os"
	"regexp"
	"strings"

	"productworker/logger"
)

// endpointPattern matches protocol://host:port with nothing else
var endpointPattern = regexp.MustCompile(`^https?://[^:]+:\d+$`)

// Pool holds a fixed set of egress proxy endpoints. The set is loaded once
// and read-only afterwards; selection is uniformly random with no health
// state, so an empty pool simply means requests go out directly.
type Pool struct {
	endpoints []string
}

// NewPool creates a pool from an in-memory endpoint list, dropping any
// entry that does not match the endpoint pattern.
func NewPool(endpoints []string) *Pool {
	p := &Pool{}
	for _, e := range endpoints {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !endpointPattern.MatchString(e) {
			logger.Debug("Skipping invalid proxy endpoint: %s", e)
			continue
		}
		p.endpoints = append(p.endpoints, e)
	}
	return p
}

// LoadPool reads a pool from a file with one endpoint per line. A missing
// file is not an error, merely an empty pool.
func LoadPool(path string) (*Pool, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("Proxy file %s not found, running without proxies", path)
			return &Pool{}, nil
		}
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	pool := NewPool(lines)
	logger.Info("Loaded %d proxy endpoints from %s", pool.Count(), path)
	return pool, nil
}

// Random returns a uniformly random endpoint. ok is false when the pool is
// empty; callers must then fetch without a proxy rather than fail.
func (p *Pool) Random() (string, bool) {
	if len(p.endpoints) == 0 {
		return "", false
	}
	return p.endpoints[rand.Intn(len(p.endpoints))], true
}

// RandomURL returns a random endpoint as a parsed URL, or nil for an empty pool.
func (p *Pool) RandomURL() *url.URL {
	endpoint, ok := p.Random()
	if !ok {
		return nil
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil
	}
	return u
}

// All returns the valid endpoints in load order.
func (p *Pool) All() []string {
	out := make([]string, len(p.endpoints))
	copy(out, p.endpoints)
	return out
}

// Count returns the number of valid endpoints.
func (p *Pool) Count() int {
	return len(p.endpoints)
}
