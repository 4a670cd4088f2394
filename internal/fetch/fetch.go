package fetch

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	mathrand "math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"productworker/logger"
	"productworker/pkg/errors"
	"productworker/services/proxy"
)

// Browser identities rotated per call to blunt trivial bot fingerprinting
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36",
}

// Client performs proxied GETs and returns parsed documents. A fresh proxy
// is selected from the pool on every request, with no stickiness across
// calls; an empty pool means requests go out directly.
type Client struct {
	client *http.Client
	log    *logger.Logger
}

// NewClient creates a fetch client. insecureTLS disables certificate
// verification for targets with broken certificates; it is opt-in.
func NewClient(pool *proxy.Pool, timeout time.Duration, insecureTLS bool) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	transport := &http.Transport{
		Proxy: func(*http.Request) (*url.URL, error) {
			if pool == nil {
				return nil, nil
			}
			return pool.RandomURL(), nil
		},
	}
	if insecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Client{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		log: logger.ForComponent("fetch"),
	}
}

// Fetch sends an HTTP GET with browser-like headers, converts the response
// body to UTF-8 if needed, and returns it as a parsed document.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.NewInvalidInput(rawURL, "cannot build request")
	}

	req.Header.Set("User-Agent", userAgents[mathrand.Intn(len(userAgents))])
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Connection", "keep-alive")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.NewNetwork(rawURL, err)
	}
	defer resp.Body.Close()

	// 430 shows up on some storefronts as a nonstandard throttle status
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == 430 {
		return nil, errors.NewRateLimit("", rawURL, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewFetch(rawURL, resp.StatusCode)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewNetwork(rawURL, err)
	}

	utf8Body, err := toUTF8(bodyBytes, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, errors.NewNetwork(rawURL, err)
	}

	// net/html builds a best-effort tree for malformed markup, so this
	// only fails on reader errors
	doc, err := goquery.NewDocumentFromReader(utf8Body)
	if err != nil {
		return nil, errors.NewNetwork(rawURL, err)
	}

	c.log.Debug().Str("url", rawURL).Int("status", resp.StatusCode).Msg("Fetched")
	return doc, nil
}

// toUTF8 converts a response body to UTF-8 based on headers and content
func toUTF8(body []byte, contentType string) (io.Reader, error) {
	encoding, name, _ := charset.DetermineEncoding(body, contentType)
	if name == "utf-8" || name == "UTF-8" {
		return bytes.NewReader(body), nil
	}

	decoded := encoding.NewDecoder().Reader(bytes.NewReader(body))
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, decoded); err != nil {
		return nil, err
	}
	return &buf, nil
}
