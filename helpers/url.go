package helpers

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// StripQuery removes the query string and fragment from a URL, canonicalizing
// listing links that only differ by tracking parameters.
func StripQuery(rawURL string) string {
	if idx := strings.IndexAny(rawURL, "?#"); idx != -1 {
		return rawURL[:idx]
	}
	return rawURL
}

// ResolveHref turns a possibly relative href into an absolute URL against
// the platform's base URL.
func ResolveHref(baseURL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// HashID returns a deterministic identifier for a URL whose path carries no
// recognizable platform ID. Same URL, same ID, every call.
func HashID(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return hex.EncodeToString(sum[:])[:16]
}
