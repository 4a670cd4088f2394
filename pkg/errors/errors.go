package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType classifies scrape errors for retry decisions and logging.
type ErrorType string

const (
	// ErrorTypeInvalidInput represents malformed caller input (bad URL syntax)
	ErrorTypeInvalidInput ErrorType = "invalid_input"
	// ErrorTypeUnsupportedSource represents URLs no registered scraper handles
	ErrorTypeUnsupportedSource ErrorType = "unsupported_source"
	// ErrorTypeNetwork represents transport-level failures (timeout, DNS, reset)
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeFetch represents non-success HTTP responses
	ErrorTypeFetch ErrorType = "fetch"
	// ErrorTypeRateLimit represents HTTP 429/430 responses
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeExtraction represents pages missing required structural elements
	ErrorTypeExtraction ErrorType = "extraction"
	// ErrorTypeStorage represents storage collaborator failures
	ErrorTypeStorage ErrorType = "storage"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// ScrapeError is the error type carried across the scraping core.
type ScrapeError struct {
	Type     ErrorType
	Provider string
	URL      string
	Status   int
	Message  string
	Err      error
	Time     time.Time
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	msg := fmt.Sprintf("[%s]", e.Type)
	if e.Provider != "" {
		msg += " " + e.Provider
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.URL != "" {
		msg += " url=" + e.URL
	}
	if e.Err != nil {
		msg += " - " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether a job-level retry can plausibly succeed.
func (e *ScrapeError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeNetwork, ErrorTypeFetch:
		return true
	default:
		return false
	}
}

// New creates a new ScrapeError
func New(errType ErrorType, provider, message string, err error) *ScrapeError {
	return &ScrapeError{
		Type:     errType,
		Provider: provider,
		Message:  message,
		Err:      err,
		Time:     time.Now(),
	}
}

// NewInvalidInput creates an invalid input error for a malformed URL
func NewInvalidInput(url, message string) *ScrapeError {
	e := New(ErrorTypeInvalidInput, "", message, nil)
	e.URL = url
	return e
}

// NewUnsupportedSource creates an error for a URL no scraper supports
func NewUnsupportedSource(url string) *ScrapeError {
	e := New(ErrorTypeUnsupportedSource, "", "no scraper registered for url", nil)
	e.URL = url
	return e
}

// NewNetwork creates a transport-level error
func NewNetwork(url string, err error) *ScrapeError {
	e := New(ErrorTypeNetwork, "", "request failed", err)
	e.URL = url
	return e
}

// NewFetch creates an error for a non-success HTTP status
func NewFetch(url string, status int) *ScrapeError {
	e := New(ErrorTypeFetch, "", "unexpected status", nil)
	e.URL = url
	e.Status = status
	return e
}

// NewRateLimit creates an error for a rate-limited response
func NewRateLimit(provider, url string, status int) *ScrapeError {
	e := New(ErrorTypeRateLimit, provider, "rate limited", nil)
	e.URL = url
	e.Status = status
	return e
}

// NewExtraction creates an error for a page missing required elements
func NewExtraction(provider, url, message string) *ScrapeError {
	e := New(ErrorTypeExtraction, provider, message, nil)
	e.URL = url
	return e
}

// NewStorage creates a storage error
func NewStorage(message string, err error) *ScrapeError {
	return New(ErrorTypeStorage, "", message, err)
}

// NewConfiguration creates a configuration error
func NewConfiguration(message string, err error) *ScrapeError {
	return New(ErrorTypeConfiguration, "", message, err)
}

// TypeOf returns the ErrorType of err, or an empty type when err is not a ScrapeError.
func TypeOf(err error) ErrorType {
	var se *ScrapeError
	if errors.As(err, &se) {
		return se.Type
	}
	return ""
}

// IsType reports whether err is a ScrapeError of the given type.
func IsType(err error, t ErrorType) bool {
	return TypeOf(err) == t
}

// IsRetryable reports whether err is a retryable ScrapeError.
func IsRetryable(err error) bool {
	var se *ScrapeError
	if errors.As(err, &se) {
		return se.IsRetryable()
	}
	return false
}
