package mcpbook

import (
	"context"
	"errors"
	"fmt"
)

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch retrieves the document at url. The context controls timeout
	// and cancellation. Failed fetches return a *FetchError where the
	// failure mode is known (HTTP status, content type); transport-level
	// failures may surface as plain errors.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// FetchError describes a failed fetch with enough detail to classify it
// as retryable or permanent.
type FetchError struct {
	URL         string
	StatusCode  int    // 0 when the request never produced a response
	ContentType string // set when the response was rejected for its type
	Err         error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	switch {
	case e.ContentType != "":
		return fmt.Sprintf("fetch %s: unsupported content type %q", e.URL, e.ContentType)
	case e.StatusCode != 0:
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	default:
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
}

// Unwrap returns the underlying error, if any.
func (e *FetchError) Unwrap() error { return e.Err }

// Retryable reports whether retrying this fetch could plausibly succeed.
// Server errors (>=500) and transport failures are retryable; client
// errors (4xx) and non-HTML responses are permanent.
func (e *FetchError) Retryable() bool {
	if e.ContentType != "" {
		return false
	}
	if e.StatusCode >= 400 && e.StatusCode < 500 {
		return false
	}
	return true
}

// RetryableFetch classifies an arbitrary fetch error. Caller-initiated
// cancellation is never retryable; unclassified transport errors
// (timeouts, connection resets) are.
func RetryableFetch(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Retryable()
	}
	return true
}
