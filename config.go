package mcpbook

import (
	"net/url"
	"time"
)

// Configuration defaults.
const (
	DefaultCacheTTL       = 24 * time.Hour
	DefaultScrapingDelay  = 500 * time.Millisecond
	DefaultMaxRetries     = 3
	DefaultRequestTimeout = 10 * time.Second
	DefaultMaxConcurrent  = 8
)

// Config holds the scalar configuration consumed by the crawl core. It
// is loaded and validated by the caller; the core assumes a valid value.
type Config struct {
	// BaseURL is the root of the crawl target, e.g.
	// "https://docs.example.com".
	BaseURL string

	// CacheTTL is how long a fully populated store stays fresh before
	// ScrapeAll re-runs change detection.
	CacheTTL time.Duration

	// ScrapingDelay is the pause between ingestion batches.
	ScrapingDelay time.Duration

	// MaxRetries bounds fetch retries per request.
	MaxRetries int

	// RequestTimeout applies to each individual fetch.
	RequestTimeout time.Duration

	// MaxConcurrent bounds in-flight fetches per batch.
	MaxConcurrent int
}

// DefaultConfig returns a Config for baseURL with documented defaults.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:        baseURL,
		CacheTTL:       DefaultCacheTTL,
		ScrapingDelay:  DefaultScrapingDelay,
		MaxRetries:     DefaultMaxRetries,
		RequestTimeout: DefaultRequestTimeout,
		MaxConcurrent:  DefaultMaxConcurrent,
	}
}

// Validate returns an error describing the first invalid field.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Errorf(EINVALID, "base URL must be absolute: %q", c.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "base URL scheme must be http or https: %q", c.BaseURL)
	}
	if c.CacheTTL < 0 {
		return Errorf(EINVALID, "cache TTL must not be negative")
	}
	if c.ScrapingDelay < 0 {
		return Errorf(EINVALID, "scraping delay must not be negative")
	}
	if c.MaxRetries < 0 {
		return Errorf(EINVALID, "max retries must not be negative")
	}
	if c.RequestTimeout < time.Second {
		return Errorf(EINVALID, "request timeout must be at least 1s")
	}
	if c.MaxConcurrent < 1 {
		return Errorf(EINVALID, "max concurrent requests must be at least 1")
	}
	return nil
}
