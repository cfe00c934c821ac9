package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tcsenpai/mcpbook"
)

// ProgressFunc observes crawl progress. It is invoked synchronously
// after each ingestion batch with the number of paths discovered so
// far, the number completed, and the number currently failing.
type ProgressFunc func(discovered, completed, failed int)

// Crawler orchestrates one crawl target end to end: discovery,
// ingestion, change detection and cache-freshness decisions. Each
// instance owns its own state; two crawlers never share anything.
type Crawler struct {
	Config    mcpbook.Config
	Fetcher   mcpbook.Fetcher
	Extractor mcpbook.Extractor
	Converter mcpbook.Converter
	Links     mcpbook.LinkExtractor
	Store     mcpbook.PageStore
	Sitemap   mcpbook.SitemapService
	Policy    *mcpbook.PathPolicy
	Logger    *slog.Logger
	Progress  ProgressFunc

	mu           sync.Mutex
	lastFailures mcpbook.FailureStats
}

// ScrapeAll populates or refreshes the store for the configured base
// URL. A store still within its cache TTL is left untouched. An empty
// store triggers full discovery and ingestion; a populated stale store
// triggers change detection and re-ingestion of only the changed pages.
func (c *Crawler) ScrapeAll(ctx context.Context) error {
	if err := c.Config.Validate(); err != nil {
		return err
	}
	logger := c.logger()

	count, err := c.Store.PageCount(ctx)
	if err != nil {
		return err
	}
	if count > 0 && c.fresh(ctx) {
		logger.Info("store is fresh, skipping crawl", "pages", count, "ttl", c.Config.CacheTTL)
		return nil
	}

	runID := uuid.NewString()
	logger.Info("starting crawl", "base_url", c.Config.BaseURL, "run_id", runID, "pages", count)

	var paths []string
	force := false
	if count == 0 {
		if paths, err = c.discover(ctx); err != nil {
			return err
		}
	} else {
		detector := &ChangeDetector{
			Fetcher:   c.Fetcher,
			Extractor: c.Extractor,
			Store:     c.Store,
			Pacer:     NewDelayPacer(c.Config.ScrapingDelay),
			BatchSize: c.Config.MaxConcurrent,
			Retry:     QuickRetryPolicy(),
			Logger:    logger,
		}
		if paths, err = detector.Detect(ctx, c.Config.BaseURL); err != nil {
			return err
		}
		force = true
	}

	discovered := len(paths)
	ingester := &Ingester{
		Fetcher:   c.Fetcher,
		Extractor: c.Extractor,
		Converter: c.Converter,
		Store:     c.Store,
		Pacer:     NewDelayPacer(c.Config.ScrapingDelay),
		BatchSize: c.Config.MaxConcurrent,
		Retry:     c.retryPolicy(),
		Logger:    logger,
	}
	if c.Progress != nil {
		ingester.OnBatch = func(completed, failed int) {
			c.Progress(discovered, completed, failed)
		}
	}

	result, err := ingester.Run(ctx, c.Config.BaseURL, paths, force)
	if err != nil {
		return err
	}

	c.recordFailures(result)

	total, err := c.Store.PageCount(ctx)
	if err != nil {
		return err
	}
	if total == 0 {
		logger.Warn("crawl finished with zero pages indexed", "base_url", c.Config.BaseURL,
			"discovered", discovered, "failed", result.Failed())
	} else {
		logger.Info("crawl finished", "pages", total, "ingested", result.Ingested,
			"skipped", result.Skipped, "failed", result.Failed(), "run_id", runID)
	}

	if err := c.Store.SetMeta(ctx, mcpbook.MetaLastUpdated, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	return c.Store.SetMeta(ctx, mcpbook.MetaLastRunID, runID)
}

// Content returns the full indexed corpus keyed by path.
func (c *Crawler) Content(ctx context.Context) (map[string]*mcpbook.Page, error) {
	return c.Store.AllPages(ctx)
}

// FailureStats reports the permanently failed paths of the most recent
// run. The record is ephemeral: it resets on every ScrapeAll.
func (c *Crawler) FailureStats() mcpbook.FailureStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastFailures
}

// discover enumerates the site's paths, preferring the sitemap when one
// is served and falling back to breadth-first link following.
func (c *Crawler) discover(ctx context.Context) ([]string, error) {
	if c.Sitemap != nil {
		paths, err := c.sitemapPaths(ctx)
		if err != nil {
			return nil, err
		}
		if len(paths) > 0 {
			c.logger().Info("discovered paths via sitemap", "count", len(paths))
			return paths, nil
		}
	}

	discoverer := &Discoverer{
		Fetcher:   c.Fetcher,
		Links:     c.Links,
		Policy:    c.Policy,
		BatchSize: c.Config.MaxConcurrent,
		Retry:     c.retryPolicy(),
		Logger:    c.logger(),
	}
	return discoverer.Discover(ctx, c.Config.BaseURL)
}

// sitemapPaths resolves sitemap URLs to policy-filtered relative paths.
func (c *Crawler) sitemapPaths(ctx context.Context) ([]string, error) {
	urls, err := c.Sitemap.DiscoverURLs(ctx, c.Config.BaseURL)
	if err != nil {
		return nil, err
	}

	policy := c.Policy
	if policy == nil {
		policy = mcpbook.DefaultPathPolicy()
	}

	seen := make(map[string]bool)
	var paths []string
	for _, raw := range urls {
		u, err := url.Parse(raw)
		if err != nil {
			continue
		}
		path := canonicalPath(u)
		if seen[path] || !policy.ShouldVisit(path) {
			continue
		}
		seen[path] = true
		paths = append(paths, path)
	}
	return paths, nil
}

func (c *Crawler) recordFailures(result *IngestResult) {
	stats := mcpbook.FailureStats{TotalRetryAttempts: result.TotalRetryAttempts}
	for path := range result.Failures {
		stats.FailedPaths = append(stats.FailedPaths, path)
	}
	sort.Strings(stats.FailedPaths)

	c.mu.Lock()
	c.lastFailures = stats
	c.mu.Unlock()
}

// fresh reports whether the store was fully populated within the TTL.
func (c *Crawler) fresh(ctx context.Context) bool {
	raw, err := c.Store.Meta(ctx, mcpbook.MetaLastUpdated)
	if err != nil {
		return false
	}
	updated, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return false
	}
	return time.Since(updated) < c.Config.CacheTTL
}

func (c *Crawler) retryPolicy() RetryPolicy {
	policy := DefaultRetryPolicy()
	policy.MaxRetries = c.Config.MaxRetries
	return policy
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
