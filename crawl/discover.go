package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"sync"

	"github.com/tcsenpai/mcpbook"
	"golang.org/x/sync/errgroup"
)

// defaultMaxDiscoveredPaths caps a discovery pass to keep a pathological
// or self-linking site from running away.
const defaultMaxDiscoveredPaths = 5000

// Discoverer enumerates the reachable paths of a crawl target by
// breadth-first link following, without extracting or persisting any
// content. Discovery is throughput-oriented: batches run at full
// concurrency with no pacing delay.
type Discoverer struct {
	Fetcher   mcpbook.Fetcher
	Links     mcpbook.LinkExtractor
	Policy    *mcpbook.PathPolicy
	BatchSize int
	MaxPaths  int
	Retry     RetryPolicy
	Logger    *slog.Logger
}

// Discover returns the set of same-site paths reachable from the base
// URL's root, in breadth-first discovery order. Fetch failures and
// non-HTML responses are logged and treated as "no links found"; they
// never abort the pass.
func (d *Discoverer) Discover(ctx context.Context, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, mcpbook.Errorf(mcpbook.EINVALID, "invalid base URL: %v", err)
	}

	policy := d.Policy
	if policy == nil {
		policy = mcpbook.DefaultPathPolicy()
	}
	batchSize := d.BatchSize
	if batchSize < 1 {
		batchSize = mcpbook.DefaultMaxConcurrent
	}
	maxPaths := d.MaxPaths
	if maxPaths < 1 {
		maxPaths = defaultMaxDiscoveredPaths
	}
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(mcpbook.DiscoveredLink{
		URL:      pageURL(base, "/"),
		Priority: mcpbook.PriorityNavigation,
	})

	var paths []string
	seenPaths := map[string]bool{}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(paths) >= maxPaths {
			logger.Warn("discovery reached path cap", "cap", maxPaths)
			break
		}

		batch := frontier.PopN(batchSize)
		if len(batch) == 0 {
			break
		}

		// Every dequeued path passed the policy when pushed; it is part
		// of the reachable set whether or not its fetch succeeds.
		var mu sync.Mutex
		discovered := make([]mcpbook.DiscoveredLink, 0, len(batch)*8)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(batchSize)
		for _, link := range batch {
			g.Go(func() error {
				html, _, err := FetchWithBackoff(gctx, link.URL, d.Fetcher.Fetch, d.Retry, logger)
				if err != nil {
					logger.Warn("discovery fetch failed", "url", link.URL, "err", err)
					return nil
				}

				links, err := d.Links.ExtractLinks(html, link.URL)
				if err != nil {
					logger.Warn("link extraction failed", "url", link.URL, "err", err)
					return nil
				}

				mu.Lock()
				discovered = append(discovered, links...)
				mu.Unlock()
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		for _, link := range batch {
			u, err := url.Parse(link.URL)
			if err != nil {
				continue
			}
			p := canonicalPath(u)
			if !seenPaths[p] {
				seenPaths[p] = true
				paths = append(paths, p)
			}
		}

		for _, link := range discovered {
			u, err := url.Parse(link.URL)
			if err != nil || u.Host != base.Host {
				continue
			}
			if !policy.ShouldVisit(canonicalPath(u)) {
				continue
			}
			frontier.Push(link)
		}
	}

	logger.Info("discovery complete", "paths", len(paths))
	return paths, nil
}
