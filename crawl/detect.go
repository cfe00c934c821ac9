package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"sort"
	"time"

	"github.com/tcsenpai/mcpbook"
	"golang.org/x/sync/errgroup"
)

// ChangeDetector re-fetches every indexed page and compares content
// fingerprints against the store. It never writes page content itself;
// it only reports which paths changed and records the check time for
// pages it was able to compare.
type ChangeDetector struct {
	Fetcher   mcpbook.Fetcher
	Extractor mcpbook.Extractor
	Store     mcpbook.PageStore
	Pacer     mcpbook.Pacer
	BatchSize int
	Retry     RetryPolicy
	Logger    *slog.Logger
}

// detectOutcome is the comparison result for one indexed page.
type detectOutcome struct {
	path    string
	changed bool
	skipped bool
}

// Detect returns the site-relative paths whose current content
// fingerprint differs from the indexed one. Pages that cannot be
// fetched are skipped without updating their check time, so a
// transient outage never masks a later change.
func (d *ChangeDetector) Detect(ctx context.Context, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, mcpbook.Errorf(mcpbook.EINVALID, "invalid base URL: %v", err)
	}

	batchSize := d.BatchSize
	if batchSize < 1 {
		batchSize = mcpbook.DefaultMaxConcurrent
	}
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	indexed, err := d.Store.AllPages(ctx)
	if err != nil {
		return nil, err
	}

	pages := make([]*mcpbook.Page, 0, len(indexed))
	for _, page := range indexed {
		pages = append(pages, page)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Path < pages[j].Path })

	var changed, checked []string
	for start := 0; start < len(pages); start += batchSize {
		if err := d.Pacer.Wait(ctx); err != nil {
			return nil, err
		}

		end := start + batchSize
		if end > len(pages) {
			end = len(pages)
		}
		batch := pages[start:end]

		outcomes := make([]detectOutcome, len(batch))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(batchSize)
		for i, page := range batch {
			g.Go(func() error {
				outcomes[i] = d.checkPage(gctx, base, page)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		for _, out := range outcomes {
			if out.skipped {
				continue
			}
			checked = append(checked, out.path)
			if out.changed {
				changed = append(changed, out.path)
			}
		}
	}

	if len(checked) > 0 {
		if err := d.Store.TouchChecked(ctx, checked, time.Now().UTC()); err != nil {
			return nil, err
		}
	}

	logger.Info("change detection complete", "pages", len(pages), "checked", len(checked), "changed", len(changed))
	return changed, nil
}

// checkPage fetches one page with a quick retry policy and compares its
// fingerprint to the indexed one.
func (d *ChangeDetector) checkPage(ctx context.Context, base *url.URL, page *mcpbook.Page) detectOutcome {
	out := detectOutcome{path: page.Path}

	html, _, err := FetchWithBackoff(ctx, pageURL(base, page.Path), d.Fetcher.Fetch, d.Retry, d.Logger)
	if err != nil {
		d.logger().Warn("change check failed", "path", page.Path, "err", err)
		out.skipped = true
		return out
	}

	extracted, err := d.Extractor.Extract(html)
	if err != nil {
		d.logger().Warn("change check failed", "path", page.Path, "err", err)
		out.skipped = true
		return out
	}

	out.changed = mcpbook.Fingerprint(extracted.Title, extracted.PlainText) != page.ContentFingerprint
	return out
}

func (d *ChangeDetector) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}
