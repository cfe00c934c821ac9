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

// Ingester fetches, extracts and persists content for a known list of
// paths at bounded concurrency. Paths are processed in fixed-size
// batches; the pacer bounds the request rate between batches.
type Ingester struct {
	Fetcher   mcpbook.Fetcher
	Extractor mcpbook.Extractor
	Converter mcpbook.Converter
	Store     mcpbook.PageStore
	Pacer     mcpbook.Pacer
	BatchSize int
	Retry     RetryPolicy
	Logger    *slog.Logger

	// OnBatch, if set, is invoked synchronously after each batch with
	// cumulative completed and failed counts.
	OnBatch func(completed, failed int)
}

// IngestResult reports the outcome of one ingestion run.
type IngestResult struct {
	Ingested int
	Skipped  int

	// Failures maps each permanently failed path to the number of
	// retries spent on it. Ephemeral: valid for this run only.
	Failures map[string]int

	// TotalRetryAttempts counts every retry across all paths, including
	// paths that eventually succeeded.
	TotalRetryAttempts int
}

// Failed returns the number of permanently failed paths.
func (r *IngestResult) Failed() int { return len(r.Failures) }

// pageOutcome is the result of processing one path.
type pageOutcome struct {
	path    string
	page    *mcpbook.Page
	skipped bool
	retries int
	err     error
}

// Run ingests the given site-relative paths. When force is false, paths
// already present in the store are skipped; change detection passes
// force=true so changed pages are re-extracted. Per-path failures never
// abort a batch: they are collected, retried once more in a final
// half-width pass, and reported in the result.
func (ing *Ingester) Run(ctx context.Context, baseURL string, paths []string, force bool) (*IngestResult, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, mcpbook.Errorf(mcpbook.EINVALID, "invalid base URL: %v", err)
	}

	batchSize := ing.BatchSize
	if batchSize < 1 {
		batchSize = mcpbook.DefaultMaxConcurrent
	}
	logger := ing.Logger
	if logger == nil {
		logger = slog.Default()
	}

	result := &IngestResult{Failures: make(map[string]int)}

	if err := ing.runPass(ctx, base, paths, force, batchSize, ing.Retry, logger, result); err != nil {
		return nil, err
	}

	// One dedicated low-concurrency pass over what is still failing
	// before reporting anything as permanently failed for this run. Each
	// path already spent its engine retries, so this pass grants a
	// single attempt, not another retry cycle.
	if len(result.Failures) > 0 {
		retryPaths := make([]string, 0, len(result.Failures))
		for p := range result.Failures {
			retryPaths = append(retryPaths, p)
		}
		sort.Strings(retryPaths)
		logger.Info("retrying failed paths", "count", len(retryPaths))

		halfBatch := batchSize / 2
		if halfBatch < 1 {
			halfBatch = 1
		}
		finalAttempt := RetryPolicy{MaxRetries: 0}
		if err := ing.runPass(ctx, base, retryPaths, force, halfBatch, finalAttempt, logger, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// runPass processes paths in batches of batchSize, accumulating into
// result. Paths that succeed are cleared from the failure record.
func (ing *Ingester) runPass(ctx context.Context, base *url.URL, paths []string, force bool, batchSize int, retry RetryPolicy, logger *slog.Logger, result *IngestResult) error {
	for start := 0; start < len(paths); start += batchSize {
		if err := ing.Pacer.Wait(ctx); err != nil {
			return err
		}

		end := start + batchSize
		if end > len(paths) {
			end = len(paths)
		}
		batch := paths[start:end]

		outcomes := make([]pageOutcome, len(batch))

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(batchSize)
		for i, path := range batch {
			g.Go(func() error {
				outcomes[i] = ing.processPath(gctx, base, path, force, retry)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		// Store writes are synchronous with the scheduler: a page is
		// durable before its path counts as done, one upsert per page.
		for _, out := range outcomes {
			result.TotalRetryAttempts += out.retries

			switch {
			case out.err != nil:
				result.Failures[out.path] += out.retries
				logger.Warn("page failed", "path", out.path, "err", out.err)
			case out.skipped:
				delete(result.Failures, out.path)
				result.Skipped++
			default:
				if err := ing.Store.UpsertPages(ctx, []*mcpbook.Page{out.page}); err != nil {
					return mcpbook.Errorf(mcpbook.EINTERNAL, "persisting page %s: %v", out.path, err)
				}
				delete(result.Failures, out.path)
				result.Ingested++
			}
		}

		if ing.OnBatch != nil {
			ing.OnBatch(result.Ingested+result.Skipped, len(result.Failures))
		}
	}

	return nil
}

// processPath builds a Page from one path: fetch with retry, extract,
// convert, fingerprint. A panic in any collaborator is contained as a
// failure of this path only.
func (ing *Ingester) processPath(ctx context.Context, base *url.URL, path string, force bool, retry RetryPolicy) (out pageOutcome) {
	defer func() {
		if r := recover(); r != nil {
			out = pageOutcome{path: path, err: mcpbook.Errorf(mcpbook.EINTERNAL, "panic processing %s: %v", path, r)}
		}
	}()

	out = pageOutcome{path: path}

	if !force {
		if _, err := ing.Store.Page(ctx, path); err == nil {
			out.skipped = true
			return out
		}
	}

	sourceURL := pageURL(base, path)

	html, retries, err := FetchWithBackoff(ctx, sourceURL, ing.Fetcher.Fetch, retry, ing.Logger)
	out.retries = retries
	if err != nil {
		out.err = err
		return out
	}

	extracted, err := ing.Extractor.Extract(html)
	if err != nil {
		out.err = err
		return out
	}

	// Markdown conversion failures are recovered locally: the page falls
	// back to its plain text and is never reported as failed.
	markdown, err := ing.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		markdown = extracted.PlainText
	}

	section, subsection := mcpbook.DeriveSection(path)
	now := time.Now().UTC()

	out.page = &mcpbook.Page{
		Path:               path,
		Title:              extracted.Title,
		Section:            section,
		Subsection:         subsection,
		PlainText:          extracted.PlainText,
		Markdown:           markdown,
		RawContentHTML:     extracted.ContentHTML,
		CodeBlocks:         extracted.CodeBlocks,
		ContentFingerprint: mcpbook.Fingerprint(extracted.Title, extracted.PlainText),
		SourceURL:          sourceURL,
		LastFetchedAt:      now,
		LastCheckedAt:      now,
		SearchableText:     mcpbook.BuildSearchableText(extracted.Title, section, subsection, extracted.PlainText),
	}
	return out
}
