// Package crawl provides the crawl-and-index core: discovery, parallel
// ingestion, change detection, and the per-target Crawler facade that
// coordinates them.
package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/tcsenpai/mcpbook"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// RetryPolicy bounds retries of a failed fetch. Delays grow as
// min(BaseDelay << attempt, MaxDelay).
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

// DefaultRetryPolicy is the ingestion-grade policy: 3 retries at
// 1s, 2s, 4s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 3, BaseDelay: time.Second, MaxDelay: 8 * time.Second}
}

// QuickRetryPolicy is the change-detection policy: 2 retries with a much
// shorter backoff, so a flaky path delays one liveness pass, not the run.
func QuickRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 2, BaseDelay: 200 * time.Millisecond, MaxDelay: 400 * time.Millisecond}
}

// delay returns the backoff before retry attempt n (0-based).
func (p RetryPolicy) delay(attempt int) time.Duration {
	d := p.BaseDelay << uint(attempt)
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}

// FetchWithBackoff fetches a URL, retrying retryable failures up to
// policy.MaxRetries times with exponential backoff. Permanent failures
// (4xx, non-HTML responses) short-circuit immediately. The returned
// attempt count is the number of retries performed, for failure-record
// accounting.
func FetchWithBackoff(ctx context.Context, url string, fetch FetchFunc, policy RetryPolicy, logger *slog.Logger) (html string, retries int, err error) {
	var lastErr error

	for attempt := 0; attempt <= policy.MaxRetries; attempt++ {
		if attempt > 0 {
			retries++
			select {
			case <-ctx.Done():
				return "", retries, ctx.Err()
			case <-time.After(policy.delay(attempt - 1)):
			}
		}

		html, err := fetch(ctx, url)
		if err == nil {
			return html, retries, nil
		}
		lastErr = err

		if !mcpbook.RetryableFetch(err) {
			return "", retries, err
		}
		if ctx.Err() != nil {
			return "", retries, ctx.Err()
		}
		if logger != nil && attempt < policy.MaxRetries {
			logger.Debug("retrying fetch",
				"url", url,
				"attempt", attempt+2,
				"err", err,
			)
		}
	}

	return "", retries, lastErr
}
