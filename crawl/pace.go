package crawl

import (
	"context"
	"time"

	"github.com/tcsenpai/mcpbook"
	"golang.org/x/time/rate"
)

var _ mcpbook.Pacer = (*DelayPacer)(nil)

// DelayPacer enforces a minimum delay between batches using a token
// bucket. The first Wait is free; subsequent ones block until the delay
// has elapsed since the previous grant.
type DelayPacer struct {
	limiter *rate.Limiter
}

// NewDelayPacer creates a pacer with the given inter-batch delay.
// A non-positive delay disables pacing.
func NewDelayPacer(delay time.Duration) *DelayPacer {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &DelayPacer{
		limiter: rate.NewLimiter(limit, 1),
	}
}

// Wait blocks until the pace allows the next batch.
func (p *DelayPacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
