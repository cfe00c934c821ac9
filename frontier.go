package mcpbook

import "context"

// URLFrontier manages a crawl queue with deduplication.
type URLFrontier interface {
	// Push adds a link to the frontier.
	// Returns false if the URL has already been seen.
	Push(link DiscoveredLink) bool

	// PopN removes and returns up to n links by priority.
	PopN(n int) []DiscoveredLink

	// Len returns the number of URLs in the queue.
	Len() int

	// Seen returns true if the URL has been processed or queued.
	Seen(url string) bool
}

// Pacer bounds the request rate between work batches.
type Pacer interface {
	// Wait blocks until the pace allows the next batch to begin.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context) error
}
