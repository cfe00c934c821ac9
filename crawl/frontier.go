package crawl

import (
	"container/heap"
	"strings"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/tcsenpai/mcpbook"
)

// Frontier sizing for discovery.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom
	// filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate
	// for deduplication.
	frontierFalsePositiveRate = 0.01
)

// Compile-time interface verification.
var _ mcpbook.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory URL frontier with a priority queue and Bloom
// filter deduplication. It is safe for concurrent use.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.BloomFilter
	queue *linkHeap
}

// NewFrontier creates a Frontier sized for n expected URLs with the
// given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	h := &linkHeap{}
	heap.Init(h)
	return &Frontier{
		seen:  bloom.NewWithEstimates(n, fpRate),
		queue: h,
	}
}

// Push adds a link to the frontier. Returns false if the URL has already
// been seen. URL fragments are stripped before deduplication.
func (f *Frontier) Push(link mcpbook.DiscoveredLink) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	url := stripFragment(link.URL)
	if f.seen.TestString(url) {
		return false
	}
	f.seen.AddString(url)

	link.URL = url
	heap.Push(f.queue, link)
	return true
}

// PopN removes and returns up to n links in priority order. Returns an
// empty slice when the frontier is drained.
func (f *Frontier) PopN(n int) []mcpbook.DiscoveredLink {
	f.mu.Lock()
	defer f.mu.Unlock()

	if n > f.queue.Len() {
		n = f.queue.Len()
	}
	links := make([]mcpbook.DiscoveredLink, 0, n)
	for i := 0; i < n; i++ {
		link, _ := heap.Pop(f.queue).(mcpbook.DiscoveredLink)
		links = append(links, link)
	}
	return links
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// Seen returns true if the URL has been processed or queued. URL
// fragments are stripped before checking.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.TestString(stripFragment(rawURL))
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}

// linkHeap implements heap.Interface for a DiscoveredLink priority
// queue. Higher priority links are popped first.
type linkHeap []mcpbook.DiscoveredLink

func (h linkHeap) Len() int { return len(h) }

// Less returns true if i has higher priority than j (max-heap).
func (h linkHeap) Less(i, j int) bool {
	return h[i].Priority > h[j].Priority
}

func (h linkHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *linkHeap) Push(x any) {
	link, _ := x.(mcpbook.DiscoveredLink)
	*h = append(*h, link)
}

func (h *linkHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}
