package mcpbook

import "context"

// SitemapService discovers page URLs from a site's sitemap.xml.
// An empty result with a nil error means the site has no usable sitemap
// and the caller should fall back to recursive discovery.
type SitemapService interface {
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}
