package mock

import "github.com/tcsenpai/mcpbook"

var _ mcpbook.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of mcpbook.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]mcpbook.DiscoveredLink, error)
}

func (l *LinkExtractor) ExtractLinks(html string, baseURL string) ([]mcpbook.DiscoveredLink, error) {
	return l.ExtractLinksFn(html, baseURL)
}
