package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tcsenpai/mcpbook"
)

// Ensure LinkExtractor implements mcpbook.LinkExtractor at compile time.
var _ mcpbook.LinkExtractor = (*LinkExtractor)(nil)

// selectorConfig pairs a CSS selector with the priority and source label
// of the links it yields.
type selectorConfig struct {
	selector string
	priority mcpbook.LinkPriority
	source   string
}

// linkConfigs cover the regions documentation sites use for navigation.
// Higher-priority duplicates win during deduplication.
var linkConfigs = []selectorConfig{
	{selector: ".toc a[href], .table-of-contents a[href]", priority: mcpbook.PriorityTOC, source: "toc"},
	{selector: "nav a[href]", priority: mcpbook.PriorityNavigation, source: "nav"},
	{selector: "aside a[href], .sidebar a[href]", priority: mcpbook.PriorityNavigation, source: "sidebar"},
	{selector: "main a[href], article a[href]", priority: mcpbook.PriorityContent, source: "content"},
	{selector: "footer a[href]", priority: mcpbook.PriorityFooter, source: "footer"},
	{selector: "a[href]", priority: mcpbook.PriorityContent, source: "content"},
}

// LinkExtractor finds same-site links worth visiting in a page. Static
// assets and non-content paths are filtered through a PathPolicy.
type LinkExtractor struct {
	policy *mcpbook.PathPolicy
}

// NewLinkExtractor creates a LinkExtractor with the given path policy.
// A nil policy uses mcpbook.DefaultPathPolicy.
func NewLinkExtractor(policy *mcpbook.PathPolicy) *LinkExtractor {
	if policy == nil {
		policy = mcpbook.DefaultPathPolicy()
	}
	return &LinkExtractor{policy: policy}
}

// ExtractLinks parses HTML and returns same-host links with priority.
// Links are deduplicated by URL, keeping the highest-priority version,
// and maintain document order based on first occurrence.
func (e *LinkExtractor) ExtractLinks(rawHTML string, baseURL string) ([]mcpbook.DiscoveredLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, mcpbook.Errorf(mcpbook.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, mcpbook.Errorf(mcpbook.EINVALID, "failed to parse HTML: %v", err)
	}

	// Track seen URLs with their index in the result slice for O(1)
	// priority upgrades.
	seen := make(map[string]int)
	var links []mcpbook.DiscoveredLink

	for _, config := range linkConfigs {
		doc.Find(config.selector).Each(func(_ int, sel *goquery.Selection) {
			href, exists := sel.Attr("href")
			if !exists || href == "" || isNonHTTPLink(href) {
				return
			}

			resolved := resolveURL(base, href)
			if resolved == nil {
				return
			}
			if resolved.Host != base.Host {
				return
			}
			if !e.policy.ShouldVisit(pathOf(resolved)) {
				return
			}

			link := mcpbook.DiscoveredLink{
				URL:      resolved.String(),
				Priority: config.priority,
				Text:     strings.TrimSpace(sel.Text()),
				Source:   config.source,
			}

			if idx, ok := seen[link.URL]; ok {
				if config.priority > links[idx].Priority {
					links[idx] = link
				}
			} else {
				seen[link.URL] = len(links)
				links = append(links, link)
			}
		})
	}

	return links, nil
}

// resolveURL resolves href against base with the fragment stripped.
// Returns nil for unparseable or self-referential links.
func resolveURL(base *url.URL, href string) *url.URL {
	ref, err := url.Parse(href)
	if err != nil {
		return nil
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if resolved.String() == baseNoFragment.String() {
		return nil
	}
	return resolved
}

// pathOf returns a URL's path normalized to begin with "/".
func pathOf(u *url.URL) string {
	if u.Path == "" {
		return "/"
	}
	return u.Path
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be
// skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
