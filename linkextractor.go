package mcpbook

import (
	"path"
	"strings"
)

// LinkPriority represents crawl priority (higher = more important).
type LinkPriority int

// Link priority levels for crawl ordering.
const (
	PriorityIgnore     LinkPriority = 0
	PriorityFooter     LinkPriority = 20
	PriorityContent    LinkPriority = 50
	PriorityNavigation LinkPriority = 100
	PriorityTOC        LinkPriority = 110
)

// DiscoveredLink represents a URL with priority metadata.
type DiscoveredLink struct {
	URL      string
	Priority LinkPriority
	Text     string
	Source   string // "nav", "sidebar", "content", "footer"
}

// LinkExtractor extracts same-site links worth visiting from HTML.
type LinkExtractor interface {
	// ExtractLinks parses HTML and returns discovered links with
	// priority. The baseURL is used to resolve relative URLs; links to
	// other hosts are dropped.
	ExtractLinks(html string, baseURL string) ([]DiscoveredLink, error)
}

// PathPolicy decides which site-relative paths are worth crawling. It is
// a policy table rather than a hard-coded constant list so callers can
// tune discovery noise per site.
type PathPolicy struct {
	// SkipExtensions are file extensions (with dot, lowercase) that mark
	// static assets.
	SkipExtensions map[string]bool

	// SkipSegments are path segments that mark non-content subtrees
	// (compared lowercase).
	SkipSegments map[string]bool

	// SkipExact are whole paths that are never content (compared
	// lowercase, without trailing slash).
	SkipExact map[string]bool
}

// DefaultPathPolicy returns the policy used when a crawl target does not
// provide its own: images, fonts, stylesheets, scripts, archives, and
// sitemap/feed/robots endpoints are skipped, as is any path with a
// segment beginning with "_" or ".".
func DefaultPathPolicy() *PathPolicy {
	return &PathPolicy{
		SkipExtensions: map[string]bool{
			".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
			".svg": true, ".ico": true, ".webp": true, ".avif": true,
			".css": true, ".js": true, ".mjs": true, ".map": true,
			".woff": true, ".woff2": true, ".ttf": true, ".otf": true, ".eot": true,
			".pdf": true, ".zip": true, ".tar": true, ".gz": true,
			".mp4": true, ".webm": true, ".mp3": true,
			".xml": true, ".json": true, ".txt": true, ".yaml": true, ".yml": true,
		},
		SkipSegments: map[string]bool{
			"assets": true, "static": true, "images": true, "img": true,
			"fonts": true, "css": true, "js": true, "media": true,
			"cdn-cgi": true,
		},
		SkipExact: map[string]bool{
			"/sitemap.xml": true, "/sitemap": true, "/robots.txt": true,
			"/feed": true, "/rss": true, "/atom": true, "/favicon.ico": true,
		},
	}
}

// ShouldVisit reports whether a site-relative path looks like a content
// page under this policy.
func (p *PathPolicy) ShouldVisit(relPath string) bool {
	if relPath == "" || !strings.HasPrefix(relPath, "/") {
		return false
	}

	normalized := strings.ToLower(strings.TrimSuffix(relPath, "/"))
	if normalized == "" {
		normalized = "/"
	}
	if p.SkipExact[normalized] {
		return false
	}

	if ext := strings.ToLower(path.Ext(normalized)); ext != "" && p.SkipExtensions[ext] {
		return false
	}

	for _, seg := range strings.Split(strings.Trim(normalized, "/"), "/") {
		if seg == "" {
			continue
		}
		if seg[0] == '_' || seg[0] == '.' {
			return false
		}
		if p.SkipSegments[seg] {
			return false
		}
	}

	return true
}
