package crawl

import (
	"net/url"
	"strings"
)

// canonicalPath maps a URL to the site-relative path used as a page key:
// leading slash, no trailing slash except for the root.
func canonicalPath(u *url.URL) string {
	p := u.Path
	if p == "" {
		return "/"
	}
	if p != "/" {
		p = strings.TrimSuffix(p, "/")
		if p == "" {
			p = "/"
		}
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// pageURL resolves a site-relative path against the crawl target's base.
func pageURL(base *url.URL, relPath string) string {
	u := *base
	u.Path = relPath
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}
