package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mbhttp "github.com/tcsenpai/mcpbook/http"
)

func TestSitemapService_DiscoverURLs_from_urlset(t *testing.T) {
	t.Parallel()

	var srvURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/robots.txt":
			fmt.Fprintf(w, "User-agent: *\nSitemap: %s/sitemap.xml\n", srvURL)
		case "/sitemap.xml":
			fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>%s/</loc></url>
  <url><loc>%s/guide</loc></url>
  <url><loc>https://other.example.com/page</loc></url>
</urlset>`, srvURL, srvURL)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	srvURL = srv.URL

	s := mbhttp.NewSitemapService(nil)
	urls, err := s.DiscoverURLs(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/", srv.URL + "/guide"}, urls,
		"foreign-host URLs must be dropped")
}

func TestSitemapService_DiscoverURLs_follows_sitemap_index(t *testing.T) {
	t.Parallel()

	var srvURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sitemap.xml":
			fmt.Fprintf(w, `<sitemapindex><sitemap><loc>%s/sitemap-docs.xml</loc></sitemap></sitemapindex>`, srvURL)
		case "/sitemap-docs.xml":
			fmt.Fprintf(w, `<urlset><url><loc>%s/docs/a</loc></url></urlset>`, srvURL)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	srvURL = srv.URL

	s := mbhttp.NewSitemapService(nil)
	urls, err := s.DiscoverURLs(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/docs/a"}, urls)
}

func TestSitemapService_DiscoverURLs_no_sitemap_is_empty_not_error(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	s := mbhttp.NewSitemapService(nil)
	urls, err := s.DiscoverURLs(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Empty(t, urls)
}
