package crawl_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcsenpai/mcpbook"
	"github.com/tcsenpai/mcpbook/crawl"
	"github.com/tcsenpai/mcpbook/mock"
)

// siteLinks is a fixture site as an adjacency list of discovered links.
var siteLinks = map[string][]mcpbook.DiscoveredLink{
	"https://docs.example.com/": {
		{URL: "https://docs.example.com/a", Priority: mcpbook.PriorityNavigation},
		{URL: "https://docs.example.com/c", Priority: mcpbook.PriorityContent},
		{URL: "https://docs.example.com/assets/style.css", Priority: mcpbook.PriorityContent},
	},
	"https://docs.example.com/a": {
		{URL: "https://docs.example.com/a/b", Priority: mcpbook.PriorityContent},
	},
}

func TestDiscoverer_Discover(t *testing.T) {
	t.Parallel()

	t.Run("finds all reachable content paths", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "<html>" + url + "</html>", nil
			},
		}
		links := &mock.LinkExtractor{
			ExtractLinksFn: func(_ string, baseURL string) ([]mcpbook.DiscoveredLink, error) {
				return siteLinks[baseURL], nil
			},
		}

		d := &crawl.Discoverer{
			Fetcher:   fetcher,
			Links:     links,
			BatchSize: 2,
			Retry:     crawl.QuickRetryPolicy(),
		}
		paths, err := d.Discover(context.Background(), "https://docs.example.com")

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"/", "/a", "/c", "/a/b"}, paths)
		assert.NotContains(t, paths, "/assets/style.css")
	})

	t.Run("failed fetches contribute no links", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				if url == "https://docs.example.com/a" {
					return "", &mcpbook.FetchError{URL: url, StatusCode: 404}
				}
				return "<html></html>", nil
			},
		}
		links := &mock.LinkExtractor{
			ExtractLinksFn: func(_ string, baseURL string) ([]mcpbook.DiscoveredLink, error) {
				return siteLinks[baseURL], nil
			},
		}

		d := &crawl.Discoverer{
			Fetcher:   fetcher,
			Links:     links,
			BatchSize: 2,
			Retry:     crawl.QuickRetryPolicy(),
		}
		paths, err := d.Discover(context.Background(), "https://docs.example.com")

		require.NoError(t, err)
		// /a is still reachable and counted; /a/b is behind the failure.
		assert.ElementsMatch(t, []string{"/", "/a", "/c"}, paths)
	})

	t.Run("drops links to other hosts", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "<html></html>", nil
			},
		}
		links := &mock.LinkExtractor{
			ExtractLinksFn: func(_ string, baseURL string) ([]mcpbook.DiscoveredLink, error) {
				if baseURL == "https://docs.example.com/" {
					return []mcpbook.DiscoveredLink{
						{URL: "https://other.example.com/x", Priority: mcpbook.PriorityContent},
					}, nil
				}
				return nil, nil
			},
		}

		d := &crawl.Discoverer{Fetcher: fetcher, Links: links, Retry: crawl.QuickRetryPolicy()}
		paths, err := d.Discover(context.Background(), "https://docs.example.com")

		require.NoError(t, err)
		assert.Equal(t, []string{"/"}, paths)
	})

	t.Run("caps the number of discovered paths", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (string, error) {
				return "<html></html>", nil
			},
		}
		n := 0
		links := &mock.LinkExtractor{
			ExtractLinksFn: func(_ string, _ string) ([]mcpbook.DiscoveredLink, error) {
				n++
				return []mcpbook.DiscoveredLink{
					{URL: "https://docs.example.com/page-" + string(rune('a'+n%26)) + "/" + string(rune('a'+n/26)), Priority: mcpbook.PriorityContent},
				}, nil
			},
		}

		d := &crawl.Discoverer{Fetcher: fetcher, Links: links, MaxPaths: 5, Retry: crawl.QuickRetryPolicy()}
		paths, err := d.Discover(context.Background(), "https://docs.example.com")

		require.NoError(t, err)
		assert.LessOrEqual(t, len(paths), 5)
	})
}
