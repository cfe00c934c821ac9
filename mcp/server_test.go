package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcsenpai/mcpbook"
	"github.com/tcsenpai/mcpbook/mock"
)

func TestServer_SearchDocs(t *testing.T) {
	t.Parallel()

	var gotLimit int
	store := &mock.PageStore{
		SearchFn: func(_ context.Context, query string, limit, offset int) ([]*mcpbook.SearchResult, error) {
			gotLimit = limit
			return []*mcpbook.SearchResult{{Path: "/guides/install", Title: "Installation"}}, nil
		},
	}

	s := NewServer(store, nil, "test", "0.0.0")
	_, out, err := s.searchDocs(context.Background(), nil, SearchDocsInput{Query: "install"})

	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "/guides/install", out.Results[0].Path)
	assert.Equal(t, 10, gotLimit)
}

func TestServer_GetPage(t *testing.T) {
	t.Parallel()

	store := &mock.PageStore{
		PageFn: func(_ context.Context, path string) (*mcpbook.Page, error) {
			if path != "/api" {
				return nil, mcpbook.Errorf(mcpbook.ENOTFOUND, "page not found: %s", path)
			}
			return &mcpbook.Page{Path: "/api", Title: "API", Markdown: "# API\n"}, nil
		},
	}

	s := NewServer(store, nil, "test", "0.0.0")

	_, out, err := s.getPage(context.Background(), nil, GetPageInput{Path: "/api"})
	require.NoError(t, err)
	assert.Equal(t, "# API\n", out.Markdown)

	_, _, err = s.getPage(context.Background(), nil, GetPageInput{Path: "/missing"})
	require.Error(t, err)
	assert.Equal(t, mcpbook.ENOTFOUND, mcpbook.ErrorCode(err))
}

func TestServer_ListSections(t *testing.T) {
	t.Parallel()

	store := &mock.PageStore{
		SectionsFn: func(_ context.Context) ([]string, error) {
			return []string{"API Reference", "Guides"}, nil
		},
		PagesBySectionFn: func(_ context.Context, section string) ([]*mcpbook.Page, error) {
			if section == "Guides" {
				return []*mcpbook.Page{{Path: "/guides/install"}}, nil
			}
			return []*mcpbook.Page{{Path: "/api/auth"}, {Path: "/api/errors"}}, nil
		},
	}

	s := NewServer(store, nil, "test", "0.0.0")
	_, out, err := s.listSections(context.Background(), nil, ListSectionsInput{})

	require.NoError(t, err)
	require.Len(t, out.Sections, 2)
	assert.Equal(t, "API Reference", out.Sections[0].Name)
	assert.Equal(t, []string{"/api/auth", "/api/errors"}, out.Sections[0].Paths)
	assert.Equal(t, []string{"/guides/install"}, out.Sections[1].Paths)
}
