// Package mcp exposes the indexed documentation over the Model Context
// Protocol. The server is a thin adapter: every tool delegates to the
// PageStore or Crawler and does no crawling logic of its own.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/tcsenpai/mcpbook"
	"github.com/tcsenpai/mcpbook/crawl"
)

// Server wraps an MCP server bound to one crawl target.
type Server struct {
	store   mcpbook.PageStore
	crawler *crawl.Crawler
	server  *mcp.Server
}

// NewServer creates a Server exposing store and crawler as MCP tools.
func NewServer(store mcpbook.PageStore, crawler *crawl.Crawler, name, version string) *Server {
	s := &Server{
		store:   store,
		crawler: crawler,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    name,
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

// Run serves MCP over stdio until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_docs",
		Description: "Full-text search over the indexed documentation. Returns ranked hits with snippets.",
	}, s.searchDocs)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_page",
		Description: "Get one documentation page as Markdown by its site-relative path.",
	}, s.getPage)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_sections",
		Description: "List the documentation sections and the pages in each.",
	}, s.listSections)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "refresh_docs",
		Description: "Re-crawl the documentation site, updating pages whose content changed.",
	}, s.refreshDocs)
}

// SearchDocsInput defines input for the search_docs tool.
type SearchDocsInput struct {
	Query      string `json:"query" jsonschema:"Search query"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Maximum number of results (optional, defaults to 10)"`
	Offset     int    `json:"offset,omitempty" jsonschema:"Number of results to skip for pagination (optional)"`
}

// SearchDocsOutput defines output for the search_docs tool.
type SearchDocsOutput struct {
	Results []*mcpbook.SearchResult `json:"results"`
	Query   string                  `json:"query"`
}

func (s *Server) searchDocs(ctx context.Context, req *mcp.CallToolRequest, input SearchDocsInput) (*mcp.CallToolResult, SearchDocsOutput, error) {
	limit := input.MaxResults
	if limit < 1 || limit > 50 {
		limit = 10
	}

	results, err := s.store.Search(ctx, input.Query, limit, input.Offset)
	if err != nil {
		return nil, SearchDocsOutput{}, err
	}
	return nil, SearchDocsOutput{Results: results, Query: input.Query}, nil
}

// GetPageInput defines input for the get_page tool.
type GetPageInput struct {
	Path string `json:"path" jsonschema:"Site-relative page path, e.g. /guides/install"`
}

// GetPageOutput defines output for the get_page tool.
type GetPageOutput struct {
	Path       string              `json:"path"`
	Title      string              `json:"title"`
	Section    string              `json:"section"`
	Markdown   string              `json:"markdown"`
	CodeBlocks []mcpbook.CodeBlock `json:"code_blocks,omitempty"`
	SourceURL  string              `json:"source_url"`
}

func (s *Server) getPage(ctx context.Context, req *mcp.CallToolRequest, input GetPageInput) (*mcp.CallToolResult, GetPageOutput, error) {
	page, err := s.store.Page(ctx, input.Path)
	if err != nil {
		return nil, GetPageOutput{}, err
	}
	return nil, GetPageOutput{
		Path:       page.Path,
		Title:      page.Title,
		Section:    page.Section,
		Markdown:   page.Markdown,
		CodeBlocks: page.CodeBlocks,
		SourceURL:  page.SourceURL,
	}, nil
}

// ListSectionsInput defines input for the list_sections tool.
type ListSectionsInput struct{}

// SectionSummary is one section with its page listing.
type SectionSummary struct {
	Name  string   `json:"name"`
	Paths []string `json:"paths"`
}

// ListSectionsOutput defines output for the list_sections tool.
type ListSectionsOutput struct {
	Sections []SectionSummary `json:"sections"`
}

func (s *Server) listSections(ctx context.Context, req *mcp.CallToolRequest, _ ListSectionsInput) (*mcp.CallToolResult, ListSectionsOutput, error) {
	names, err := s.store.Sections(ctx)
	if err != nil {
		return nil, ListSectionsOutput{}, err
	}

	out := ListSectionsOutput{Sections: make([]SectionSummary, 0, len(names))}
	for _, name := range names {
		pages, err := s.store.PagesBySection(ctx, name)
		if err != nil {
			return nil, ListSectionsOutput{}, err
		}
		summary := SectionSummary{Name: name}
		for _, page := range pages {
			summary.Paths = append(summary.Paths, page.Path)
		}
		out.Sections = append(out.Sections, summary)
	}
	return nil, out, nil
}

// RefreshDocsInput defines input for the refresh_docs tool.
type RefreshDocsInput struct{}

// RefreshDocsOutput defines output for the refresh_docs tool.
type RefreshDocsOutput struct {
	PageCount   int      `json:"page_count"`
	FailedPaths []string `json:"failed_paths,omitempty"`
}

func (s *Server) refreshDocs(ctx context.Context, req *mcp.CallToolRequest, _ RefreshDocsInput) (*mcp.CallToolResult, RefreshDocsOutput, error) {
	if err := s.crawler.ScrapeAll(ctx); err != nil {
		return nil, RefreshDocsOutput{}, err
	}

	count, err := s.store.PageCount(ctx)
	if err != nil {
		return nil, RefreshDocsOutput{}, err
	}
	return nil, RefreshDocsOutput{
		PageCount:   count,
		FailedPaths: s.crawler.FailureStats().FailedPaths,
	}, nil
}
