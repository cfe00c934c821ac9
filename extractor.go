package mcpbook

// ExtractResult holds the structured content derived from one HTML page.
type ExtractResult struct {
	// Title is the page title, from the document title or first heading.
	Title string

	// ContentHTML is the main content as clean HTML with boilerplate
	// (nav, sidebar, breadcrumbs, table of contents) removed.
	ContentHTML string

	// PlainText is the whitespace-normalized text of ContentHTML.
	PlainText string

	// CodeBlocks are the code samples found in the main content, in
	// document order, deduplicated by (language, code).
	CodeBlocks []CodeBlock
}

// Extractor derives structured content from raw HTML.
type Extractor interface {
	// Extract processes raw HTML and returns the main content. It prefers
	// a semantic content container and falls back to the stripped body
	// when none is present.
	Extract(html string) (*ExtractResult, error)
}
