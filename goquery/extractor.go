// Package goquery provides CSS-selector based implementations of
// mcpbook.Extractor and mcpbook.LinkExtractor.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tcsenpai/mcpbook"
	"golang.org/x/net/html"
)

// Ensure Extractor implements mcpbook.Extractor at compile time.
var _ mcpbook.Extractor = (*Extractor)(nil)

// contentSelectors are tried in order to find the main content region.
var contentSelectors = []string{
	"article",
	"main",
	"[role='main']",
	".theme-doc-markdown",
	".markdown-section",
	".content",
	"#content",
	".document",
}

// stripSelectors are removed before content selection: navigation,
// sidebars, breadcrumbs and tables of contents never contribute to page
// content or to the fingerprint.
var stripSelectors = strings.Join([]string{
	"script", "style", "noscript", "template",
	"nav", "header", "footer", "aside",
	".sidebar", ".side-nav", ".menu",
	".breadcrumb", ".breadcrumbs",
	".toc", ".table-of-contents", ".on-this-page",
	".pagination", ".edit-page-link",
}, ", ")

// Extractor derives structured content from raw HTML using CSS
// selectors.
type Extractor struct {
	languages *LanguageSet
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithLanguages replaces the default code language allow-list.
func WithLanguages(ls *LanguageSet) ExtractorOption {
	return func(e *Extractor) {
		e.languages = ls
	}
}

// NewExtractor creates a new Extractor with the default language set.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		languages: DefaultLanguages(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*mcpbook.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, mcpbook.Errorf(mcpbook.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, mcpbook.Errorf(mcpbook.EINVALID, "failed to parse HTML: %v", err)
	}

	title := extractTitle(doc)

	// Boilerplate goes first so a content container nested inside a
	// stripped region cannot be selected.
	doc.Find(stripSelectors).Remove()

	content := selectContent(doc)

	contentHTML, err := goquery.OuterHtml(content)
	if err != nil {
		return nil, err
	}

	return &mcpbook.ExtractResult{
		Title:       title,
		ContentHTML: contentHTML,
		PlainText:   textOf(content),
		CodeBlocks:  extractCodeBlocks(content, e.languages),
	}, nil
}

// selectContent returns the best content container, falling back to the
// stripped body when no semantic container is present.
func selectContent(doc *goquery.Document) *goquery.Selection {
	for _, selector := range contentSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() > 0 && strings.TrimSpace(sel.Text()) != "" {
			return sel
		}
	}
	return doc.Find("body").First()
}

// extractTitle reads the document title, preferring <title> and falling
// back to the first <h1>. Site-name suffixes like " | Example Docs" are
// dropped.
func extractTitle(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}

	for _, sep := range []string{" | ", " – ", " — ", " · "} {
		if idx := strings.Index(title, sep); idx > 0 {
			title = title[:idx]
			break
		}
	}
	return strings.TrimSpace(title)
}

// textOf walks the selection's nodes and returns whitespace-normalized
// plain text. Element boundaries become single spaces, so formatting-only
// DOM changes do not alter the result.
func textOf(sel *goquery.Selection) string {
	var b strings.Builder

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
			return
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "template":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range sel.Nodes {
		walk(n)
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
