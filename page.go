package mcpbook

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
	"unicode"
)

// Page represents one indexed documentation page. Path is the canonical
// site-relative identifier and the unique key within a crawl target.
type Page struct {
	Path       string `json:"path"`
	Title      string `json:"title"`
	Section    string `json:"section"`
	Subsection string `json:"subsection"`

	// Three renderings of the same content, all derived deterministically
	// from one HTML fetch.
	PlainText      string `json:"plainText"`
	Markdown       string `json:"markdown"`
	RawContentHTML string `json:"rawContentHtml"`

	CodeBlocks []CodeBlock `json:"codeBlocks"`

	// ContentFingerprint is a hash over (plainText, title), the unit of
	// change detection. Recomputed if and only if the page was freshly
	// fetched.
	ContentFingerprint string `json:"contentFingerprint"`

	// SourceURL is the fully resolved URL used to fetch the page.
	SourceURL string `json:"sourceUrl"`

	// LastFetchedAt updates only when content is re-extracted.
	// LastCheckedAt updates on every liveness check, including checks
	// that find no change.
	LastFetchedAt time.Time `json:"lastFetchedAt"`
	LastCheckedAt time.Time `json:"lastCheckedAt"`

	// SearchableText is a normalized projection of title+content+section
	// used for ranking; regenerated whenever content changes.
	SearchableText string `json:"searchableText"`
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.Path == "" {
		return Errorf(EINVALID, "page path required")
	}
	if !strings.HasPrefix(p.Path, "/") {
		return Errorf(EINVALID, "page path must be site-relative: %q", p.Path)
	}
	if p.SourceURL == "" {
		return Errorf(EINVALID, "page source URL required")
	}
	return nil
}

// CodeBlock is one extracted code sample with its detected language.
type CodeBlock struct {
	Language       string `json:"language"`
	Code           string `json:"code"`
	Title          string `json:"title,omitempty"`
	HasLineNumbers bool   `json:"hasLineNumbers"`
}

// SearchResult is one ranked full-text search hit.
type SearchResult struct {
	Path       string  `json:"path"`
	Title      string  `json:"title"`
	Section    string  `json:"section"`
	Subsection string  `json:"subsection"`
	Snippet    string  `json:"snippet"`
	Score      float64 `json:"score"`
}

// FailureStats reports pages that never succeeded during one crawl run.
// It is ephemeral: cleared on success, never persisted across runs.
type FailureStats struct {
	FailedPaths        []string `json:"failedPaths"`
	TotalRetryAttempts int      `json:"totalRetryAttempts"`
}

// StoreStats summarizes the persisted corpus.
type StoreStats struct {
	PageCount     int           `json:"pageCount"`
	SectionCount  int           `json:"sectionCount"`
	LastUpdated   time.Time     `json:"lastUpdated"`
	AvgContentAge time.Duration `json:"avgContentAge"`
}

// Fingerprint computes the content fingerprint over a page's title and
// extracted plain text. A NUL separator keeps field boundaries from
// aliasing (title "ab"+text "c" vs title "a"+text "bc").
func Fingerprint(title, plainText string) string {
	h := sha256.New()
	h.Write([]byte(title))
	h.Write([]byte{0})
	h.Write([]byte(plainText))
	return hex.EncodeToString(h.Sum(nil))
}

// BuildSearchableText builds the normalized ranking projection for a
// page: title, section, subsection and plain text, lowercased with
// whitespace and punctuation runs collapsed to single spaces.
func BuildSearchableText(title, section, subsection, plainText string) string {
	var b strings.Builder
	b.Grow(len(title) + len(section) + len(subsection) + len(plainText) + 3)

	lastSpace := true
	appendNormalized := func(s string) {
		for _, r := range s {
			if unicode.IsLetter(r) || unicode.IsNumber(r) {
				b.WriteRune(unicode.ToLower(r))
				lastSpace = false
			} else if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
		if !lastSpace {
			b.WriteByte(' ')
			lastSpace = true
		}
	}

	appendNormalized(title)
	appendNormalized(section)
	appendNormalized(subsection)
	appendNormalized(plainText)

	return strings.TrimSpace(b.String())
}
