package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tcsenpai/mcpbook"
)

// Compile-time interface verification.
var _ mcpbook.PageStore = (*PageService)(nil)

// PageService implements mcpbook.PageStore using SQLite.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

const pageColumns = "path, title, section, subsection, plain_text, markdown, raw_content_html, code_blocks, content_fingerprint, source_url, last_fetched_at, last_checked_at, searchable_text"

// UpsertPages creates or replaces page records in one transaction. The
// FTS index follows via triggers, so a page is searchable exactly when
// its row is visible.
func (s *PageService) UpsertPages(ctx context.Context, pages []*mcpbook.Page) error {
	for _, page := range pages {
		if err := page.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, page := range pages {
		codeBlocks, err := json.Marshal(page.CodeBlocks)
		if err != nil {
			return fmt.Errorf("failed to encode code blocks: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO pages (`+pageColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(path) DO UPDATE SET
				title = excluded.title,
				section = excluded.section,
				subsection = excluded.subsection,
				plain_text = excluded.plain_text,
				markdown = excluded.markdown,
				raw_content_html = excluded.raw_content_html,
				code_blocks = excluded.code_blocks,
				content_fingerprint = excluded.content_fingerprint,
				source_url = excluded.source_url,
				last_fetched_at = excluded.last_fetched_at,
				last_checked_at = excluded.last_checked_at,
				searchable_text = excluded.searchable_text
		`, page.Path, page.Title, page.Section, page.Subsection, page.PlainText, page.Markdown,
			page.RawContentHTML, string(codeBlocks), page.ContentFingerprint, page.SourceURL,
			page.LastFetchedAt.UTC().Format(time.RFC3339), page.LastCheckedAt.UTC().Format(time.RFC3339),
			page.SearchableText)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Page retrieves a page by its site-relative path.
func (s *PageService) Page(ctx context.Context, path string) (*mcpbook.Page, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+pageColumns+" FROM pages WHERE path = ?", path)

	page, err := scanPage(row.Scan)
	if err == sql.ErrNoRows {
		return nil, mcpbook.Errorf(mcpbook.ENOTFOUND, "page not found: %s", path)
	}
	return page, err
}

// AllPages returns the full corpus keyed by path.
func (s *PageService) AllPages(ctx context.Context) (map[string]*mcpbook.Page, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+pageColumns+" FROM pages")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pages := make(map[string]*mcpbook.Page)
	for rows.Next() {
		page, err := scanPage(rows.Scan)
		if err != nil {
			return nil, err
		}
		pages[page.Path] = page
	}

	return pages, rows.Err()
}

// PagesBySection returns all pages in a section, ordered by path.
func (s *PageService) PagesBySection(ctx context.Context, section string) ([]*mcpbook.Page, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+pageColumns+" FROM pages WHERE section = ? ORDER BY path ASC", section)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPages(rows)
}

// Sections returns all distinct section names.
func (s *PageService) Sections(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT section FROM pages ORDER BY section ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []string
	for rows.Next() {
		var section string
		if err := rows.Scan(&section); err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}

	return sections, rows.Err()
}

// PageCount returns the number of stored pages.
func (s *PageService) PageCount(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM pages").Scan(&count)
	return count, err
}

// SampleRandomPages returns up to n pages chosen at random.
func (s *PageService) SampleRandomPages(ctx context.Context, n int) ([]*mcpbook.Page, error) {
	if n < 1 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, "SELECT "+pageColumns+" FROM pages ORDER BY RANDOM() LIMIT ?", n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPages(rows)
}

// Search runs a ranked full-text query. Results are ordered by bm25
// relevance with path as a tiebreaker so pagination is stable, and each
// hit carries a snippet around the first match.
func (s *PageService) Search(ctx context.Context, query string, limit, offset int) ([]*mcpbook.SearchResult, error) {
	match := buildMatchQuery(query)
	if match == "" {
		return nil, mcpbook.Errorf(mcpbook.EINVALID, "search query must not be empty")
	}
	if limit < 1 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT p.path, p.title, p.section, p.subsection,
			snippet(pages_fts, 1, '>>', '<<', '...', 16),
			bm25(pages_fts)
		FROM pages_fts
		JOIN pages p ON p.rowid = pages_fts.rowid
		WHERE pages_fts MATCH ?
		ORDER BY bm25(pages_fts) ASC, p.path ASC
		LIMIT ? OFFSET ?
	`, match, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*mcpbook.SearchResult
	for rows.Next() {
		var r mcpbook.SearchResult
		if err := rows.Scan(&r.Path, &r.Title, &r.Section, &r.Subsection, &r.Snippet, &r.Score); err != nil {
			return nil, err
		}
		results = append(results, &r)
	}

	return results, rows.Err()
}

// TouchChecked bumps last_checked_at for the given paths without
// touching content fields. The FTS columns are unchanged, so the update
// triggers rewrite identical index entries and ranking is unaffected.
func (s *PageService) TouchChecked(ctx context.Context, paths []string, checkedAt time.Time) error {
	if len(paths) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, path := range paths {
		if _, err := tx.ExecContext(ctx, "UPDATE pages SET last_checked_at = ? WHERE path = ?",
			checkedAt.UTC().Format(time.RFC3339), path); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Stats summarizes the stored corpus.
func (s *PageService) Stats(ctx context.Context) (*mcpbook.StoreStats, error) {
	var stats mcpbook.StoreStats
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*), COUNT(DISTINCT section) FROM pages").
		Scan(&stats.PageCount, &stats.SectionCount)
	if err != nil {
		return nil, err
	}

	if raw, err := s.Meta(ctx, mcpbook.MetaLastUpdated); err == nil {
		if t, err := parseRFC3339(raw, "last_updated"); err == nil {
			stats.LastUpdated = t
		}
	}

	if stats.PageCount > 0 {
		rows, err := s.db.QueryContext(ctx, "SELECT last_fetched_at FROM pages")
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var total time.Duration
		n := 0
		for rows.Next() {
			var fetched string
			if err := rows.Scan(&fetched); err != nil {
				return nil, err
			}
			t, err := parseRFC3339(fetched, "last_fetched_at")
			if err != nil {
				return nil, err
			}
			total += time.Since(t)
			n++
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
		if n > 0 {
			stats.AvgContentAge = total / time.Duration(n)
		}
	}

	return &stats, nil
}

// Meta reads a metadata value.
func (s *PageService) Meta(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", mcpbook.Errorf(mcpbook.ENOTFOUND, "meta key not found: %s", key)
	}
	return value, err
}

// SetMeta writes a metadata value.
func (s *PageService) SetMeta(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// buildMatchQuery turns free-form user input into an FTS5 MATCH
// expression: each term is quoted to neutralize operator syntax and
// given a prefix wildcard so leading substrings still match.
func buildMatchQuery(query string) string {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return ""
	}

	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.ReplaceAll(term, `"`, `""`)
		quoted = append(quoted, `"`+term+`"*`)
	}
	return strings.Join(quoted, " ")
}

// scanPage scans one pages row in pageColumns order.
func scanPage(scan func(dest ...any) error) (*mcpbook.Page, error) {
	var page mcpbook.Page
	var codeBlocks, lastFetchedAt, lastCheckedAt string

	err := scan(&page.Path, &page.Title, &page.Section, &page.Subsection, &page.PlainText,
		&page.Markdown, &page.RawContentHTML, &codeBlocks, &page.ContentFingerprint,
		&page.SourceURL, &lastFetchedAt, &lastCheckedAt, &page.SearchableText)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(codeBlocks), &page.CodeBlocks); err != nil {
		return nil, fmt.Errorf("failed to decode code blocks: %w", err)
	}
	if page.LastFetchedAt, err = parseRFC3339(lastFetchedAt, "last_fetched_at"); err != nil {
		return nil, err
	}
	if page.LastCheckedAt, err = parseRFC3339(lastCheckedAt, "last_checked_at"); err != nil {
		return nil, err
	}

	return &page, nil
}

func collectPages(rows *sql.Rows) ([]*mcpbook.Page, error) {
	var pages []*mcpbook.Page
	for rows.Next() {
		page, err := scanPage(rows.Scan)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, rows.Err()
}
