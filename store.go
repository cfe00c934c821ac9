package mcpbook

import (
	"context"
	"time"
)

// Metadata keys maintained by the store.
const (
	// MetaLastUpdated holds the RFC3339 timestamp of the last completed
	// full population.
	MetaLastUpdated = "last_updated"

	// MetaLastRunID holds the identifier of the last crawl run.
	MetaLastRunID = "last_run_id"

	// MetaClassification holds an opaque blob written by an external
	// site classifier. The core stores it without interpreting it.
	MetaClassification = "classification"
)

// PageStore is the persistence and full-text search layer for one crawl
// target: durable page records, a search index kept atomically in sync
// with them, and cache metadata.
type PageStore interface {
	// UpsertPages transactionally creates or replaces page records. The
	// search index update is atomic with the record write: there is no
	// window where a record exists without being searchable.
	UpsertPages(ctx context.Context, pages []*Page) error

	// Page retrieves a page by its site-relative path.
	// Returns ENOTFOUND if no such page exists.
	Page(ctx context.Context, path string) (*Page, error)

	// AllPages returns the full corpus keyed by path.
	AllPages(ctx context.Context) (map[string]*Page, error)

	// PagesBySection returns all pages in a section.
	PagesBySection(ctx context.Context, section string) ([]*Page, error)

	// Sections returns all distinct section names.
	Sections(ctx context.Context) ([]string, error)

	// PageCount returns the number of stored pages.
	PageCount(ctx context.Context) (int, error)

	// SampleRandomPages returns up to n pages chosen at random, so
	// callers needing a quick content overview never load the full
	// corpus.
	SampleRandomPages(ctx context.Context, n int) ([]*Page, error)

	// Search runs a ranked full-text query over title, searchable text,
	// section and subsection, with a short snippet per hit and stable
	// limit/offset pagination.
	Search(ctx context.Context, query string, limit, offset int) ([]*SearchResult, error)

	// TouchChecked bumps LastCheckedAt for the given paths without
	// touching content fields.
	TouchChecked(ctx context.Context, paths []string, checkedAt time.Time) error

	// Stats summarizes the stored corpus.
	Stats(ctx context.Context) (*StoreStats, error)

	// Meta reads a metadata value. Returns ENOTFOUND for missing keys.
	Meta(ctx context.Context, key string) (string, error)

	// SetMeta writes a metadata value.
	SetMeta(ctx context.Context, key, value string) error
}
