package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/tcsenpai/mcpbook"
)

// Ensure LoggingPageStore implements mcpbook.PageStore.
var _ mcpbook.PageStore = (*LoggingPageStore)(nil)

// LoggingPageStore wraps a PageStore, logging the operations on the hot
// read path. Plumbing methods delegate without logging.
type LoggingPageStore struct {
	next   mcpbook.PageStore
	logger *slog.Logger
}

// NewLoggingPageStore creates a new LoggingPageStore.
func NewLoggingPageStore(next mcpbook.PageStore, logger *slog.Logger) *LoggingPageStore {
	return &LoggingPageStore{next: next, logger: logger}
}

// Search delegates to the wrapped store and logs the query.
func (s *LoggingPageStore) Search(ctx context.Context, query string, limit, offset int) (results []*mcpbook.SearchResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search",
			"query", query,
			"hits", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, limit, offset)
}

// UpsertPages delegates to the wrapped store and logs the write.
func (s *LoggingPageStore) UpsertPages(ctx context.Context, pages []*mcpbook.Page) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("upsert pages",
			"count", len(pages),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpsertPages(ctx, pages)
}

func (s *LoggingPageStore) Page(ctx context.Context, path string) (*mcpbook.Page, error) {
	return s.next.Page(ctx, path)
}

func (s *LoggingPageStore) AllPages(ctx context.Context) (map[string]*mcpbook.Page, error) {
	return s.next.AllPages(ctx)
}

func (s *LoggingPageStore) PagesBySection(ctx context.Context, section string) ([]*mcpbook.Page, error) {
	return s.next.PagesBySection(ctx, section)
}

func (s *LoggingPageStore) Sections(ctx context.Context) ([]string, error) {
	return s.next.Sections(ctx)
}

func (s *LoggingPageStore) PageCount(ctx context.Context) (int, error) {
	return s.next.PageCount(ctx)
}

func (s *LoggingPageStore) SampleRandomPages(ctx context.Context, n int) ([]*mcpbook.Page, error) {
	return s.next.SampleRandomPages(ctx, n)
}

func (s *LoggingPageStore) TouchChecked(ctx context.Context, paths []string, checkedAt time.Time) error {
	return s.next.TouchChecked(ctx, paths, checkedAt)
}

func (s *LoggingPageStore) Stats(ctx context.Context) (*mcpbook.StoreStats, error) {
	return s.next.Stats(ctx)
}

func (s *LoggingPageStore) Meta(ctx context.Context, key string) (string, error) {
	return s.next.Meta(ctx, key)
}

func (s *LoggingPageStore) SetMeta(ctx context.Context, key, value string) error {
	return s.next.SetMeta(ctx, key, value)
}
