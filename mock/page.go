package mock

import (
	"context"
	"time"

	"github.com/tcsenpai/mcpbook"
)

var _ mcpbook.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of mcpbook.PageStore.
type PageStore struct {
	UpsertPagesFn       func(ctx context.Context, pages []*mcpbook.Page) error
	PageFn              func(ctx context.Context, path string) (*mcpbook.Page, error)
	AllPagesFn          func(ctx context.Context) (map[string]*mcpbook.Page, error)
	PagesBySectionFn    func(ctx context.Context, section string) ([]*mcpbook.Page, error)
	SectionsFn          func(ctx context.Context) ([]string, error)
	PageCountFn         func(ctx context.Context) (int, error)
	SampleRandomPagesFn func(ctx context.Context, n int) ([]*mcpbook.Page, error)
	SearchFn            func(ctx context.Context, query string, limit, offset int) ([]*mcpbook.SearchResult, error)
	TouchCheckedFn      func(ctx context.Context, paths []string, checkedAt time.Time) error
	StatsFn             func(ctx context.Context) (*mcpbook.StoreStats, error)
	MetaFn              func(ctx context.Context, key string) (string, error)
	SetMetaFn           func(ctx context.Context, key, value string) error
}

func (s *PageStore) UpsertPages(ctx context.Context, pages []*mcpbook.Page) error {
	return s.UpsertPagesFn(ctx, pages)
}

func (s *PageStore) Page(ctx context.Context, path string) (*mcpbook.Page, error) {
	return s.PageFn(ctx, path)
}

func (s *PageStore) AllPages(ctx context.Context) (map[string]*mcpbook.Page, error) {
	return s.AllPagesFn(ctx)
}

func (s *PageStore) PagesBySection(ctx context.Context, section string) ([]*mcpbook.Page, error) {
	return s.PagesBySectionFn(ctx, section)
}

func (s *PageStore) Sections(ctx context.Context) ([]string, error) {
	return s.SectionsFn(ctx)
}

func (s *PageStore) PageCount(ctx context.Context) (int, error) {
	return s.PageCountFn(ctx)
}

func (s *PageStore) SampleRandomPages(ctx context.Context, n int) ([]*mcpbook.Page, error) {
	return s.SampleRandomPagesFn(ctx, n)
}

func (s *PageStore) Search(ctx context.Context, query string, limit, offset int) ([]*mcpbook.SearchResult, error) {
	return s.SearchFn(ctx, query, limit, offset)
}

func (s *PageStore) TouchChecked(ctx context.Context, paths []string, checkedAt time.Time) error {
	return s.TouchCheckedFn(ctx, paths, checkedAt)
}

func (s *PageStore) Stats(ctx context.Context) (*mcpbook.StoreStats, error) {
	return s.StatsFn(ctx)
}

func (s *PageStore) Meta(ctx context.Context, key string) (string, error) {
	return s.MetaFn(ctx, key)
}

func (s *PageStore) SetMeta(ctx context.Context, key, value string) error {
	return s.SetMetaFn(ctx, key, value)
}
