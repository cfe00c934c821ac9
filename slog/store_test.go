package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcsenpai/mcpbook"
	"github.com/tcsenpai/mcpbook/mock"
	mcpslog "github.com/tcsenpai/mcpbook/slog"
)

func TestLoggingPageStore_Search(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.PageStore{
		SearchFn: func(_ context.Context, query string, limit, offset int) ([]*mcpbook.SearchResult, error) {
			return []*mcpbook.SearchResult{{Path: "/a"}, {Path: "/b"}}, nil
		},
	}

	store := mcpslog.NewLoggingPageStore(inner, logger)
	results, err := store.Search(context.Background(), "install", 10, 0)

	require.NoError(t, err)
	assert.Len(t, results, 2)
	output := buf.String()
	assert.Contains(t, output, "search")
	assert.Contains(t, output, "query=install")
	assert.Contains(t, output, "hits=2")
}

func TestLoggingPageStore_Delegates(t *testing.T) {
	t.Parallel()

	inner := &mock.PageStore{
		PageCountFn: func(_ context.Context) (int, error) { return 7, nil },
	}

	store := mcpslog.NewLoggingPageStore(inner, slog.New(slog.DiscardHandler))
	count, err := store.PageCount(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 7, count)
}
