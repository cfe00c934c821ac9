package crawl_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcsenpai/mcpbook"
	"github.com/tcsenpai/mcpbook/crawl"
)

func TestFetchWithBackoff(t *testing.T) {
	t.Parallel()

	quick := crawl.RetryPolicy{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 4 * time.Millisecond}

	t.Run("returns immediately on success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		html, retries, err := crawl.FetchWithBackoff(context.Background(), "https://example.com/", func(_ context.Context, _ string) (string, error) {
			calls++
			return "<html></html>", nil
		}, quick, nil)

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 0, retries)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transient failures until success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		html, retries, err := crawl.FetchWithBackoff(context.Background(), "https://example.com/", func(_ context.Context, _ string) (string, error) {
			calls++
			if calls < 3 {
				return "", &mcpbook.FetchError{URL: "https://example.com/", StatusCode: 503}
			}
			return "ok", nil
		}, quick, nil)

		require.NoError(t, err)
		assert.Equal(t, "ok", html)
		assert.Equal(t, 2, retries)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops after max retries", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, retries, err := crawl.FetchWithBackoff(context.Background(), "https://example.com/", func(_ context.Context, _ string) (string, error) {
			calls++
			return "", &mcpbook.FetchError{URL: "https://example.com/", StatusCode: 500}
		}, quick, nil)

		require.Error(t, err)
		assert.Equal(t, quick.MaxRetries, retries)
		assert.Equal(t, quick.MaxRetries+1, calls)
	})

	t.Run("permanent errors short-circuit", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, retries, err := crawl.FetchWithBackoff(context.Background(), "https://example.com/missing", func(_ context.Context, _ string) (string, error) {
			calls++
			return "", &mcpbook.FetchError{URL: "https://example.com/missing", StatusCode: 404}
		}, quick, nil)

		require.Error(t, err)
		assert.Equal(t, 0, retries)
		assert.Equal(t, 1, calls)
	})

	t.Run("canceled context stops retrying", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		_, _, err := crawl.FetchWithBackoff(ctx, "https://example.com/", func(_ context.Context, _ string) (string, error) {
			calls++
			cancel()
			return "", &mcpbook.FetchError{URL: "https://example.com/", StatusCode: 500}
		}, quick, nil)

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}

func TestRetryPolicy_Defaults(t *testing.T) {
	t.Parallel()

	def := crawl.DefaultRetryPolicy()
	assert.Equal(t, 3, def.MaxRetries)

	quick := crawl.QuickRetryPolicy()
	assert.Equal(t, 2, quick.MaxRetries)
	assert.Less(t, quick.BaseDelay, def.BaseDelay)
}
