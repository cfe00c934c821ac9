package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcsenpai/mcpbook"
	mbhttp "github.com/tcsenpai/mcpbook/http"
)

func TestFetcher_Fetch_returns_HTML(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	f := mbhttp.NewFetcher()
	defer f.Close()

	html, err := f.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, "hello")
}

func TestFetcher_Fetch_server_error_is_retryable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	f := mbhttp.NewFetcher()
	defer f.Close()

	_, err := f.Fetch(context.Background(), srv.URL)

	require.Error(t, err)
	var fe *mcpbook.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusBadGateway, fe.StatusCode)
	assert.True(t, fe.Retryable())
}

func TestFetcher_Fetch_not_found_is_permanent(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	f := mbhttp.NewFetcher()
	defer f.Close()

	_, err := f.Fetch(context.Background(), srv.URL+"/missing")

	var fe *mcpbook.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusNotFound, fe.StatusCode)
	assert.False(t, fe.Retryable())
	assert.False(t, mcpbook.RetryableFetch(err))
}

func TestFetcher_Fetch_rejects_non_HTML(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"not":"html"}`))
	}))
	defer srv.Close()

	f := mbhttp.NewFetcher()
	defer f.Close()

	_, err := f.Fetch(context.Background(), srv.URL)

	var fe *mcpbook.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "application/json", fe.ContentType)
	assert.False(t, fe.Retryable())
}
