package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tomlord1122/todo-docs/internal/logging"
)

func TestReader_Fetch_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/https://github.com/alexeygrigorev/minsearch", r.URL.Path)
		assert.Equal(t, "text/markdown", r.Header.Get("Accept"))
		assert.Equal(t, "markdown", r.Header.Get("X-Return-Format"))
		_, _ = w.Write([]byte("# minsearch\n\nMinimalistic text search engine."))
	}))
	defer srv.Close()

	reader := NewReader(srv.URL+"/", time.Second, logging.Discard())
	content, err := reader.Fetch(context.Background(), "https://github.com/alexeygrigorev/minsearch")
	require.NoError(t, err)
	assert.Equal(t, "# minsearch\n\nMinimalistic text search engine.", content)
}

func TestReader_Fetch_StatusError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	reader := NewReader(srv.URL, time.Second, logging.Discard())
	_, err := reader.Fetch(context.Background(), "https://example.com")
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, "https://example.com", statusErr.URL)
	assert.EqualValues(t, 1, calls.Load(), "no retry expected")
}

func TestReader_Fetch_EmptyURL(t *testing.T) {
	t.Parallel()

	reader := NewReader("", 0, logging.Discard())
	_, err := reader.Fetch(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyURL)
	assert.Equal(t, DefaultBaseURL, reader.baseURL)
	assert.Equal(t, DefaultTimeout, reader.httpClient.Timeout)
}

func TestReader_Fetch_ContextCancelled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("late"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader := NewReader(srv.URL, time.Second, logging.Discard())
	_, err := reader.Fetch(ctx, "https://example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
