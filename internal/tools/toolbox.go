// Package tools holds the operations exposed to tool-calling clients.
package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Tomlord1122/todo-docs/internal/search"
)

// Fetcher returns the readable content of a web page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// IndexProvider hands out the documentation index, building it on first use.
type IndexProvider interface {
	Get(ctx context.Context) (*search.Index, error)
}

// Toolbox implements add, scrape_web and search_docs.
type Toolbox struct {
	fetcher Fetcher
	indexes IndexProvider
	log     *slog.Logger
}

// New creates a Toolbox.
func New(fetcher Fetcher, indexes IndexProvider, logger *slog.Logger) *Toolbox {
	return &Toolbox{
		fetcher: fetcher,
		indexes: indexes,
		log:     logger.With("component", "toolbox"),
	}
}

// Add adds two numbers.
func (t *Toolbox) Add(a, b int) int {
	return a + b
}

// ScrapeWeb returns the markdown content of url.
func (t *Toolbox) ScrapeWeb(ctx context.Context, url string) (string, error) {
	content, err := t.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	t.log.InfoContext(ctx, "scraped", slog.String("url", url), slog.Int("chars", len(content)))
	return content, nil
}

// SearchDocs searches the documentation index, building it on the first call.
// A non-positive limit means search.DefaultLimit.
func (t *Toolbox) SearchDocs(ctx context.Context, query string, limit int) ([]search.Result, error) {
	index, err := t.indexes.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("tools: search_docs: %w", err)
	}
	results, err := index.Search(query, limit)
	if err != nil {
		return nil, fmt.Errorf("tools: search_docs: %w", err)
	}
	t.log.InfoContext(ctx, "searched",
		slog.String("query", query),
		slog.Int("limit", limit),
		slog.Int("results", len(results)),
	)
	return results, nil
}
