package search

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Tomlord1122/todo-docs/internal/docs"
)

// Builder produces a fitted index.
type Builder func(ctx context.Context) (*Index, error)

// Cache builds an index on first use and hands the same index to every later
// caller. Concurrent first callers wait for a single build. A failed build is
// not cached; the next Get tries again.
type Cache struct {
	mu    sync.Mutex
	build Builder
	index *Index
}

// NewCache creates a Cache around build.
func NewCache(build Builder) *Cache {
	return &Cache{build: build}
}

// Get returns the cached index, building it if needed.
func (c *Cache) Get(ctx context.Context) (*Index, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.index != nil {
		return c.index, nil
	}
	index, err := c.build(ctx)
	if err != nil {
		return nil, err
	}
	c.index = index
	return index, nil
}

// Reset closes and drops the cached index so that the next Get rebuilds it.
// It is meant for tests: an index handed out by Get is used outside the
// lock, so Reset must not run while a search may still be in flight.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.index != nil {
		_ = c.index.Close()
		c.index = nil
	}
}

// ArchiveBuilder returns a Builder that ensures the archive is on disk,
// loads its documentation files and fits a new index over them.
func ArchiveBuilder(archive *docs.Archive, logger *slog.Logger, exts ...string) Builder {
	logger = logger.With("component", "indexer")
	return func(ctx context.Context) (*Index, error) {
		start := time.Now()

		root, err := archive.Ensure(ctx)
		if err != nil {
			return nil, err
		}
		documents, err := docs.Load(ctx, root, exts...)
		if err != nil {
			return nil, err
		}

		index := NewIndex()
		if err := index.Fit(documents); err != nil {
			return nil, fmt.Errorf("search: build index: %w", err)
		}

		logger.InfoContext(ctx, "index built",
			slog.Int("documents", len(documents)),
			slog.Duration("duration", time.Since(start)),
		)
		return index, nil
	}
}
