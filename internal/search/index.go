// Package search builds an in-memory full-text index over documents and
// caches it for the lifetime of the process.
package search

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/blevesearch/bleve/v2"

	"github.com/Tomlord1122/todo-docs/internal/docs"
)

// DefaultLimit is the number of results returned when the caller gives none.
const DefaultLimit = 5

// ErrNotFitted is returned by Search before Fit has succeeded.
var ErrNotFitted = errors.New("search: index has not been fitted")

// Result is one search hit.
type Result struct {
	Filename string  `json:"filename"`
	Content  string  `json:"content"`
	Score    float64 `json:"score"`
}

// Index is a full-text index over the content and filename fields of a
// document set. Ranking is bleve's.
type Index struct {
	idx  bleve.Index
	docs []docs.Document
}

// NewIndex returns an empty, unfitted index.
func NewIndex() *Index {
	return &Index{}
}

// Fit replaces the indexed document set.
func (i *Index) Fit(documents []docs.Document) error {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return fmt.Errorf("search: create index: %w", err)
	}

	batch := idx.NewBatch()
	for n, d := range documents {
		err := batch.Index(strconv.Itoa(n), map[string]any{
			"content":  d.Content,
			"filename": filenameTerms(d.Filename),
		})
		if err != nil {
			_ = idx.Close()
			return fmt.Errorf("search: index %s: %w", d.Filename, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return fmt.Errorf("search: commit batch: %w", err)
	}

	if i.idx != nil {
		_ = i.idx.Close()
	}
	i.idx = idx
	i.docs = documents
	return nil
}

// Len is the number of indexed documents.
func (i *Index) Len() int {
	return len(i.docs)
}

// Search returns up to limit documents matching query, best first. A
// non-positive limit means DefaultLimit; a blank query matches nothing.
func (i *Index) Search(query string, limit int) ([]Result, error) {
	if i.idx == nil {
		return nil, ErrNotFitted
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return []Result{}, nil
	}

	content := bleve.NewMatchQuery(query)
	content.SetField("content")
	filename := bleve.NewMatchQuery(filenameTerms(query))
	filename.SetField("filename")

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(content, filename), limit, 0, false)
	res, err := i.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search: query %q: %w", query, err)
	}

	results := make([]Result, 0, len(res.Hits))
	for _, hit := range res.Hits {
		n, err := strconv.Atoi(hit.ID)
		if err != nil || n < 0 || n >= len(i.docs) {
			continue
		}
		d := i.docs[n]
		results = append(results, Result{Filename: d.Filename, Content: d.Content, Score: hit.Score})
	}
	return results, nil
}

// Close releases the underlying index.
func (i *Index) Close() error {
	if i.idx == nil {
		return nil
	}
	err := i.idx.Close()
	i.idx = nil
	return err
}

// filenameTerms splits a path into words so that "docs/servers/tools.mdx"
// matches "tools" and "servers".
func filenameTerms(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, name)
}
