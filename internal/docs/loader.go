package docs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"
)

// DefaultExtensions are the documentation files that get indexed.
var DefaultExtensions = []string{".md", ".mdx"}

const loadConcurrency = 8

// Document is a file loaded into memory. Filename is relative to the root
// it was loaded from and always uses forward slashes.
type Document struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// Load reads every file under root whose extension is in exts (DefaultExtensions
// when empty). Documents are returned sorted by Filename.
func Load(ctx context.Context, root string, exts ...string) ([]Document, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	wanted := make(map[string]bool, len(exts))
	for _, e := range exts {
		wanted[e] = true
	}

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() && wanted[filepath.Ext(path)] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("docs: walk %s: %w", root, err)
	}

	documents := make([]Document, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("docs: read %s: %w", path, err)
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return fmt.Errorf("docs: relative path %s: %w", path, err)
			}
			documents[i] = Document{Filename: filepath.ToSlash(rel), Content: string(content)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(documents, func(i, j int) bool { return documents[i].Filename < documents[j].Filename })
	return documents, nil
}
