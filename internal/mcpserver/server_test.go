package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tomlord1122/todo-docs/internal/docs"
	"github.com/Tomlord1122/todo-docs/internal/docs/docstest"
	"github.com/Tomlord1122/todo-docs/internal/logging"
	"github.com/Tomlord1122/todo-docs/internal/search"
	"github.com/Tomlord1122/todo-docs/internal/tools"
)

type fetcherFunc func(ctx context.Context, url string) (string, error)

func (f fetcherFunc) Fetch(ctx context.Context, url string) (string, error) { return f(ctx, url) }

func newTools(t *testing.T, fetcher tools.Fetcher) map[string]server.ServerTool {
	t.Helper()
	srv := docstest.Serve(t, docstest.Zip(t, docs.DefaultArchiveName, docstest.Files))
	archive := docs.NewArchive(docs.ArchiveConfig{URL: srv.URL, CacheDir: t.TempDir()}, nil, logging.Discard())
	cache := search.NewCache(search.ArchiveBuilder(archive, logging.Discard()))
	t.Cleanup(cache.Reset)

	byName := make(map[string]server.ServerTool)
	for _, st := range Tools(tools.New(fetcher, cache, logging.Discard()), logging.Discard()) {
		byName[st.Tool.Name] = st
	}
	return byName
}

func call(t *testing.T, st server.ServerTool, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Name = st.Tool.Name
	req.Params.Arguments = args

	res, err := st.Handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}

func TestTools_Registered(t *testing.T) {
	byName := newTools(t, nil)
	assert.Len(t, byName, 3)
	for _, name := range []string{"add", "scrape_web", "search_docs"} {
		st, ok := byName[name]
		require.True(t, ok, name)
		assert.NotEmpty(t, st.Tool.Description)
	}
	assert.ElementsMatch(t, []string{"a", "b"}, byName["add"].Tool.InputSchema.Required)
	assert.ElementsMatch(t, []string{"query"}, byName["search_docs"].Tool.InputSchema.Required)

	s := New(tools.New(nil, nil, logging.Discard()), "test", logging.Discard())
	assert.NotNil(t, s)
}

func TestAdd(t *testing.T) {
	byName := newTools(t, nil)

	res := call(t, byName["add"], map[string]any{"a": float64(2), "b": float64(40)})
	assert.False(t, res.IsError)
	assert.Equal(t, "42", text(t, res))

	res = call(t, byName["add"], map[string]any{"a": float64(-7), "b": 3})
	assert.False(t, res.IsError)
	assert.Equal(t, "-4", text(t, res))

	res = call(t, byName["add"], map[string]any{"a": float64(1)})
	assert.True(t, res.IsError)
}

func TestAdd_RejectsNonIntegers(t *testing.T) {
	byName := newTools(t, nil)

	for name, args := range map[string]map[string]any{
		"fractional a": {"a": 1.5, "b": 2.0},
		"both halves":  {"a": 2.5, "b": 2.5},
		"out of range": {"a": 1e300, "b": 1.0},
		"string":       {"a": "1", "b": 2.0},
	} {
		t.Run(name, func(t *testing.T) {
			res := call(t, byName["add"], args)
			assert.True(t, res.IsError)
			assert.Contains(t, text(t, res), `argument "a"`)
		})
	}
}

func TestAdd_SchemaIsInteger(t *testing.T) {
	byName := newTools(t, nil)

	for _, key := range []string{"a", "b"} {
		prop, ok := byName["add"].Tool.InputSchema.Properties[key].(map[string]any)
		require.True(t, ok, key)
		assert.Equal(t, "integer", prop["type"], key)
	}
}

func TestScrapeWeb(t *testing.T) {
	byName := newTools(t, fetcherFunc(func(_ context.Context, url string) (string, error) {
		if url == "https://broken.example" {
			return "", errors.New("upstream 502")
		}
		return "# Title\n\nBody", nil
	}))

	res := call(t, byName["scrape_web"], map[string]any{"url": "https://datatalks.club/"})
	assert.False(t, res.IsError)
	assert.Equal(t, "# Title\n\nBody", text(t, res))

	res = call(t, byName["scrape_web"], map[string]any{"url": "https://broken.example"})
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "upstream 502")

	res = call(t, byName["scrape_web"], map[string]any{})
	assert.True(t, res.IsError)
}

func TestSearchDocs(t *testing.T) {
	byName := newTools(t, nil)

	res := call(t, byName["search_docs"], map[string]any{"query": "demo", "limit": float64(5)})
	require.False(t, res.IsError, text(t, res))

	var results []search.Result
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &results))
	require.NotEmpty(t, results)
	assert.LessOrEqual(t, len(results), 5)
	assert.Equal(t, "examples/demo.md", results[0].Filename)
	for _, r := range results {
		assert.NotEmpty(t, r.Filename)
		assert.NotEmpty(t, r.Content)
	}
}

func TestSearchDocs_DefaultLimit(t *testing.T) {
	byName := newTools(t, nil)

	res := call(t, byName["search_docs"], map[string]any{"query": "server tools resources client demo"})
	require.False(t, res.IsError, text(t, res))

	var results []search.Result
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &results))
	assert.Len(t, results, search.DefaultLimit)
}

func TestSearchDocs_MissingQuery(t *testing.T) {
	byName := newTools(t, nil)

	res := call(t, byName["search_docs"], map[string]any{"limit": float64(3)})
	assert.True(t, res.IsError)
}
