// Package docstest builds small documentation archives for tests.
package docstest

import (
	"archive/zip"
	"bytes"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync/atomic"
	"testing"
)

// Files is a small documentation tree rooted at "fastmcp-main/".
var Files = map[string]string{
	"README.md":                   "# FastMCP\n\nThe fast, Pythonic way to build MCP servers. See the demo below.\n",
	"docs/getting-started.mdx":    "---\ntitle: Getting started\n---\n\nInstall FastMCP and run the demo server with `fastmcp run demo.py`.\n",
	"docs/servers/tools.mdx":      "# Tools\n\nTools let the model call Python functions. A demo tool adds two numbers.\n",
	"docs/servers/resources.mdx":  "# Resources\n\nResources expose read-only data to clients.\n",
	"docs/clients/client.md":      "# Client\n\nThe client connects to any MCP server over stdio or HTTP.\n",
	"examples/demo.md":            "# Demo\n\nA complete demo server showing tools, resources and prompts. Demo, demo, demo.\n",
	"examples/echo.md":            "# Echo\n\nEchoes the input back.\n",
	"docs/deployment/running.mdx": "# Running\n\nRun the server in production with uvicorn.\n",
	"src/fastmcp/server.py":       "print('not documentation')\n",
	"docs/images/logo.png":        "\x89PNG",
}

// DocCount is how many entries of Files are .md or .mdx.
const DocCount = 8

// Zip builds an archive whose entries live under root/.
func Zip(t testing.TB, root string, files map[string]string) []byte {
	t.Helper()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if _, err := zw.Create(root + "/"); err != nil {
		t.Fatalf("docstest: create root: %v", err)
	}
	for _, name := range names {
		w, err := zw.Create(root + "/" + name)
		if err != nil {
			t.Fatalf("docstest: create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(files[name])); err != nil {
			t.Fatalf("docstest: write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("docstest: close zip: %v", err)
	}
	return buf.Bytes()
}

// Server serves body at every path and counts the requests it answered.
type Server struct {
	*httptest.Server
	Hits atomic.Int32
}

// Serve starts a Server for body; it is closed via t.Cleanup.
func Serve(t testing.TB, body []byte) *Server {
	t.Helper()
	s := &Server{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Hits.Add(1)
		w.Header().Set("Content-Type", "application/zip")
		_, _ = w.Write(body)
	}))
	t.Cleanup(s.Close)
	return s
}
