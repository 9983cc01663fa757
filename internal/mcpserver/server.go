// Package mcpserver exposes the toolbox over the Model Context Protocol.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Tomlord1122/todo-docs/internal/search"
	"github.com/Tomlord1122/todo-docs/internal/tools"
)

// Name is the server name reported to clients.
const Name = "Demo"

type handlers struct {
	toolbox *tools.Toolbox
	log     *slog.Logger
}

// New builds an MCP server with the add, scrape_web and search_docs tools.
func New(toolbox *tools.Toolbox, version string, logger *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer(Name, version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s.AddTools(Tools(toolbox, logger)...)
	return s
}

// Tools returns the tool definitions bound to toolbox.
func Tools(toolbox *tools.Toolbox, logger *slog.Logger) []server.ServerTool {
	h := &handlers{toolbox: toolbox, log: logger.With("component", "mcp")}
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("add",
				mcp.WithDescription("Add two numbers"),
				mcp.WithNumber("a", mcp.Required(), integer, mcp.Description("First addend")),
				mcp.WithNumber("b", mcp.Required(), integer, mcp.Description("Second addend")),
			),
			Handler: h.add,
		},
		{
			Tool: mcp.NewTool("scrape_web",
				mcp.WithDescription("Scrape the content of a web page and return it as markdown"),
				mcp.WithString("url", mcp.Required(), mcp.Description("The URL of the web page to scrape")),
			),
			Handler: h.scrapeWeb,
		},
		{
			Tool: mcp.NewTool("search_docs",
				mcp.WithDescription("Search the FastMCP documentation for the given query"),
				mcp.WithString("query", mcp.Required(), mcp.Description("The search query")),
				mcp.WithNumber("limit",
					mcp.DefaultNumber(search.DefaultLimit),
					mcp.Description("Maximum number of results to return"),
				),
			),
			Handler: h.searchDocs,
		},
	}
}

// ServeStdio serves s on stdin/stdout. Protocol errors go to errLog.
func ServeStdio(s *server.MCPServer, errLog io.Writer) error {
	return server.ServeStdio(s, server.WithErrorLogger(
		slog.NewLogLogger(slog.NewTextHandler(errLog, nil), slog.LevelError),
	))
}

// integer narrows a number property to whole numbers in the input schema.
func integer(schema map[string]any) {
	schema["type"] = "integer"
}

// requireInteger returns the integer argument key. Fractional and
// out-of-range values are rejected rather than truncated.
func requireInteger(req mcp.CallToolRequest, key string) (int, error) {
	raw, ok := req.GetArguments()[key]
	if !ok {
		return 0, fmt.Errorf("required argument %q not found", key)
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		if v < math.MinInt || v > math.MaxInt {
			return 0, fmt.Errorf("argument %q is out of range: %d", key, v)
		}
		return int(v), nil
	case float64:
		if math.IsNaN(v) || v != math.Trunc(v) {
			return 0, fmt.Errorf("argument %q must be an integer, got %v", key, v)
		}
		if v < math.MinInt || v >= math.MaxInt {
			return 0, fmt.Errorf("argument %q is out of range: %v", key, v)
		}
		return int(v), nil
	case json.Number:
		n, err := strconv.ParseInt(string(v), 10, strconv.IntSize)
		if err != nil {
			return 0, fmt.Errorf("argument %q must be an integer, got %s", key, v)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("argument %q must be an integer, got %T", key, raw)
	}
}

func (h *handlers) add(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, err := requireInteger(req, "a")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, err := requireInteger(req, "b")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(strconv.Itoa(h.toolbox.Add(a, b))), nil
}

func (h *handlers) scrapeWeb(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := h.toolbox.ScrapeWeb(ctx, url)
	if err != nil {
		h.log.WarnContext(ctx, "scrape_web failed", slog.String("url", url), slog.Any("error", err))
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(content), nil
}

func (h *handlers) searchDocs(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	limit := req.GetInt("limit", search.DefaultLimit)

	results, err := h.toolbox.SearchDocs(ctx, query, limit)
	if err != nil {
		h.log.WarnContext(ctx, "search_docs failed", slog.String("query", query), slog.Any("error", err))
		return mcp.NewToolResultError(err.Error()), nil
	}
	body, err := json.Marshal(results)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(body)), nil
}
