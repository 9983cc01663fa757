// Package scraper fetches readable page content from a remote extraction
// service that turns any URL into markdown.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the Jina Reader endpoint; the target URL is appended to it.
const DefaultBaseURL = "https://r.jina.ai"

// DefaultTimeout bounds a single fetch.
const DefaultTimeout = 60 * time.Second

// ErrEmptyURL is returned when Fetch is called without a target.
var ErrEmptyURL = errors.New("scraper: url is required")

// StatusError reports a non-2xx answer from the extraction service.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("scraper: %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// Reader calls the extraction service.
type Reader struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewReader creates a Reader. An empty baseURL means DefaultBaseURL and a
// non-positive timeout means DefaultTimeout.
func NewReader(baseURL string, timeout time.Duration, logger *slog.Logger) *Reader {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Reader{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "reader"),
	}
}

// Fetch returns the markdown rendering of target. There is no retry: any
// transport error or non-2xx status is returned to the caller.
func (r *Reader) Fetch(ctx context.Context, target string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", ErrEmptyURL
	}
	reqURL := r.baseURL + "/" + target

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("scraper: create request: %w", err)
	}
	req.Header.Set("Accept", "text/markdown")
	req.Header.Set("X-Return-Format", "markdown")

	r.log.DebugContext(ctx, "reader request", slog.String("url", target))

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.ErrorContext(ctx, "reader request failed", slog.String("url", target), slog.String("error", err.Error()))
		return "", fmt.Errorf("scraper: request %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", &StatusError{StatusCode: resp.StatusCode, URL: target}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("scraper: read body: %w", err)
	}

	r.log.DebugContext(ctx, "reader response",
		slog.String("url", target),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(body)),
	)
	return string(body), nil
}
