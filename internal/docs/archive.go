// Package docs keeps a local copy of a documentation archive and loads its
// markdown files into memory.
package docs

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultArchiveURL  = "https://github.com/jlowin/fastmcp/archive/refs/heads/main.zip"
	DefaultArchiveName = "fastmcp-main"
)

// DownloadError reports a non-2xx answer from the archive host.
type DownloadError struct {
	StatusCode int
	URL        string
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("docs: download %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// ArchiveConfig says where the archive comes from and where it is cached.
type ArchiveConfig struct {
	URL      string
	CacheDir string
	// Name is both the cache file stem and the archive's top-level directory.
	Name string
}

// Archive is an on-disk cache of a zip archive and its extracted tree.
type Archive struct {
	cfg    ArchiveConfig
	client *http.Client
	log    *slog.Logger
}

// NewArchive creates an Archive, filling unset config with the defaults.
func NewArchive(cfg ArchiveConfig, client *http.Client, logger *slog.Logger) *Archive {
	if cfg.URL == "" {
		cfg.URL = DefaultArchiveURL
	}
	if cfg.Name == "" {
		cfg.Name = DefaultArchiveName
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = "."
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Archive{cfg: cfg, client: client, log: logger.With("component", "archive")}
}

// ZipPath is where the downloaded archive is kept.
func (a *Archive) ZipPath() string {
	return filepath.Join(a.cfg.CacheDir, a.cfg.Name+".zip")
}

// ExtractDir is where the archive is unpacked.
func (a *Archive) ExtractDir() string {
	return filepath.Join(a.cfg.CacheDir, a.cfg.Name+"-extracted")
}

// Root is the top-level directory inside ExtractDir.
func (a *Archive) Root() string {
	return filepath.Join(a.ExtractDir(), a.cfg.Name)
}

// Ensure downloads the archive if it is not cached yet, unpacks it if it has
// not been unpacked yet, and returns Root. Each step runs at most once per
// cache directory: an existing file or directory is trusted as-is.
func (a *Archive) Ensure(ctx context.Context) (string, error) {
	if err := a.download(ctx); err != nil {
		return "", err
	}
	if err := a.extract(); err != nil {
		return "", err
	}
	return a.Root(), nil
}

func (a *Archive) download(ctx context.Context) error {
	zipPath := a.ZipPath()
	if _, err := os.Stat(zipPath); err == nil {
		a.log.DebugContext(ctx, "archive already downloaded", slog.String("path", zipPath))
		return nil
	}

	a.log.InfoContext(ctx, "downloading archive", slog.String("url", a.cfg.URL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("docs: create request: %w", err)
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("docs: download %s: %w", a.cfg.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &DownloadError{StatusCode: resp.StatusCode, URL: a.cfg.URL}
	}

	if err := os.MkdirAll(a.cfg.CacheDir, 0o755); err != nil {
		return fmt.Errorf("docs: create cache dir: %w", err)
	}
	tmp, err := os.CreateTemp(a.cfg.CacheDir, a.cfg.Name+".*.zip.part")
	if err != nil {
		return fmt.Errorf("docs: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("docs: write archive: %w", err)
	}
	if err := os.Rename(tmp.Name(), zipPath); err != nil {
		return fmt.Errorf("docs: store archive: %w", err)
	}

	a.log.InfoContext(ctx, "archive downloaded", slog.String("path", zipPath), slog.Int64("bytes", n))
	return nil
}

func (a *Archive) extract() error {
	dest := a.ExtractDir()
	if _, err := os.Stat(dest); err == nil {
		a.log.Debug("archive already extracted", slog.String("path", dest))
		return nil
	}

	a.log.Info("extracting archive", slog.String("path", a.ZipPath()))

	// Unpack next to the destination and rename, so a half-extracted tree is
	// never mistaken for a finished one.
	tmpDir, err := os.MkdirTemp(a.cfg.CacheDir, a.cfg.Name+"-extracting-")
	if err != nil {
		return fmt.Errorf("docs: create extract dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	if err := unzip(a.ZipPath(), tmpDir); err != nil {
		return err
	}
	if err := os.Rename(tmpDir, dest); err != nil {
		return fmt.Errorf("docs: store extracted tree: %w", err)
	}

	a.log.Info("archive extracted", slog.String("path", dest))
	return nil
}

var errUnsafePath = errors.New("docs: archive entry escapes destination")

func unzip(src, dest string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("docs: open archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if err := extractFile(f, dest); err != nil {
			return err
		}
	}
	return nil
}

func extractFile(f *zip.File, dest string) error {
	target := filepath.Join(dest, filepath.FromSlash(f.Name))
	if target != dest && !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
		return fmt.Errorf("%w: %s", errUnsafePath, f.Name)
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("docs: create dir for %s: %w", f.Name, err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("docs: open entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("docs: create %s: %w", f.Name, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("docs: write %s: %w", f.Name, err)
	}
	return out.Close()
}
