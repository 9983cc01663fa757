package main

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Tomlord1122/todo-docs/internal/docs"
	"github.com/Tomlord1122/todo-docs/internal/logging"
	"github.com/Tomlord1122/todo-docs/internal/scraper"
	"github.com/Tomlord1122/todo-docs/internal/search"
	"github.com/Tomlord1122/todo-docs/internal/tools"
)

const envPrefix = "DOCSEARCH"

// Config keys; each is also a persistent flag and a DOCSEARCH_* variable.
const (
	keyArchiveURL    = "archive-url"
	keyCacheDir      = "cache-dir"
	keyArchiveName   = "archive-name"
	keyReaderURL     = "reader-url"
	keyReaderTimeout = "reader-timeout"
	keyLogLevel      = "log-level"
	keyLogFormat     = "log-format"
)

// app carries the resolved configuration shared by every subcommand.
type app struct {
	v   *viper.Viper
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), log: logging.Discard()}

	root := &cobra.Command{
		Use:   "docsearch",
		Short: "Documentation search and web scraping tools",
		Long: `docsearch indexes the FastMCP documentation archive and exposes
add, scrape_web and search_docs as MCP tools over stdio.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// stdout may carry the MCP protocol; logs always go to stderr.
			a.log = logging.NewWithWriter(cmd.ErrOrStderr(), a.v.GetString(keyLogLevel), a.v.GetString(keyLogFormat))
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.String(keyArchiveURL, docs.DefaultArchiveURL, "documentation archive to download")
	flags.String(keyCacheDir, ".", "directory holding the downloaded and extracted archive")
	flags.String(keyArchiveName, docs.DefaultArchiveName, "archive file stem and top-level directory")
	flags.String(keyReaderURL, scraper.DefaultBaseURL, "page-to-markdown extraction service")
	flags.Duration(keyReaderTimeout, scraper.DefaultTimeout, "timeout of a single scrape")
	flags.String(keyLogLevel, "info", "log level (debug, info, warn, error)")
	flags.String(keyLogFormat, "text", "log format (text, json)")

	_ = a.v.BindPFlags(flags)
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(
		newServeCmd(a),
		newIndexCmd(a),
		newScrapeCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) archive() *docs.Archive {
	return docs.NewArchive(docs.ArchiveConfig{
		URL:      a.v.GetString(keyArchiveURL),
		CacheDir: a.v.GetString(keyCacheDir),
		Name:     a.v.GetString(keyArchiveName),
	}, &http.Client{Timeout: 5 * time.Minute}, a.log)
}

func (a *app) reader() *scraper.Reader {
	return scraper.NewReader(a.v.GetString(keyReaderURL), a.v.GetDuration(keyReaderTimeout), a.log)
}

func (a *app) toolbox() *tools.Toolbox {
	cache := search.NewCache(search.ArchiveBuilder(a.archive(), a.log))
	return tools.New(a.reader(), cache, a.log)
}
