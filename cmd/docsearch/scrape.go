package main

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"
)

const (
	defaultScrapeURL = "https://github.com/alexeygrigorev/minsearch"
	scrapePreviewLen = 200
)

func newScrapeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scrape [url]",
		Short: "Fetch a page as markdown and print its size and beginning",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := defaultScrapeURL
			if len(args) == 1 {
				url = args[0]
			}
			content, err := a.reader().Fetch(cmd.Context(), url)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Character count: %d\n", utf8.RuneCountInString(content))
			fmt.Fprintf(out, "First %d characters: %s\n", scrapePreviewLen, truncate(content, scrapePreviewLen))
			return nil
		},
	}
}
