package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tomlord1122/todo-docs/internal/search"
)

const previewLen = 100

func newIndexCmd(a *app) *cobra.Command {
	var (
		query string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Download and index the documentation, then run one query",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			index, err := search.ArchiveBuilder(a.archive(), a.log)(ctx)
			if err != nil {
				return err
			}
			defer index.Close()

			results, err := index.Search(query, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Indexed %d documents\n", index.Len())
			fmt.Fprintf(out, "Found %d results for %q:\n", len(results), query)
			for i, r := range results {
				fmt.Fprintf(out, "%d. %s\n", i+1, r.Filename)
				fmt.Fprintf(out, "   Score: %.4f\n", r.Score)
				fmt.Fprintf(out, "   Preview: %s...\n\n", truncate(r.Content, previewLen))
			}
			if len(results) > 0 {
				fmt.Fprintf(out, "First file returned: %s\n", results[0].Filename)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&query, "query", "demo", "query to run against the fresh index")
	cmd.Flags().IntVar(&limit, "limit", search.DefaultLimit, "maximum number of results")
	return cmd
}

// truncate returns the first n characters of s.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
