package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ebb/internal/debuglog"
	"ebb/internal/feed"
	"ebb/internal/fetch"
	"ebb/internal/search"
)

func newFetchCmd() *cobra.Command {
	var (
		showAll bool
		query   string
	)

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch all sources and print the merged list without the UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer debuglog.Close()

			env, err := newEnv(cfg)
			if err != nil {
				return err
			}
			defer env.Close()

			results := env.orchestrator.FetchAll(context.Background(), env.sources)
			for _, r := range fetch.Failures(results) {
				fmt.Fprintf(os.Stderr, "ebb: %v\n", r.Err)
			}

			items := feed.Merge(fetch.Feeds(results))

			var matches map[string]struct{}
			if query != "" {
				engine, err := search.NewEngine(items)
				if err != nil {
					return fmt.Errorf("building search index: %w", err)
				}
				defer engine.Close()
				matches, err = engine.Search(query, len(items))
				if err != nil {
					return fmt.Errorf("searching: %w", err)
				}
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			for _, it := range items {
				if !showAll && it.Link != "" && env.tracker.IsRead(it.Link) {
					continue
				}
				if matches != nil {
					if _, ok := matches[it.Link]; !ok {
						continue
					}
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					it.Published.Format("2006-01-02 15:04"), it.Display(), it.Link)
			}
			return w.Flush()
		},
	}

	fetchCmd.Flags().BoolVar(&showAll, "all", false, "include entries already marked read")
	fetchCmd.Flags().StringVar(&query, "query", "", "only print entries matching this search query")

	return fetchCmd
}
