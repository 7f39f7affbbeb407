package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ebb/internal/debuglog"
	"ebb/internal/storage"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the last fetch outcome for every source",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer debuglog.Close()

			history, err := storage.NewStore(cfg.Paths.Database)
			if err != nil {
				return fmt.Errorf("opening fetch history: %w", err)
			}
			defer history.Close()

			records, err := history.GetAllRecords()
			if err != nil {
				return fmt.Errorf("reading fetch history: %w", err)
			}
			if len(records) == 0 {
				fmt.Println("No fetch history yet. Run `ebb` or `ebb fetch` first.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "FEED\tFETCHED\tSOURCE\tENTRIES\tRESULT")
			for _, rec := range records {
				title := rec.FeedTitle
				if title == "" {
					title = "-"
				}
				result := "ok"
				if rec.CacheHit {
					result = "ok (cache)"
				}
				if rec.Error != "" {
					result = rec.Error
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
					title, rec.FetchedAt.Format("2006-01-02 15:04"), rec.Source, rec.EntryCount, result)
			}
			return w.Flush()
		},
	}
}
