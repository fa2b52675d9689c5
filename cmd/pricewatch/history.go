package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pricewatch/internal/store"
)

func newHistoryCmd(configPath, logLevel *string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent pipeline runs from the history store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup(*configPath, *logLevel)
			if err != nil {
				return err
			}
			if cfg.HistoryDB == "" {
				return fmt.Errorf("no history_db configured")
			}

			s, err := store.Open(cfg.HistoryDB)
			if err != nil {
				return err
			}
			defer s.Close()

			runs, err := s.RecentRuns(limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTRIGGER\tSTARTED\tSTATUS\tREVISION")
			for _, r := range runs {
				rev := r.Revision
				if len(rev) > 12 {
					rev = rev[:12]
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", r.ID, r.Trigger, r.StartedAt, r.Status, rev)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to show")
	return cmd
}
