package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"creative-radar/models"
)

func newHistoryCmd(global *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(global.format); err != nil {
				return err
			}
			a, err := openApp(cmd.Context(), global)
			if err != nil {
				return err
			}
			defer a.Close()

			records, err := a.Store.ListSearches(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if global.format == "json" {
				if records == nil {
					records = []models.SearchRecord{}
				}
				return writeJSON(cmd.OutOrStdout(), records)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCREATED\tRESULTS\tBRIEF")
			for _, r := range records {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), r.ResultCount, truncate(r.Brief, 60))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of searches to list")
	return cmd
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
