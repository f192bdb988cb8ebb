package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"creative-radar/models"
)

type searchDetail struct {
	Search    models.SearchRecord   `json:"search"`
	QueryPlan *models.QueryPlan     `json:"query_plan"`
	Results   []models.ScoredResult `json:"results"`
}

func newShowCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <search-id>",
		Short: "Show a stored search with its results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(global.format); err != nil {
				return err
			}
			a, err := openApp(cmd.Context(), global)
			if err != nil {
				return err
			}
			defer a.Close()

			record, err := a.Store.GetSearch(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			results, err := a.Store.ListResults(cmd.Context(), record.ID)
			if err != nil {
				return err
			}

			detail := searchDetail{Search: record, Results: results}
			if plan, err := record.Plan(); err == nil {
				detail.QueryPlan = &plan
			}
			if global.format == "json" {
				return writeJSON(cmd.OutOrStdout(), detail)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "search %s (%s)\n", record.ID, record.CreatedAt.Local().Format("2006-01-02 15:04"))
			fmt.Fprintf(out, "brief: %s\n", record.Brief)
			fmt.Fprintf(out, "providers: %s\n", strings.Join(record.Providers, ", "))
			if detail.QueryPlan != nil {
				fmt.Fprintf(out, "criteria: %s\n", detail.QueryPlan.ScoringCriteria)
			}
			fmt.Fprintln(out)
			printResults(out, results)
			return nil
		},
	}
}

func newDeleteCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <search-id>",
		Short: "Delete a stored search and its results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), global)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Store.DeleteSearch(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}
