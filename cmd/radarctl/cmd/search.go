package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"creative-radar/models"
	"creative-radar/pipeline"
	"creative-radar/trace"
)

type searchOptions struct {
	platforms []string
	limit     int
}

func newSearchCmd(global *globalOptions) *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <brief>",
		Short: "Run a search for a creative brief",
		Long: `Plan queries from the brief, collect results from every selected platform,
score them and store the search.

Examples:
  radarctl search "luxury hotel cinematic reels"
  radarctl search "drone shots of coastlines" --platforms youtube,vimeo -n 5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(global.format); err != nil {
				return err
			}
			ctx := trace.WithRequest(cmd.Context(), "")
			a, err := openApp(ctx, global)
			if err != nil {
				return err
			}
			defer a.Close()

			resp, err := a.Pipeline.Run(ctx, pipeline.Request{
				Brief:     strings.Join(args, " "),
				Platforms: opts.platforms,
			})
			if err != nil {
				return err
			}
			if opts.limit > 0 && len(resp.Results) > opts.limit {
				resp.Results = resp.Results[:opts.limit]
			}

			if global.format == "json" {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "search %s\n", resp.SearchID)
			fmt.Fprintf(cmd.OutOrStdout(), "criteria: %s\n\n", resp.QueryPlan.ScoringCriteria)
			printResults(cmd.OutOrStdout(), resp.Results)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&opts.platforms, "platforms", "p", nil, "Platforms to search (default: all configured)")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Print at most n results (0 = all)")

	return cmd
}

func printResults(w io.Writer, results []models.ScoredResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "no results")
		return
	}
	for i, r := range results {
		fmt.Fprintf(w, "%2d. [%.2f] %-9s %s\n", i+1, r.AIRelevanceScore, r.Platform, r.Title)
		fmt.Fprintf(w, "    %s\n", r.URL)
		if r.AIAnalysis != "" {
			fmt.Fprintf(w, "    %s\n", r.AIAnalysis)
		}
	}
}
