package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newTemplatesCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List brief templates",
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

			templates, err := a.Store.ListTemplates(cmd.Context())
			if err != nil {
				return err
			}
			if global.format == "json" {
				return writeJSON(cmd.OutOrStdout(), templates)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CATEGORY\tNAME\tPLATFORMS")
			for _, t := range templates {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", t.Category, t.Name, strings.Join(t.DefaultPlatforms, ","))
			}
			return tw.Flush()
		},
	}
}
