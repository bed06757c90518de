package main

import (
	"fmt"

	"github.com/SscSPs/tab_buddy/internal/cli"
	"github.com/SscSPs/tab_buddy/internal/dto"
	"github.com/spf13/cobra"
)

func newCategoriesCmd(rt *runtime) *cobra.Command {
	var (
		groupID string
		convert bool
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Break a group's spending down by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows, err := rt.services.Reporting.CategoryBreakdown(rt.ctx, groupID, convert)
			if err != nil {
				return err
			}
			res := dto.ToCategoryTotalResponses(rows)

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, res)
			}
			if len(res) == 0 {
				fmt.Fprintln(out, "  "+cli.RenderMuted("No expenses recorded."))
				return nil
			}
			fmt.Fprint(out, cli.RenderTable(cli.CategoriesTable(res)))
			return nil
		},
	}
	cmd.Flags().StringVar(&groupID, "group", "", "Group ID")
	cmd.Flags().BoolVar(&convert, "convert", false, "Convert every expense into the group base currency")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	_ = cmd.MarkFlagRequired("group")
	return cmd
}
