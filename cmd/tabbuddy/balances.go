package main

import (
	"fmt"

	"github.com/SscSPs/tab_buddy/internal/cli"
	"github.com/SscSPs/tab_buddy/internal/dto"
	"github.com/spf13/cobra"
)

func newBalancesCmd(rt *runtime) *cobra.Command {
	var (
		groupID  string
		viewerID string
		convert  bool
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Show who owes the viewer and whom the viewer owes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			balances, err := rt.services.Ledger.GroupBalances(rt.ctx, groupID, viewerID, convert)
			if err != nil {
				return err
			}
			res := dto.ToBalancesResponse(balances)

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, res)
			}
			fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("%s  as seen by %s", groupID, viewerID)))
			fmt.Fprint(out, cli.RenderDebtLines(res))
			if len(res.Totals) > 0 {
				fmt.Fprintln(out)
				fmt.Fprint(out, cli.RenderTable(cli.TotalsTable(res)))
			}
			for _, w := range res.Warnings {
				fmt.Fprintln(out, "  "+cli.RenderMuted("skipped: "+w))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&groupID, "group", "", "Group ID")
	cmd.Flags().StringVar(&viewerID, "viewer", "", "User ID whose balances to show")
	cmd.Flags().BoolVar(&convert, "convert", false, "Convert every expense into the group base currency")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	_ = cmd.MarkFlagRequired("group")
	_ = cmd.MarkFlagRequired("viewer")
	return cmd
}
