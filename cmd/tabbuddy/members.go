package main

import (
	"fmt"

	"github.com/SscSPs/tab_buddy/internal/cli"
	"github.com/SscSPs/tab_buddy/internal/dto"
	"github.com/spf13/cobra"
)

func newMembersCmd(rt *runtime) *cobra.Command {
	var (
		groupID string
		asJSON  bool
	)
	cmd := &cobra.Command{
		Use:   "members",
		Short: "Show every member's net position per currency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			summary, err := rt.services.Ledger.MemberSummaries(rt.ctx, groupID)
			if err != nil {
				return err
			}
			res := dto.ToGroupSummaryResponse(summary)

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, res)
			}
			fmt.Fprint(out, cli.RenderTable(cli.MembersTable(res)))
			for _, w := range res.Warnings {
				fmt.Fprintln(out, "  "+cli.RenderMuted("skipped: "+w))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&groupID, "group", "", "Group ID")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	_ = cmd.MarkFlagRequired("group")
	return cmd
}
