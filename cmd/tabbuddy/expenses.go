package main

import (
	"fmt"

	"github.com/SscSPs/tab_buddy/internal/cli"
	"github.com/SscSPs/tab_buddy/internal/dto"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newExpensesCmd(rt *runtime) *cobra.Command {
	var (
		groupID   string
		limit     int
		pageToken string
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "List a group's expenses, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var token *string
			if pageToken != "" {
				token = &pageToken
			}
			expenses, next, err := rt.services.Expense.ListGroupExpensesPage(rt.ctx, groupID, limit, token)
			if err != nil {
				return err
			}
			res := dto.ToExpensePageResponse(expenses, next)

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, res)
			}
			fmt.Fprint(out, cli.RenderTable(cli.Table{
				Title:   "Expenses of " + groupID,
				Headers: []string{"Date", "Description", "Category", "Currency", "Amount", "Paid by"},
				Rows: lo.Map(res.Expenses, func(e dto.ExpenseResponse, _ int) []string {
					payer, _ := lo.Find(e.SplitUsers, func(su dto.SplitUserResponse) bool { return su.Paid })
					return []string{e.Date.Format(dateLayout), e.Description, e.Category, e.CurrencyCode, e.Amount, payer.UserID}
				}),
			}))
			if res.NextToken != nil {
				fmt.Fprintln(out, "  "+cli.RenderMuted("next page: --page-token "+*res.NextToken))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&groupID, "group", "", "Group ID")
	cmd.Flags().IntVar(&limit, "limit", 20, "Expenses per page")
	cmd.Flags().StringVar(&pageToken, "page-token", "", "Token printed by the previous page")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	_ = cmd.MarkFlagRequired("group")
	return cmd
}
