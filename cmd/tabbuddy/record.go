package main

import (
	"fmt"
	"time"

	"github.com/SscSPs/tab_buddy/internal/apperrors"
	"github.com/SscSPs/tab_buddy/internal/cli"
	"github.com/SscSPs/tab_buddy/internal/core/domain"
	"github.com/SscSPs/tab_buddy/internal/dto"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

type expenseFlags struct {
	splitFlags
	by          string
	description string
	category    string
	date        string
	write       bool
}

func registerExpenseFlags(cmd *cobra.Command, f *expenseFlags) {
	registerSplitFlags(cmd, &f.splitFlags)
	cmd.Flags().StringVar(&f.by, "by", "", "User ID recording the change (defaults to the payer)")
	cmd.Flags().StringVar(&f.description, "description", "", "What the expense was for")
	cmd.Flags().StringVar(&f.category, "category", "", "Category, e.g. food")
	cmd.Flags().StringVar(&f.date, "date", "", "Expense date as YYYY-MM-DD (defaults to today)")
	cmd.Flags().BoolVar(&f.write, "write", false, "Write the result back to the snapshot file")
	cmd.Flags().BoolVar(&f.json, "json", false, "Print JSON")
}

func (f *expenseFlags) request() (dto.ExpenseRequest, error) {
	req := dto.ExpenseRequest{
		SplitPreviewRequest: f.splitFlags.request(),
		Description:         f.description,
		Category:            f.category,
	}
	if f.date != "" {
		date, err := time.Parse(dateLayout, f.date)
		if err != nil {
			return dto.ExpenseRequest{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD", apperrors.ErrValidation, f.date)
		}
		req.Date = date
	}
	return req, nil
}

func (f *expenseFlags) actor() string {
	if f.by != "" {
		return f.by
	}
	return f.payer
}

func newAddCmd(rt *runtime) *cobra.Command {
	var groupID string
	f := &expenseFlags{}
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Record a split expense in a group",
		Example: "  tabbuddy add --group trip --description Dinner --category food --currency USD --amount 90 --payer alice --owed alice,bob,carol --write",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := f.request()
			if err != nil {
				return err
			}
			expense, err := rt.services.Expense.CreateExpense(rt.ctx, groupID, req, f.actor())
			if err != nil {
				return err
			}
			return finishRecord(cmd, rt, f, expense, "Recorded")
		},
	}
	cmd.Flags().StringVar(&groupID, "group", "", "Group ID")
	_ = cmd.MarkFlagRequired("group")
	registerExpenseFlags(cmd, f)
	return cmd
}

func newEditCmd(rt *runtime) *cobra.Command {
	var expenseID string
	f := &expenseFlags{}
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Replace an expense and recompute its whole split",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := f.request()
			if err != nil {
				return err
			}
			expense, err := rt.services.Expense.UpdateExpense(rt.ctx, expenseID, req, f.actor())
			if err != nil {
				return err
			}
			return finishRecord(cmd, rt, f, expense, "Updated")
		},
	}
	cmd.Flags().StringVar(&expenseID, "expense", "", "Expense ID")
	_ = cmd.MarkFlagRequired("expense")
	registerExpenseFlags(cmd, f)
	return cmd
}

func finishRecord(cmd *cobra.Command, rt *runtime, f *expenseFlags, expense *domain.Expense, verb string) error {
	if f.write {
		if err := rt.persist(); err != nil {
			return err
		}
	}
	res := dto.ToExpenseResponse(expense)

	out := cmd.OutOrStdout()
	if f.json {
		return writeJSON(out, res)
	}
	fmt.Fprintf(out, "  %s expense %s in %s\n", verb, res.ExpenseID, res.GroupID)
	fmt.Fprint(out, cli.RenderTable(cli.SharesTable(res.CurrencyCode, res.SplitUsers)))
	if !f.write {
		fmt.Fprintln(out, "  "+cli.RenderMuted("not saved: pass --write to update the snapshot"))
	}
	return nil
}

func newShowCmd(rt *runtime) *cobra.Command {
	var (
		expenseID string
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one expense and its split",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			expense, err := rt.services.Expense.GetExpenseByID(rt.ctx, expenseID)
			if err != nil {
				return err
			}
			res := dto.ToExpenseResponse(expense)

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, res)
			}
			fmt.Fprintln(out, cli.RenderTitle(fmt.Sprintf("%s  %s %s", res.Description, res.Amount, res.CurrencyCode)))
			fmt.Fprintf(out, "  %s  %s  %s\n", res.Date.Format(dateLayout), res.Category, res.Policy)
			fmt.Fprint(out, cli.RenderTable(cli.SharesTable(res.CurrencyCode, res.SplitUsers)))
			return nil
		},
	}
	cmd.Flags().StringVar(&expenseID, "expense", "", "Expense ID")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	_ = cmd.MarkFlagRequired("expense")
	return cmd
}
