package main

import (
	"fmt"
	"strings"

	"github.com/SscSPs/tab_buddy/internal/cli"
	"github.com/SscSPs/tab_buddy/internal/dto"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type splitFlags struct {
	currency string
	amount   string
	payer    string
	owed     []string
	guests   []string
	policy   string
	weights  map[string]string
	json     bool
}

func newSplitCmd(rt *runtime) *cobra.Command {
	f := &splitFlags{}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Preview how an expense would be split",
		Example: "  tabbuddy split --currency USD --amount 10.00 --payer alice --owed alice,bob,carol\n" +
			"  tabbuddy split --currency USD --amount 90 --payer alice --owed alice,bob --policy PERCENTAGE --weights alice=70,bob=30",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSplit(cmd, rt, f)
		},
	}

	registerSplitFlags(cmd, f)
	cmd.Flags().BoolVar(&f.json, "json", false, "Print JSON")
	return cmd
}

func registerSplitFlags(cmd *cobra.Command, f *splitFlags) {
	cmd.Flags().StringVar(&f.currency, "currency", "", "Currency code, e.g. USD")
	cmd.Flags().StringVar(&f.amount, "amount", "", "Expense total, e.g. 10.00")
	cmd.Flags().StringVar(&f.payer, "payer", "", "User ID of the payer")
	cmd.Flags().StringSliceVar(&f.owed, "owed", nil, "User IDs sharing the expense, in order")
	cmd.Flags().StringSliceVar(&f.guests, "guests", nil, "User IDs present but not sharing the expense")
	cmd.Flags().StringVar(&f.policy, "policy", "", "EQUAL (default), PERCENTAGE or EXACT")
	cmd.Flags().StringToStringVar(&f.weights, "weights", nil, "Per-user percentage or exact amount, e.g. alice=70,bob=30")
	_ = cmd.MarkFlagRequired("currency")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("payer")
	_ = cmd.MarkFlagRequired("owed")
}

// request lists owed users first, then guests, then the payer if it was in neither.
func (f *splitFlags) request() dto.SplitPreviewRequest {
	participants := lo.Map(f.owed, func(id string, _ int) dto.ParticipantRequest {
		return dto.ParticipantRequest{UserID: id, Owed: true, Weight: f.weights[id]}
	})
	for _, id := range f.guests {
		participants = append(participants, dto.ParticipantRequest{UserID: id})
	}
	if !lo.ContainsBy(participants, func(p dto.ParticipantRequest) bool { return p.UserID == f.payer }) {
		participants = append(participants, dto.ParticipantRequest{UserID: f.payer})
	}
	return dto.SplitPreviewRequest{
		Amount:       f.amount,
		CurrencyCode: strings.ToUpper(f.currency),
		PayerID:      f.payer,
		Policy:       strings.ToUpper(f.policy),
		Participants: participants,
	}
}

func runSplit(cmd *cobra.Command, rt *runtime, f *splitFlags) error {
	req := f.request()
	splitUsers, err := rt.services.Expense.PreviewSplit(rt.ctx, req)
	if err != nil {
		return err
	}
	currency, err := rt.services.Currency.GetCurrencyByCode(rt.ctx, req.CurrencyCode)
	if err != nil {
		return err
	}
	shares := dto.ToSplitUserResponses(splitUsers, *currency)

	out := cmd.OutOrStdout()
	if f.json {
		return writeJSON(out, shares)
	}
	fmt.Fprint(out, cli.RenderTable(cli.SharesTable(currency.CurrencyCode, shares)))
	return nil
}
