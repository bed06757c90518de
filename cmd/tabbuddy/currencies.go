package main

import (
	"fmt"
	"strconv"

	"github.com/SscSPs/tab_buddy/internal/cli"
	"github.com/SscSPs/tab_buddy/internal/dto"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newCurrenciesCmd(rt *runtime) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "currencies",
		Short: "List the known currencies and their precision",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			currencies, err := rt.services.Currency.ListCurrencies(rt.ctx)
			if err != nil {
				return err
			}
			res := make([]dto.CurrencyResponse, len(currencies))
			for i, c := range currencies {
				res[i] = dto.ToCurrencyResponse(c)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(out, res)
			}
			fmt.Fprint(out, cli.RenderTable(cli.Table{
				Title:   "Currencies",
				Headers: []string{"Code", "Name", "Symbol", "Digits"},
				Rows: lo.Map(res, func(c dto.CurrencyResponse, _ int) []string {
					return []string{c.CurrencyCode, c.Name, c.Symbol, strconv.Itoa(c.DecimalDigits)}
				}),
			}))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}
