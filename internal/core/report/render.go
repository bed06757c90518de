// Package report holds the read-side consumers of split expenses and balances:
// debt line rendering, base currency conversion, category breakdowns and
// member summaries.
package report

import (
	"fmt"

	"github.com/SscSPs/tab_buddy/internal/core/domain"
	"github.com/SscSPs/tab_buddy/internal/utils"
)

// Describe renders one debt line relative to the viewer,
// e.g. "You owe Bob $30.00" or "Bob owes You $30.00".
func Describe(line domain.DebtLine) string {
	name := line.Counterparty.DisplayName
	if name == "" {
		name = line.Counterparty.UserID
	}
	amount := utils.FormatWithSymbol(line.Amount.Abs(), line.Currency)
	if line.ViewerOwes() {
		return fmt.Sprintf("You owe %s %s", name, amount)
	}
	return fmt.Sprintf("%s owes You %s", name, amount)
}

// Lines renders every non-zero balance, ordered by currency then counterparty.
func Lines(b *domain.Balances) []string {
	debtLines := b.Lines()
	out := make([]string, len(debtLines))
	for i, l := range debtLines {
		out[i] = Describe(l)
	}
	return out
}
