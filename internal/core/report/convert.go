package report

import (
	"fmt"

	"github.com/SscSPs/tab_buddy/internal/apperrors"
	"github.com/SscSPs/tab_buddy/internal/core/domain"
	"github.com/SscSPs/tab_buddy/internal/core/split"
	"github.com/SscSPs/tab_buddy/internal/utils"
	"github.com/shopspring/decimal"
)

// ConvertExpense re-expresses an expense in the base currency using its captured BaseRate.
//
// The total is converted and rounded half-up to the base precision, then the owed
// shares are re-allocated in proportion to the original shares, so the converted
// shares still sum exactly to the converted total. Only a missing or
// non-positive rate is an error.
func ConvertExpense(expense domain.Expense, base domain.Currency) (domain.Expense, error) {
	if expense.Currency.CurrencyCode == base.CurrencyCode {
		return expense, nil
	}
	if expense.BaseRate == nil {
		return domain.Expense{}, fmt.Errorf("%w: expense %s has no rate from %s to %s",
			apperrors.ErrValidation, expense.ExpenseID, expense.Currency.CurrencyCode, base.CurrencyCode)
	}
	rate := *expense.BaseRate
	if !rate.IsPositive() {
		return domain.Expense{}, fmt.Errorf("%w: expense %s has non-positive rate %s",
			apperrors.ErrValidation, expense.ExpenseID, rate.String())
	}

	total := utils.RoundHalfUp(expense.Amount.Mul(rate), base)

	converted := expense
	converted.Amount = total
	converted.Currency = base
	converted.BaseRate = nil
	converted.SplitUsers = convertShares(expense, total, rate, base)
	return converted, nil
}

// convertShares re-allocates the owed shares over the converted total. When
// the stored shares cannot be re-allocated (none positive, or one negative)
// each share is converted on its own and the record is left for the ledger
// fold to judge.
func convertShares(expense domain.Expense, total, rate decimal.Decimal, base domain.Currency) []domain.SplitUser {
	var weights []decimal.Decimal
	for _, su := range expense.SplitUsers {
		if su.Owed {
			weights = append(weights, utils.ToMinorUnits(su.Amount, expense.Currency))
		}
	}
	units, err := split.Allocate(utils.ToMinorUnits(total, base), weights)

	out := make([]domain.SplitUser, len(expense.SplitUsers))
	next := 0
	for i, su := range expense.SplitUsers {
		switch {
		case !su.Owed:
			su.Amount = decimal.Zero
		case err != nil:
			su.Amount = utils.RoundHalfUp(su.Amount.Mul(rate), base)
		default:
			su.Amount = utils.FromMinorUnits(units[next], base)
			next++
		}
		out[i] = su
	}
	return out
}

// ConvertExpenses converts every expense, stopping at the first failure.
func ConvertExpenses(expenses []domain.Expense, base domain.Currency) ([]domain.Expense, error) {
	out := make([]domain.Expense, 0, len(expenses))
	for _, e := range expenses {
		converted, err := ConvertExpense(e, base)
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}
	return out, nil
}
