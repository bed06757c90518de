// Package ledger folds split expenses into per-currency net balances seen from
// one viewer.
package ledger

import (
	"github.com/SscSPs/tab_buddy/internal/apperrors"
	"github.com/SscSPs/tab_buddy/internal/core/domain"
	"github.com/SscSPs/tab_buddy/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// Compute folds expenses into the viewer's Balances.
//
// Every expense counts towards Totals. An expense without exactly one payer is
// left out of Debts and reported in Warnings. The result does not depend on
// the order of expenses.
func Compute(viewer domain.User, expenses []domain.Expense) *domain.Balances {
	balances := domain.NewBalances(viewer.UserID)
	for _, expense := range expenses {
		if warning := apply(balances, expense); warning != nil {
			balances.Warnings = append(balances.Warnings, warning)
		}
	}
	return balances
}

func apply(b *domain.Balances, expense domain.Expense) error {
	code := expense.Currency.CurrencyCode
	b.Totals[code] = b.Totals[code].Add(expense.Amount)
	b.Currencies[code] = expense.Currency

	payer, ok := expense.Payer()
	if !ok {
		return malformed(expense)
	}

	if payer.UserID == b.ViewerID {
		for _, su := range expense.SplitUsers {
			if !su.Owed || su.UserID == b.ViewerID {
				continue
			}
			addDebt(b, code, su.User, accounting.SignedShare(su.Amount, true))
		}
		return nil
	}

	viewerShare, ok := expense.SplitUser(b.ViewerID)
	if !ok || !viewerShare.Owed {
		return nil
	}
	addDebt(b, code, payer.User, accounting.SignedShare(viewerShare.Amount, false))
	return nil
}

func addDebt(b *domain.Balances, code string, counterparty domain.User, amount decimal.Decimal) {
	byUser, ok := b.Debts[code]
	if !ok {
		byUser = make(map[string]decimal.Decimal)
		b.Debts[code] = byUser
	}
	byUser[counterparty.UserID] = byUser[counterparty.UserID].Add(amount)
	b.Users[counterparty.UserID] = counterparty
}

func malformed(expense domain.Expense) *apperrors.MalformedExpenseError {
	paid := 0
	for _, su := range expense.SplitUsers {
		if su.Paid {
			paid++
		}
	}
	reason := "no participant is marked as payer"
	if paid > 1 {
		reason = "more than one participant is marked as payer"
	}
	return &apperrors.MalformedExpenseError{ExpenseID: expense.ExpenseID, Reason: reason}
}
