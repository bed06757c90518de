package accounting

import (
	"fmt"

	"github.com/SscSPs/tab_buddy/internal/apperrors"
	"github.com/SscSPs/tab_buddy/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedShare derives the viewer's signed contribution of one participant's share.
// Stored shares are unsigned; the sign is decided here and nowhere else.
//
// viewer paid, participant owed  -> +share (participant owes viewer)
// participant paid, viewer owed  -> -share (viewer owes payer)
func SignedShare(share decimal.Decimal, viewerPaid bool) decimal.Decimal {
	if viewerPaid {
		return share
	}
	return share.Neg()
}

// ValidateSplitBalance checks that the owed shares of an expense sum exactly to its total.
func ValidateSplitBalance(expense domain.Expense) error {
	sum := decimal.Zero
	owed := 0
	for _, su := range expense.SplitUsers {
		if su.Amount.IsNegative() {
			return fmt.Errorf("%w: negative share %s for user %s", apperrors.ErrInvalidSplit, su.Amount.String(), su.UserID)
		}
		if !su.Owed {
			if !su.Amount.IsZero() {
				return fmt.Errorf("%w: user %s is not owed but carries %s", apperrors.ErrInvalidSplit, su.UserID, su.Amount.String())
			}
			continue
		}
		owed++
		sum = sum.Add(su.Amount)
	}
	if owed == 0 {
		return fmt.Errorf("%w: no owed participants", apperrors.ErrInvalidSplit)
	}
	if !sum.Equal(expense.Amount) {
		return fmt.Errorf("%w: shares sum to %s, expense total is %s", apperrors.ErrInvalidSplit, sum.String(), expense.Amount.String())
	}
	return nil
}

// ValidateZeroSum checks that member net positions cancel out in every currency.
func ValidateZeroSum(summaries []domain.MemberSummary) error {
	sums := make(map[string]decimal.Decimal)
	for _, s := range summaries {
		for code, net := range s.Net {
			sums[code] = sums[code].Add(net)
		}
	}
	for code, sum := range sums {
		if !sum.IsZero() {
			return fmt.Errorf("net balances for %s do not sum to zero: sum is %s", code, sum.String())
		}
	}
	return nil
}
