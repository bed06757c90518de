package split

import (
	"fmt"

	"github.com/SscSPs/tab_buddy/internal/apperrors"
	"github.com/SscSPs/tab_buddy/internal/core/domain"
	"github.com/SscSPs/tab_buddy/internal/utils"
	"github.com/shopspring/decimal"
)

// ExactPolicy takes an explicit amount per owed participant.
// The amounts must fit the currency precision and sum exactly to the total.
type ExactPolicy struct{}

// Type returns the split type identifier
func (ExactPolicy) Type() domain.SplitPolicy {
	return domain.SplitExact
}

// Allocate converts each participant's Weight (an amount) to minor units.
func (ExactPolicy) Allocate(totalUnits decimal.Decimal, owed []Participant, currency domain.Currency) ([]decimal.Decimal, error) {
	shares := make([]decimal.Decimal, len(owed))
	sum := decimal.Zero
	for i, p := range owed {
		if err := utils.CheckAmount(p.Weight, currency); err != nil {
			return nil, fmt.Errorf("exact share for user %s: %w", p.User.UserID, err)
		}
		shares[i] = utils.ToMinorUnits(p.Weight, currency)
		sum = sum.Add(shares[i])
	}
	if !sum.Equal(totalUnits) {
		return nil, fmt.Errorf("%w: exact shares sum to %s, total is %s",
			apperrors.ErrInvalidSplit,
			utils.FromMinorUnits(sum, currency).String(),
			utils.FromMinorUnits(totalUnits, currency).String())
	}
	return shares, nil
}
