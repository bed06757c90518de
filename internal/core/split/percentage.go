package split

import (
	"fmt"

	"github.com/SscSPs/tab_buddy/internal/apperrors"
	"github.com/SscSPs/tab_buddy/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PercentagePolicy divides the total by per-participant percentages.
// Owed percentages must each lie in [0, 100] and sum to exactly 100.
type PercentagePolicy struct{}

// Type returns the split type identifier
func (PercentagePolicy) Type() domain.SplitPolicy {
	return domain.SplitPercentage
}

// Allocate uses each participant's Weight as its percentage.
func (PercentagePolicy) Allocate(totalUnits decimal.Decimal, owed []Participant, _ domain.Currency) ([]decimal.Decimal, error) {
	weights := make([]decimal.Decimal, len(owed))
	sum := decimal.Zero
	for i, p := range owed {
		if p.Weight.IsNegative() || p.Weight.GreaterThan(hundred) {
			return nil, fmt.Errorf("%w: percentage %s for user %s is outside 0-100",
				apperrors.ErrInvalidSplit, p.Weight.String(), p.User.UserID)
		}
		weights[i] = p.Weight
		sum = sum.Add(p.Weight)
	}
	if !sum.Equal(hundred) {
		return nil, fmt.Errorf("%w: percentages sum to %s, want 100", apperrors.ErrInvalidSplit, sum.String())
	}
	return Allocate(totalUnits, weights)
}
