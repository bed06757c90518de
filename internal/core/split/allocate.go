package split

import (
	"fmt"

	"github.com/SscSPs/tab_buddy/internal/apperrors"
	"github.com/shopspring/decimal"
)

var (
	one = decimal.NewFromInt(1)
	two = decimal.NewFromInt(2)
)

// Allocate divides totalUnits (an integer count of minor units) in proportion to weights.
//
// Each raw share totalUnits*w/sum(w) is rounded half-up to a whole unit. The
// residual left by rounding is then spread one unit at a time: a positive
// residual goes to the first positive-weight entries in order, a negative one
// is taken back from the last. For equal weights this gives the same result as
// flooring every share and handing the leftover units to the first entries.
func Allocate(totalUnits decimal.Decimal, weights []decimal.Decimal) ([]decimal.Decimal, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("%w: nothing to allocate to", apperrors.ErrInvalidSplit)
	}
	if totalUnits.IsNegative() || !totalUnits.IsInteger() {
		return nil, fmt.Errorf("%w: %s is not a whole number of units", apperrors.ErrInvalidAmount, totalUnits.String())
	}

	sumWeights := decimal.Zero
	for _, w := range weights {
		if w.IsNegative() {
			return nil, fmt.Errorf("%w: negative weight %s", apperrors.ErrInvalidSplit, w.String())
		}
		sumWeights = sumWeights.Add(w)
	}
	if !sumWeights.IsPositive() {
		return nil, fmt.Errorf("%w: weights sum to zero", apperrors.ErrInvalidSplit)
	}

	shares := make([]decimal.Decimal, len(weights))
	allocated := decimal.Zero
	for i, w := range weights {
		q, r := totalUnits.Mul(w).QuoRem(sumWeights, 0)
		if r.Mul(two).GreaterThanOrEqual(sumWeights) {
			q = q.Add(one)
		}
		shares[i] = q
		allocated = allocated.Add(q)
	}

	distributeResidual(shares, weights, totalUnits.Sub(allocated).IntPart())
	return shares, nil
}

func distributeResidual(shares, weights []decimal.Decimal, residual int64) {
	for residual > 0 {
		for i := range shares {
			if residual == 0 {
				break
			}
			if !weights[i].IsPositive() {
				continue
			}
			shares[i] = shares[i].Add(one)
			residual--
		}
	}
	for residual < 0 {
		for i := len(shares) - 1; i >= 0; i-- {
			if residual == 0 {
				break
			}
			if !weights[i].IsPositive() || !shares[i].IsPositive() {
				continue
			}
			shares[i] = shares[i].Sub(one)
			residual++
		}
	}
}
