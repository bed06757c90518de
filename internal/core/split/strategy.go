// Package split turns a funding event (total, currency, payer, participants)
// into per-participant shares that sum exactly to the total.
package split

import (
	"fmt"

	"github.com/SscSPs/tab_buddy/internal/apperrors"
	"github.com/SscSPs/tab_buddy/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Participant is one member considered for an expense.
// Weight is the percentage for PERCENTAGE splits and the explicit amount for
// EXACT splits; EQUAL splits ignore it.
type Participant struct {
	User   domain.User
	Owed   bool
	Weight decimal.Decimal
}

// Policy derives minor-unit shares for the owed participants.
// Implementations must return one share per owed participant, in order,
// summing exactly to totalUnits.
type Policy interface {
	Type() domain.SplitPolicy
	Allocate(totalUnits decimal.Decimal, owed []Participant, currency domain.Currency) ([]decimal.Decimal, error)
}

// NewPolicy returns the policy registered for the given type. The empty type means EQUAL.
func NewPolicy(policyType domain.SplitPolicy) (Policy, error) {
	switch policyType {
	case "", domain.SplitEqual:
		return EqualPolicy{}, nil
	case domain.SplitPercentage:
		return PercentagePolicy{}, nil
	case domain.SplitExact:
		return ExactPolicy{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown split policy %q", apperrors.ErrInvalidSplit, policyType)
	}
}
