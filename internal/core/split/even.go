package split

import (
	"github.com/SscSPs/tab_buddy/internal/core/domain"
	"github.com/shopspring/decimal"
)

// EqualPolicy divides the total equally among the owed participants.
type EqualPolicy struct{}

// Type returns the split type identifier
func (EqualPolicy) Type() domain.SplitPolicy {
	return domain.SplitEqual
}

// Allocate gives every owed participant weight one.
func (EqualPolicy) Allocate(totalUnits decimal.Decimal, owed []Participant, _ domain.Currency) ([]decimal.Decimal, error) {
	weights := make([]decimal.Decimal, len(owed))
	for i := range weights {
		weights[i] = one
	}
	return Allocate(totalUnits, weights)
}
