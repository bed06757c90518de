package utils

import (
	"fmt"
	"strings"

	"github.com/SscSPs/tab_buddy/internal/apperrors"
	"github.com/SscSPs/tab_buddy/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ParseAmount parses a non-negative decimal string that fits the currency precision.
// "10", "10.5" and "10.50" are accepted for USD; "10.505" is not.
func ParseAmount(s string, currency domain.Currency) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty amount", apperrors.ErrInvalidAmount)
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a decimal", apperrors.ErrInvalidAmount, s)
	}
	if err := CheckAmount(amount, currency); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}

// CheckAmount validates an already parsed amount against the currency.
func CheckAmount(amount decimal.Decimal, currency domain.Currency) error {
	if currency.DecimalDigits < 0 {
		return fmt.Errorf("%w: currency %s has negative decimal digits", apperrors.ErrValidation, currency.CurrencyCode)
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s is negative", apperrors.ErrInvalidAmount, amount.String())
	}
	if !amount.Equal(amount.Round(int32(currency.DecimalDigits))) {
		return fmt.Errorf("%w: %s has more than %d decimal digits for %s",
			apperrors.ErrInvalidAmount, amount.String(), currency.DecimalDigits, currency.CurrencyCode)
	}
	return nil
}

// ToMinorUnits scales an amount to an integer count of the currency's smallest unit.
// The amount must already satisfy CheckAmount.
func ToMinorUnits(amount decimal.Decimal, currency domain.Currency) decimal.Decimal {
	return amount.Shift(int32(currency.DecimalDigits)).Truncate(0)
}

// FromMinorUnits converts a count of smallest units back into currency units.
func FromMinorUnits(units decimal.Decimal, currency domain.Currency) decimal.Decimal {
	return units.Shift(-int32(currency.DecimalDigits))
}

// RoundHalfUp rounds a non-negative amount to the currency precision.
func RoundHalfUp(amount decimal.Decimal, currency domain.Currency) decimal.Decimal {
	return amount.Round(int32(currency.DecimalDigits))
}
