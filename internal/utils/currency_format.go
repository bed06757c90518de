package utils

import (
	"github.com/SscSPs/tab_buddy/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatWithCurrencyPrecision formats an amount with the correct precision for a given currency.
// Example: amount 12.3456 with USD (2 digits) returns "12.35"
// Example: amount 12.3456 with JPY (0 digits) returns "12"
// Example: amount 30 with USD returns "30.00"
func FormatWithCurrencyPrecision(amount decimal.Decimal, currency domain.Currency) string {
	return amount.StringFixed(int32(currency.DecimalDigits))
}

// FormatWithPrecision formats an amount with the given precision
// This is a convenience function when you only have the precision value
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}

// FormatWithSymbol prefixes the formatted amount with the currency symbol,
// falling back to the currency code.
func FormatWithSymbol(amount decimal.Decimal, currency domain.Currency) string {
	symbol := currency.Symbol
	if symbol == "" {
		symbol = currency.CurrencyCode + " "
	}
	return symbol + FormatWithCurrencyPrecision(amount, currency)
}
