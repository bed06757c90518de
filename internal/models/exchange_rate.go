package models

import (
	"github.com/shopspring/decimal"
)

// ExchangeRate stores the current conversion rate between two currencies.
type ExchangeRate struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"` // FK -> Currency.currencyCode
	ToCurrencyCode   string          `json:"toCurrencyCode"`   // FK -> Currency.currencyCode
	Rate             decimal.Decimal `json:"rate"`
}
