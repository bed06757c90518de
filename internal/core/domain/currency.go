package domain

import "github.com/shopspring/decimal"

// Currency is immutable reference data. DecimalDigits governs the precision of
// every amount expressed in the currency.
type Currency struct {
	CurrencyCode  string `json:"currencyCode"`  // ISO 4217-like, e.g. "USD"
	Symbol        string `json:"symbol"`        // e.g. "$"
	Name          string `json:"name"`          // e.g. "US Dollar"
	DecimalDigits int    `json:"decimalDigits"` // 2 for USD, 0 for JPY
	Rounding      int    `json:"rounding"`      // cash rounding increment; informational only
}

// ExchangeRate converts amounts from one currency into another.
type ExchangeRate struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
}
