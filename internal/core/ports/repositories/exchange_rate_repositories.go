package repositories

import (
	"context"

	"github.com/SscSPs/tab_buddy/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindExchangeRate retrieves the current rate between two currencies.
	// Returns apperrors.ErrNotFound when no rate is known.
	FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error)
}
