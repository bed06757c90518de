package memory

import (
	"context"

	"github.com/SscSPs/tab_buddy/internal/apperrors"
	"github.com/SscSPs/tab_buddy/internal/core/domain"
	portsrepo "github.com/SscSPs/tab_buddy/internal/core/ports/repositories"
	"github.com/SscSPs/tab_buddy/internal/utils/mapping"
)

type exchangeRateRepository struct {
	store *Store
}

func newExchangeRateRepository(store *Store) portsrepo.ExchangeRateReader {
	return &exchangeRateRepository{store: store}
}

// FindExchangeRate retrieves the rate for a currency pair.
func (r *exchangeRateRepository) FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	m, ok := r.store.exchangeRates[rateKey{from: fromCurrencyCode, to: toCurrencyCode}]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}
