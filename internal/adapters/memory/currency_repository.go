package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/tab_buddy/internal/apperrors"
	"github.com/SscSPs/tab_buddy/internal/core/domain"
	portsrepo "github.com/SscSPs/tab_buddy/internal/core/ports/repositories"
	"github.com/SscSPs/tab_buddy/internal/utils/mapping"
)

type currencyRepository struct {
	store *Store
}

func newCurrencyRepository(store *Store) portsrepo.CurrencyReader {
	return &currencyRepository{store: store}
}

// FindCurrencyByCode retrieves a currency by its 3-letter code.
func (r *currencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	m, ok := r.store.currencies[currencyCode]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	currency := mapping.ToDomainCurrency(m)
	return &currency, nil
}

// ListCurrencies retrieves all currencies ordered by code.
func (r *currencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	currencies := make([]domain.Currency, 0, len(r.store.currencies))
	for _, m := range r.store.currencies {
		currencies = append(currencies, mapping.ToDomainCurrency(m))
	}
	sort.Slice(currencies, func(i, j int) bool { return currencies[i].CurrencyCode < currencies[j].CurrencyCode })
	return currencies, nil
}
