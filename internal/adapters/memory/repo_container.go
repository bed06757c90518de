package memory

import (
	portsrepo "github.com/SscSPs/tab_buddy/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every repository to the same store.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		GroupRepo:        newGroupRepository(store),
		ExpenseRepo:      newExpenseRepository(store),
		CurrencyRepo:     newCurrencyRepository(store),
		ExchangeRateRepo: newExchangeRateRepository(store),
	}
}
