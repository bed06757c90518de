package services

import (
	portsrepo "github.com/SscSPs/tab_buddy/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/tab_buddy/internal/core/ports/services"
	"github.com/SscSPs/tab_buddy/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, expenseOptions ...ExpenseServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Reference data services first since the others depend on them
	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo)

	container.Expense = NewExpenseService(
		repos.ExpenseRepo,
		repos.GroupRepo,
		container.Currency,
		container.ExchangeRate,
		expenseOptions...,
	)

	loader := &groupExpenses{
		groupRepo:   repos.GroupRepo,
		expenseRepo: repos.ExpenseRepo,
		currencySvc: container.Currency,
		rateSvc:     container.ExchangeRate,
	}
	container.Ledger = newLedgerService(loader,
		WithLedgerStrategy(cfg.LedgerStrategy),
		WithSummaryWorkers(cfg.SummaryWorkers),
	)
	container.Reporting = &reportingService{loader: loader}

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.ExpenseSvcFacade      = (*expenseService)(nil)
	_ portssvc.LedgerSvc             = (*ledgerService)(nil)
	_ portssvc.ReportingSvc          = (*reportingService)(nil)
	_ portssvc.CurrencyReaderSvc     = (*currencyService)(nil)
	_ portssvc.ExchangeRateReaderSvc = (*exchangeRateService)(nil)
)
