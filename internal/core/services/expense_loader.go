package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/tab_buddy/internal/apperrors"
	"github.com/SscSPs/tab_buddy/internal/core/domain"
	portsrepo "github.com/SscSPs/tab_buddy/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/tab_buddy/internal/core/ports/services"
	"github.com/SscSPs/tab_buddy/internal/core/report"
)

// groupExpenses loads a group and its expenses, optionally converted into the
// group base currency. It is shared by the ledger and reporting services.
type groupExpenses struct {
	BaseService
	groupRepo   portsrepo.GroupReader
	expenseRepo portsrepo.ExpenseReader
	currencySvc portssvc.CurrencyReaderSvc
	rateSvc     portssvc.ExchangeRateReaderSvc
}

func (l *groupExpenses) group(ctx context.Context, groupID string) (*domain.Group, error) {
	group, err := l.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		l.LogError(ctx, err, "Failed to find group", slog.String("group_id", groupID))
		return nil, fmt.Errorf("failed to find group %s: %w", groupID, err)
	}
	return group, nil
}

func (l *groupExpenses) load(ctx context.Context, group *domain.Group, convert bool) ([]domain.Expense, error) {
	expenses, err := l.expenseRepo.ListExpensesByGroupID(ctx, group.GroupID)
	if err != nil {
		l.LogError(ctx, err, "Failed to list group expenses", slog.String("group_id", group.GroupID))
		return nil, fmt.Errorf("failed to list expenses of group %s: %w", group.GroupID, err)
	}
	if !convert {
		return expenses, nil
	}

	if !group.HasBaseCurrency() {
		return nil, fmt.Errorf("%w: group %s has no base currency to convert into", apperrors.ErrValidation, group.GroupID)
	}
	base, err := l.currencySvc.GetCurrencyByCode(ctx, *group.BaseCurrencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base currency of group %s: %w", group.GroupID, err)
	}

	withRates := make([]domain.Expense, len(expenses))
	for i, e := range expenses {
		withRates[i] = e
		if e.Currency.CurrencyCode == base.CurrencyCode || e.BaseRate != nil {
			continue
		}
		rate, err := l.rateSvc.GetExchangeRate(ctx, e.Currency.CurrencyCode, base.CurrencyCode)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				err = fmt.Errorf("%w: no rate from %s to %s for expense %s",
					apperrors.ErrValidation, e.Currency.CurrencyCode, base.CurrencyCode, e.ExpenseID)
			}
			l.LogError(ctx, err, "Failed to fill exchange rate",
				slog.String("expense_id", e.ExpenseID),
				slog.String("from", e.Currency.CurrencyCode),
				slog.String("to", base.CurrencyCode))
			return nil, err
		}
		r := rate.Rate
		withRates[i].BaseRate = &r
	}

	converted, err := report.ConvertExpenses(withRates, *base)
	if err != nil {
		l.LogError(ctx, err, "Failed to convert group expenses",
			slog.String("group_id", group.GroupID),
			slog.String("base_currency", base.CurrencyCode))
		return nil, err
	}
	l.LogDebug(ctx, "Converted group expenses",
		slog.String("group_id", group.GroupID),
		slog.String("base_currency", base.CurrencyCode),
		slog.Int("count", len(converted)))
	return converted, nil
}
