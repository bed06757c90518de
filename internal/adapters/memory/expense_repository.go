package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/tab_buddy/internal/apperrors"
	"github.com/SscSPs/tab_buddy/internal/core/domain"
	portsrepo "github.com/SscSPs/tab_buddy/internal/core/ports/repositories"
	"github.com/SscSPs/tab_buddy/internal/models"
	"github.com/SscSPs/tab_buddy/internal/utils/mapping"
	"github.com/SscSPs/tab_buddy/internal/utils/pagination"
)

type expenseRepository struct {
	store *Store
}

func newExpenseRepository(store *Store) portsrepo.ExpenseRepositoryFacade {
	return &expenseRepository{store: store}
}

// SaveExpense stores a new expense.
func (r *expenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.insertExpense(mapping.ToModelExpense(expense)); err != nil {
		return fmt.Errorf("failed to save expense %s: %w", expense.ExpenseID, err)
	}
	return nil
}

// UpdateExpense replaces an existing expense.
func (r *expenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.expenses[expense.ExpenseID]; !ok {
		return apperrors.ErrNotFound
	}
	m := mapping.ToModelExpense(expense)
	if err := r.store.checkExpenseRefs(m); err != nil {
		return fmt.Errorf("failed to update expense %s: %w", expense.ExpenseID, err)
	}
	r.store.expenses[expense.ExpenseID] = cloneExpense(m)
	return nil
}

// FindExpenseByID retrieves an expense by its ID.
func (r *expenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	m, ok := r.store.expenses[expenseID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	expense := r.toDomain(m)
	return &expense, nil
}

// ListExpensesByGroupID retrieves a group's expenses ordered by date, then insertion.
func (r *expenseRepository) ListExpensesByGroupID(ctx context.Context, groupID string) ([]domain.Expense, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if _, ok := r.store.groups[groupID]; !ok {
		return nil, apperrors.ErrNotFound
	}

	var expenses []domain.Expense
	for _, id := range r.store.expenseOrder {
		m := r.store.expenses[id]
		if m.GroupID != groupID {
			continue
		}
		expenses = append(expenses, r.toDomain(m))
	}
	sort.SliceStable(expenses, func(i, j int) bool { return expenses[i].Date.Before(expenses[j].Date) })
	return expenses, nil
}

// ListExpensesPage retrieves a page of a group's expenses ordered by date
// descending, with the expense ID as tie-breaker.
func (r *expenseRepository) ListExpensesPage(ctx context.Context, groupID string, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	// Default limit handling
	if limit <= 0 {
		limit = 20
	}
	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, err
		}
		cursor = &c
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if _, ok := r.store.groups[groupID]; !ok {
		return nil, nil, apperrors.ErrNotFound
	}

	var page []models.Expense
	for _, m := range r.store.expenses {
		if m.GroupID != groupID {
			continue
		}
		if cursor != nil && !cursor.After(m.Date, m.ExpenseID) {
			continue
		}
		page = append(page, m)
	}
	sort.Slice(page, func(i, j int) bool {
		if !page[i].Date.Equal(page[j].Date) {
			return page[i].Date.After(page[j].Date)
		}
		return page[i].ExpenseID > page[j].ExpenseID
	})

	var nextTokenVal *string
	if len(page) > limit {
		last := page[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{Date: last.Date, ID: last.ExpenseID})
		nextTokenVal = &token
		page = page[:limit]
	}

	expenses := make([]domain.Expense, len(page))
	for i, m := range page {
		expenses[i] = r.toDomain(m)
	}
	return expenses, nextTokenVal, nil
}

func (r *expenseRepository) toDomain(m models.Expense) domain.Expense {
	currency := mapping.ToDomainCurrency(r.store.currencies[m.CurrencyCode])
	return mapping.ToDomainExpense(cloneExpense(m), currency, r.store.users)
}
