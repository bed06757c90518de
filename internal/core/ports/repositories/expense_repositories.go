package repositories

import (
	"context"

	"github.com/SscSPs/tab_buddy/internal/core/domain"
)

// ExpenseReader defines read operations for expense data
type ExpenseReader interface {
	// FindExpenseByID retrieves a specific expense by its ID.
	FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListExpensesByGroupID retrieves every expense of a group, oldest first.
	ListExpensesByGroupID(ctx context.Context, groupID string) ([]domain.Expense, error)

	// ListExpensesPage retrieves one page of a group's expenses, newest first.
	// It returns the page and a token for the next one, nil on the last page.
	ListExpensesPage(ctx context.Context, groupID string, limit int, nextToken *string) ([]domain.Expense, *string, error)
}

// ExpenseWriter defines write operations for expense data
type ExpenseWriter interface {
	// SaveExpense persists a new expense together with its split.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// UpdateExpense replaces an existing expense and its whole split.
	UpdateExpense(ctx context.Context, expense domain.Expense) error
}

// ExpenseRepositoryFacade combines all expense-related repository interfaces
// This is a facade for clients that need access to all operations
type ExpenseRepositoryFacade interface {
	ExpenseReader
	ExpenseWriter
}
