package services

import (
	"context"

	"github.com/SscSPs/tab_buddy/internal/core/domain"
	"github.com/SscSPs/tab_buddy/internal/dto"
)

// ExpenseReaderSvc defines read operations for expense data
type ExpenseReaderSvc interface {
	// GetExpenseByID retrieves a specific expense by its ID.
	GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)

	// ListGroupExpenses retrieves every expense of a group.
	ListGroupExpenses(ctx context.Context, groupID string) ([]domain.Expense, error)

	// ListGroupExpensesPage retrieves one page of a group's expenses, newest first.
	ListGroupExpensesPage(ctx context.Context, groupID string, limit int, nextToken *string) ([]domain.Expense, *string, error)
}

// ExpenseWriterSvc defines write operations for expense data
type ExpenseWriterSvc interface {
	// CreateExpense splits and records a new expense. Nothing is recorded on error.
	CreateExpense(ctx context.Context, groupID string, req dto.ExpenseRequest, creatorUserID string) (*domain.Expense, error)

	// UpdateExpense recomputes the whole split of an existing expense.
	UpdateExpense(ctx context.Context, expenseID string, req dto.ExpenseRequest, updaterUserID string) (*domain.Expense, error)
}

// SplitPreviewSvc computes shares without recording anything.
type SplitPreviewSvc interface {
	PreviewSplit(ctx context.Context, req dto.SplitPreviewRequest) ([]domain.SplitUser, error)
}

// ExpenseSvcFacade combines all expense-related service interfaces
// This is a facade for clients that need access to all operations
type ExpenseSvcFacade interface {
	ExpenseReaderSvc
	ExpenseWriterSvc
	SplitPreviewSvc
}
