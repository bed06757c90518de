package services

import (
	"context"

	"github.com/SscSPs/tab_buddy/internal/core/domain"
)

// ReportingSvc defines operations for aggregate group reports
type ReportingSvc interface {
	// GroupExpenses returns the group's expenses, converted into the group base
	// currency when convert is set.
	GroupExpenses(ctx context.Context, groupID string, convert bool) ([]domain.Expense, error)

	// CategoryBreakdown sums the group's spend per currency and category.
	CategoryBreakdown(ctx context.Context, groupID string, convert bool) ([]domain.CategoryTotal, error)
}
