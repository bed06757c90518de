package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/tab_buddy/internal/core/domain"
	portssvc "github.com/SscSPs/tab_buddy/internal/core/ports/services"
	"github.com/SscSPs/tab_buddy/internal/core/report"
)

// reportingService implements the ReportingSvc interface
type reportingService struct {
	BaseService
	loader *groupExpenses
}

// Ensure reportingService implements the ReportingSvc interface
var _ portssvc.ReportingSvc = (*reportingService)(nil)

// GroupExpenses returns the group's expenses, converted when requested.
func (s *reportingService) GroupExpenses(ctx context.Context, groupID string, convert bool) ([]domain.Expense, error) {
	group, err := s.loader.group(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return s.loader.load(ctx, group, convert)
}

// CategoryBreakdown generates the per-currency category report of a group
func (s *reportingService) CategoryBreakdown(ctx context.Context, groupID string, convert bool) ([]domain.CategoryTotal, error) {
	expenses, err := s.GroupExpenses(ctx, groupID, convert)
	if err != nil {
		return nil, err
	}

	rows := report.CategoryBreakdown(expenses)
	s.LogInfo(ctx, "Category breakdown generated successfully",
		slog.String("group_id", groupID),
		slog.Bool("converted", convert),
		slog.Int("row_count", len(rows)))
	return rows, nil
}
