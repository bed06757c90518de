package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/tab_buddy/internal/apperrors"
	"github.com/SscSPs/tab_buddy/internal/core/domain"
	"github.com/SscSPs/tab_buddy/internal/core/ledger"
	portssvc "github.com/SscSPs/tab_buddy/internal/core/ports/services"
	"github.com/SscSPs/tab_buddy/internal/core/report"
	"github.com/SscSPs/tab_buddy/internal/platform/config"
	"github.com/SscSPs/tab_buddy/internal/utils/accounting"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// ledgerService implements the LedgerSvc interface
type ledgerService struct {
	BaseService
	loader   *groupExpenses
	strategy string
	workers  int
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithLedgerStrategy selects how member summaries are computed (fold or sheet).
func WithLedgerStrategy(strategy string) LedgerServiceOption {
	return func(s *ledgerService) {
		s.strategy = strategy
	}
}

// WithSummaryWorkers bounds how many member folds run at once.
func WithSummaryWorkers(workers int) LedgerServiceOption {
	return func(s *ledgerService) {
		if workers > 0 {
			s.workers = workers
		}
	}
}

func newLedgerService(loader *groupExpenses, options ...LedgerServiceOption) *ledgerService {
	svc := &ledgerService{
		loader:   loader,
		strategy: config.LedgerStrategyFold,
		workers:  4,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure ledgerService implements the LedgerSvc interface
var _ portssvc.LedgerSvc = (*ledgerService)(nil)

func (s *ledgerService) GroupBalances(ctx context.Context, groupID, viewerID string, convert bool) (*domain.Balances, error) {
	group, err := s.loader.group(ctx, groupID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.loader.load(ctx, group, convert)
	if err != nil {
		return nil, err
	}

	viewer, ok := lo.Find(summaryMembers(group, expenses), func(u domain.User) bool {
		return u.UserID == viewerID
	})
	if !ok {
		return nil, fmt.Errorf("%w: user %s is not a member of group %s and takes part in none of its expenses",
			apperrors.ErrValidation, viewerID, groupID)
	}

	balances := ledger.Compute(viewer, expenses)
	s.logWarnings(ctx, groupID, balances.Warnings)

	s.LogInfo(ctx, "Group balances computed",
		slog.String("group_id", groupID),
		slog.String("viewer_id", viewerID),
		slog.Bool("converted", convert),
		slog.Int("expense_count", len(expenses)),
		slog.Int("line_count", len(balances.Lines())))
	return balances, nil
}

func (s *ledgerService) MemberSummaries(ctx context.Context, groupID string) (*domain.GroupSummary, error) {
	group, err := s.loader.group(ctx, groupID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.loader.load(ctx, group, false)
	if err != nil {
		return nil, err
	}

	summary := &domain.GroupSummary{
		GroupID:    groupID,
		Currencies: make(map[string]domain.Currency),
	}
	for _, e := range expenses {
		summary.Currencies[e.Currency.CurrencyCode] = e.Currency
	}
	members := summaryMembers(group, expenses)

	switch s.strategy {
	case config.LedgerStrategySheet:
		summary.Members, summary.Warnings = s.summariesFromSheet(members, expenses)
	default:
		if s.workers == 1 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			summary.Members, summary.Warnings = report.MemberSummaries(members, expenses)
			break
		}
		summary.Members, summary.Warnings, err = s.summariesFromFolds(ctx, members, expenses)
		if err != nil {
			return nil, err
		}
	}
	s.logWarnings(ctx, groupID, summary.Warnings)

	if err := accounting.ValidateZeroSum(summary.Members); err != nil {
		s.LogError(ctx, err, "Member balances are inconsistent", slog.String("group_id", groupID))
		return nil, fmt.Errorf("member summaries for group %s: %w", groupID, err)
	}

	s.LogInfo(ctx, "Member summaries computed",
		slog.String("group_id", groupID),
		slog.String("strategy", s.strategy),
		slog.Int("member_count", len(members)))
	return summary, nil
}

func (s *ledgerService) summariesFromFolds(ctx context.Context, members []domain.User, expenses []domain.Expense) ([]domain.MemberSummary, []error, error) {
	summaries := make([]domain.MemberSummary, len(members))
	var warnings []error

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, m := range members {
		i, m := i, m
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			b := ledger.Compute(m, expenses)
			summaries[i] = report.Summarize(m, b)
			if i == 0 {
				warnings = b.Warnings
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return summaries, warnings, nil
}

func (s *ledgerService) summariesFromSheet(members []domain.User, expenses []domain.Expense) ([]domain.MemberSummary, []error) {
	sheet := ledger.NewSheet()
	var warnings []error
	for _, e := range expenses {
		if err := sheet.Add(e); err != nil {
			warnings = append(warnings, err)
		}
	}
	summaries := make([]domain.MemberSummary, len(members))
	for i, m := range members {
		summaries[i] = report.Summarize(m, sheet.View(m.UserID))
	}
	return summaries, warnings
}

func (s *ledgerService) logWarnings(ctx context.Context, groupID string, warnings []error) {
	for _, w := range warnings {
		s.LogWarn(ctx, w, "Skipping malformed expense in debt calculation", slog.String("group_id", groupID))
	}
}

// summaryMembers lists the group members followed by any other participant
// found in the expenses (e.g. someone who has left the group), so that every
// share is accounted for.
func summaryMembers(group *domain.Group, expenses []domain.Expense) []domain.User {
	members := append([]domain.User(nil), group.Members...)
	seen := make(map[string]struct{}, len(members))
	for _, m := range members {
		seen[m.UserID] = struct{}{}
	}
	for _, e := range expenses {
		for _, su := range e.SplitUsers {
			if _, ok := seen[su.UserID]; ok {
				continue
			}
			seen[su.UserID] = struct{}{}
			members = append(members, su.User)
		}
	}
	return members
}
