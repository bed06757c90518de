package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/tab_buddy/internal/apperrors"
	"github.com/SscSPs/tab_buddy/internal/core/domain"
	portsrepo "github.com/SscSPs/tab_buddy/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/tab_buddy/internal/core/ports/services"
	"github.com/SscSPs/tab_buddy/internal/core/split"
	"github.com/SscSPs/tab_buddy/internal/dto"
	"github.com/SscSPs/tab_buddy/internal/utils"
	"github.com/SscSPs/tab_buddy/internal/utils/accounting"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const maxPageSize = 100

// expenseService implements the ExpenseSvcFacade interface
type expenseService struct {
	BaseService
	expenseRepo portsrepo.ExpenseRepositoryFacade
	groupRepo   portsrepo.GroupReader
	currencySvc portssvc.CurrencyReaderSvc
	rateSvc     portssvc.ExchangeRateReaderSvc
	validate    *validator.Validate
	now         func() time.Time
	newID       func() string
}

// ExpenseServiceOption is a functional option for configuring the expense service
type ExpenseServiceOption func(*expenseService)

// WithExpenseClock overrides the clock used for audit fields and default dates.
func WithExpenseClock(now func() time.Time) ExpenseServiceOption {
	return func(s *expenseService) {
		s.now = now
	}
}

// WithExpenseIDGenerator overrides how new expense IDs are generated.
func WithExpenseIDGenerator(newID func() string) ExpenseServiceOption {
	return func(s *expenseService) {
		s.newID = newID
	}
}

// NewExpenseService creates a new expense service with the provided options
func NewExpenseService(
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	groupRepo portsrepo.GroupReader,
	currencySvc portssvc.CurrencyReaderSvc,
	rateSvc portssvc.ExchangeRateReaderSvc,
	options ...ExpenseServiceOption,
) portssvc.ExpenseSvcFacade {
	svc := &expenseService{
		expenseRepo: expenseRepo,
		groupRepo:   groupRepo,
		currencySvc: currencySvc,
		rateSvc:     rateSvc,
		validate:    newRequestValidator(),
		now:         time.Now,
		newID:       uuid.NewString,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure expenseService implements the ExpenseSvcFacade interface
var _ portssvc.ExpenseSvcFacade = (*expenseService)(nil)

func (s *expenseService) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense by ID in service: %w", err)
	}
	return expense, nil
}

func (s *expenseService) ListGroupExpenses(ctx context.Context, groupID string) ([]domain.Expense, error) {
	expenses, err := s.expenseRepo.ListExpensesByGroupID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses in service: %w", err)
	}
	if expenses == nil {
		return []domain.Expense{}, nil
	}
	return expenses, nil
}

// ListGroupExpensesPage returns one page of a group's expenses, newest first.
func (s *expenseService) ListGroupExpensesPage(ctx context.Context, groupID string, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	if limit < 0 || limit > maxPageSize {
		return nil, nil, fmt.Errorf("%w: limit %d out of range, use 0 for the default or at most %d", apperrors.ErrValidation, limit, maxPageSize)
	}
	expenses, next, err := s.expenseRepo.ListExpensesPage(ctx, groupID, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expense page", slog.String("group_id", groupID))
		return nil, nil, fmt.Errorf("failed to list expenses in service: %w", err)
	}
	if expenses == nil {
		expenses = []domain.Expense{}
	}
	return expenses, next, nil
}

// PreviewSplit computes the shares a request would produce. Participants are
// not checked against any group and nothing is persisted.
func (s *expenseService) PreviewSplit(ctx context.Context, req dto.SplitPreviewRequest) ([]domain.SplitUser, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}
	currency, err := s.resolveCurrency(ctx, req.CurrencyCode)
	if err != nil {
		return nil, err
	}
	splitUsers, err := s.calculate(req, *currency, func(userID string) (domain.User, bool) {
		return domain.User{UserID: userID, DisplayName: userID}, true
	})
	if err != nil {
		s.LogDebug(ctx, "Split preview rejected", slog.String("error", err.Error()))
		return nil, err
	}
	return splitUsers, nil
}

func (s *expenseService) CreateExpense(ctx context.Context, groupID string, req dto.ExpenseRequest, creatorUserID string) (*domain.Expense, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find group for new expense", slog.String("group_id", groupID))
		return nil, fmt.Errorf("failed to find group %s: %w", groupID, err)
	}
	if _, err := s.RequireMember(ctx, group, creatorUserID); err != nil {
		return nil, err
	}

	currency, err := s.resolveCurrency(ctx, req.CurrencyCode)
	if err != nil {
		return nil, err
	}

	splitUsers, err := s.calculate(req.SplitPreviewRequest, *currency, group.Member)
	if err != nil {
		s.LogError(ctx, err, "Failed to split expense",
			slog.String("group_id", groupID),
			slog.String("user_id", creatorUserID))
		return nil, err
	}

	now := s.now()
	expense := domain.Expense{
		ExpenseID:   s.newID(),
		GroupID:     group.GroupID,
		Description: strings.TrimSpace(req.Description),
		Currency:    *currency,
		Date:        req.Date,
		Category:    strings.TrimSpace(req.Category),
		Policy:      policyOrDefault(req.Policy),
		SplitUsers:  splitUsers,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if expense.Date.IsZero() {
		expense.Date = now
	}
	expense.Amount, err = utils.ParseAmount(req.Amount, *currency)
	if err != nil {
		return nil, err
	}
	expense.BaseRate = s.captureBaseRate(ctx, group, *currency)

	if err := accounting.ValidateSplitBalance(expense); err != nil {
		s.LogError(ctx, err, "Split does not balance", slog.String("expense_id", expense.ExpenseID))
		return nil, err
	}

	if err := s.expenseRepo.SaveExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save expense",
			slog.String("expense_id", expense.ExpenseID),
			slog.String("group_id", groupID))
		return nil, fmt.Errorf("failed to create expense in service: %w", err)
	}

	s.LogInfo(ctx, "Expense created successfully",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("group_id", groupID),
		slog.String("currency", currency.CurrencyCode),
		slog.Int("participants", len(splitUsers)))
	return &expense, nil
}

func (s *expenseService) UpdateExpense(ctx context.Context, expenseID string, req dto.ExpenseRequest, updaterUserID string) (*domain.Expense, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find expense for update", slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to find expense %s: %w", expenseID, err)
	}
	group, err := s.groupRepo.FindGroupByID(ctx, existing.GroupID)
	if err != nil {
		return nil, fmt.Errorf("failed to find group %s: %w", existing.GroupID, err)
	}
	if _, err := s.RequireMember(ctx, group, updaterUserID); err != nil {
		return nil, err
	}

	currency, err := s.resolveCurrency(ctx, req.CurrencyCode)
	if err != nil {
		return nil, err
	}
	splitUsers, err := s.calculate(req.SplitPreviewRequest, *currency, group.Member)
	if err != nil {
		s.LogError(ctx, err, "Failed to recompute expense split", slog.String("expense_id", expenseID))
		return nil, err
	}

	updated := *existing
	updated.Description = strings.TrimSpace(req.Description)
	updated.Category = strings.TrimSpace(req.Category)
	updated.Policy = policyOrDefault(req.Policy)
	updated.SplitUsers = splitUsers
	updated.Amount, err = utils.ParseAmount(req.Amount, *currency)
	if err != nil {
		return nil, err
	}
	if !req.Date.IsZero() {
		updated.Date = req.Date
	}
	if existing.Currency.CurrencyCode != currency.CurrencyCode || existing.BaseRate == nil {
		updated.BaseRate = s.captureBaseRate(ctx, group, *currency)
	}
	updated.Currency = *currency
	updated.LastUpdatedAt = s.now()
	updated.LastUpdatedBy = updaterUserID

	if err := accounting.ValidateSplitBalance(updated); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.UpdateExpense(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update expense", slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to update expense in service: %w", err)
	}

	s.LogInfo(ctx, "Expense updated successfully",
		slog.String("expense_id", expenseID),
		slog.String("user_id", updaterUserID))
	return &updated, nil
}

// newRequestValidator adds the "decimal" tag: a non-negative number that
// shopspring/decimal can parse, so ".5" and "1e2" pass and "1,5" does not.
func newRequestValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
		return err == nil && !d.IsNegative()
	})
	return v
}

func (s *expenseService) validateRequest(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if fe.StructField() == "Amount" {
				return fmt.Errorf("%w: total %q: %s", apperrors.ErrInvalidAmount, fmt.Sprint(fe.Value()), err.Error())
			}
		}
	}
	return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
}

func (s *expenseService) resolveCurrency(ctx context.Context, code string) (*domain.Currency, error) {
	currency, err := s.currencySvc.GetCurrencyByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency code '%s' not found", apperrors.ErrValidation, code)
		}
		return nil, fmt.Errorf("failed to validate currency '%s': %w", code, err)
	}
	return currency, nil
}

// calculate maps the request onto split participants, resolving each user
// through lookup, and runs the split.
func (s *expenseService) calculate(req dto.SplitPreviewRequest, currency domain.Currency, lookup func(string) (domain.User, bool)) ([]domain.SplitUser, error) {
	if unknown := lo.Filter(req.Participants, func(p dto.ParticipantRequest, _ int) bool {
		_, ok := lookup(p.UserID)
		return !ok
	}); len(unknown) > 0 {
		ids := lo.Map(unknown, func(p dto.ParticipantRequest, _ int) string { return p.UserID })
		return nil, fmt.Errorf("%w: not group members: %s", apperrors.ErrInvalidSplit, strings.Join(ids, ", "))
	}

	participants := make([]split.Participant, 0, len(req.Participants))
	for _, p := range req.Participants {
		user, _ := lookup(p.UserID)
		weight := decimal.Zero
		if p.Weight != "" {
			w, err := decimal.NewFromString(p.Weight)
			if err != nil {
				return nil, fmt.Errorf("%w: weight %q for user %s is not a decimal", apperrors.ErrValidation, p.Weight, p.UserID)
			}
			weight = w
		}
		participants = append(participants, split.Participant{User: user, Owed: p.Owed, Weight: weight})
	}

	return split.Calculate(split.Request{
		Amount:       req.Amount,
		Currency:     currency,
		PayerID:      req.PayerID,
		Participants: participants,
		Policy:       domain.SplitPolicy(req.Policy),
	})
}

// captureBaseRate looks up the rate to the group base currency at creation time.
// A missing rate is not fatal: converted reports fill it in later.
func (s *expenseService) captureBaseRate(ctx context.Context, group *domain.Group, currency domain.Currency) *decimal.Decimal {
	if !group.HasBaseCurrency() || *group.BaseCurrencyCode == currency.CurrencyCode {
		return nil
	}
	rate, err := s.rateSvc.GetExchangeRate(ctx, currency.CurrencyCode, *group.BaseCurrencyCode)
	if err != nil {
		s.LogWarn(ctx, err, "No exchange rate captured for expense",
			slog.String("group_id", group.GroupID),
			slog.String("from", currency.CurrencyCode),
			slog.String("to", *group.BaseCurrencyCode))
		return nil
	}
	r := rate.Rate
	return &r
}

func policyOrDefault(policy string) domain.SplitPolicy {
	if policy == "" {
		return domain.SplitEqual
	}
	return domain.SplitPolicy(policy)
}
