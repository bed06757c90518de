package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/tab_buddy/internal/core/domain"
	portsrepo "github.com/SscSPs/tab_buddy/internal/core/ports/repositories"
	"github.com/SscSPs/tab_buddy/internal/core/split"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock GroupRepository ---
type MockGroupRepository struct {
	mock.Mock
}

func (m *MockGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

// --- Mock ExpenseRepository ---
type MockExpenseRepository struct {
	mock.Mock
}

func (m *MockExpenseRepository) FindExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	args := m.Called(ctx, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpensesByGroupID(ctx context.Context, groupID string) ([]domain.Expense, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockExpenseRepository) ListExpensesPage(ctx context.Context, groupID string, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	args := m.Called(ctx, groupID, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Expense), next, args.Error(2)
}

func (m *MockExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCurrencyCode, toCurrencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

var (
	_ portsrepo.GroupReader             = (*MockGroupRepository)(nil)
	_ portsrepo.ExpenseRepositoryFacade = (*MockExpenseRepository)(nil)
	_ portsrepo.CurrencyReader          = (*MockCurrencyRepository)(nil)
	_ portsrepo.ExchangeRateReader      = (*MockExchangeRateRepository)(nil)
)

// --- Fixtures ---

var (
	usd = domain.Currency{CurrencyCode: "USD", Symbol: "$", DecimalDigits: 2}
	twd = domain.Currency{CurrencyCode: "TWD", Symbol: "NT$", DecimalDigits: 0}

	alice = domain.User{UserID: "alice", DisplayName: "Alice"}
	bob   = domain.User{UserID: "bob", DisplayName: "Bob"}
	carol = domain.User{UserID: "carol", DisplayName: "Carol"}
)

func tripGroup() *domain.Group {
	base := "TWD"
	return &domain.Group{
		GroupID:          "trip",
		Name:             "Trip",
		BaseCurrencyCode: &base,
		Members:          []domain.User{alice, bob, carol},
	}
}

func equalExpense(t *testing.T, id, amount string, currency domain.Currency, payer domain.User, owed ...domain.User) domain.Expense {
	t.Helper()
	participants := make([]split.Participant, len(owed))
	for i, u := range owed {
		participants[i] = split.Participant{User: u, Owed: true}
	}
	splitUsers, err := split.Calculate(split.Request{Amount: amount, Currency: currency, PayerID: payer.UserID, Participants: participants})
	require.NoError(t, err)
	return domain.Expense{
		ExpenseID:  id,
		GroupID:    "trip",
		Amount:     decimal.RequireFromString(amount),
		Currency:   currency,
		Policy:     domain.SplitEqual,
		SplitUsers: splitUsers,
	}
}
