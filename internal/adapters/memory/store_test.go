package memory_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/tab_buddy/internal/adapters/memory"
	"github.com/SscSPs/tab_buddy/internal/apperrors"
	"github.com/SscSPs/tab_buddy/internal/core/domain"
	portsrepo "github.com/SscSPs/tab_buddy/internal/core/ports/repositories"
	"github.com/SscSPs/tab_buddy/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	repos portsrepo.RepositoryProvider
	ctx   context.Context
}

func (suite *StoreTestSuite) SetupTest() {
	store, err := memory.LoadSnapshot(filepath.Join("testdata", "snapshot.json"))
	suite.Require().NoError(err)
	suite.repos = memory.NewRepositoryProvider(store)
	suite.ctx = context.Background()
}

func (suite *StoreTestSuite) TestFindCurrencyByCode() {
	currency, err := suite.repos.CurrencyRepo.FindCurrencyByCode(suite.ctx, "TWD")
	suite.Require().NoError(err)
	suite.Equal("NT$", currency.Symbol)
	suite.Equal(0, currency.DecimalDigits)

	_, err = suite.repos.CurrencyRepo.FindCurrencyByCode(suite.ctx, "EUR")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *StoreTestSuite) TestListCurrencies_Sorted() {
	currencies, err := suite.repos.CurrencyRepo.ListCurrencies(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(currencies, 3)
	suite.Equal("JPY", currencies[0].CurrencyCode)
	suite.Equal("TWD", currencies[1].CurrencyCode)
	suite.Equal("USD", currencies[2].CurrencyCode)
}

func (suite *StoreTestSuite) TestFindExchangeRate() {
	rate, err := suite.repos.ExchangeRateRepo.FindExchangeRate(suite.ctx, "USD", "TWD")
	suite.Require().NoError(err)
	suite.True(rate.Rate.Equal(decimal.RequireFromString("31.5")))

	_, err = suite.repos.ExchangeRateRepo.FindExchangeRate(suite.ctx, "TWD", "USD")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *StoreTestSuite) TestFindGroupByID() {
	group, err := suite.repos.GroupRepo.FindGroupByID(suite.ctx, "trip")
	suite.Require().NoError(err)
	suite.Equal("Taipei trip", group.Name)
	suite.True(group.HasBaseCurrency())
	suite.Require().Len(group.Members, 3)
	suite.Equal("Bob", group.Members[1].DisplayName)

	flat, err := suite.repos.GroupRepo.FindGroupByID(suite.ctx, "flat")
	suite.Require().NoError(err)
	suite.False(flat.HasBaseCurrency())

	_, err = suite.repos.GroupRepo.FindGroupByID(suite.ctx, "nope")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *StoreTestSuite) TestListExpensesByGroupID_OrderedByDate() {
	expenses, err := suite.repos.ExpenseRepo.ListExpensesByGroupID(suite.ctx, "trip")
	suite.Require().NoError(err)
	suite.Require().Len(expenses, 3)
	suite.Equal([]string{"e2", "e1", "e3"}, []string{expenses[0].ExpenseID, expenses[1].ExpenseID, expenses[2].ExpenseID})

	e1 := expenses[1]
	suite.Equal("USD", e1.Currency.CurrencyCode)
	suite.Equal(2, e1.Currency.DecimalDigits)
	suite.Equal("90.00", e1.Amount.StringFixed(2))
	suite.Equal("Alice", e1.SplitUsers[0].DisplayName)
	payer, ok := e1.Payer()
	suite.True(ok)
	suite.Equal("alice", payer.UserID)

	_, ok = expenses[2].Payer()
	suite.False(ok, "e3 is stored without a payer")

	_, err = suite.repos.ExpenseRepo.ListExpensesByGroupID(suite.ctx, "nope")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *StoreTestSuite) TestListExpensesPage() {
	ids := func(expenses []domain.Expense) []string {
		out := make([]string, len(expenses))
		for i, e := range expenses {
			out[i] = e.ExpenseID
		}
		return out
	}

	first, next, err := suite.repos.ExpenseRepo.ListExpensesPage(suite.ctx, "trip", 2, nil)
	suite.Require().NoError(err)
	suite.Equal([]string{"e3", "e1"}, ids(first))
	suite.Require().NotNil(next)

	second, last, err := suite.repos.ExpenseRepo.ListExpensesPage(suite.ctx, "trip", 2, next)
	suite.Require().NoError(err)
	suite.Equal([]string{"e2"}, ids(second))
	suite.Nil(last)

	all, none, err := suite.repos.ExpenseRepo.ListExpensesPage(suite.ctx, "trip", 0, nil)
	suite.Require().NoError(err)
	suite.Len(all, 3)
	suite.Nil(none)

	bad := "not a token"
	_, _, err = suite.repos.ExpenseRepo.ListExpensesPage(suite.ctx, "trip", 2, &bad)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, _, err = suite.repos.ExpenseRepo.ListExpensesPage(suite.ctx, "nope", 2, nil)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *StoreTestSuite) TestSaveAndUpdateExpense() {
	expense := domain.Expense{
		ExpenseID: "new",
		GroupID:   "flat",
		Amount:    decimal.RequireFromString("4.00"),
		Currency:  domain.Currency{CurrencyCode: "USD", DecimalDigits: 2},
		Date:      time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		SplitUsers: []domain.SplitUser{
			{User: domain.User{UserID: "alice"}, Paid: true, Owed: true, Amount: decimal.RequireFromString("2.00")},
			{User: domain.User{UserID: "bob"}, Owed: true, Amount: decimal.RequireFromString("2.00")},
		},
	}
	suite.Require().NoError(suite.repos.ExpenseRepo.SaveExpense(suite.ctx, expense))
	suite.ErrorIs(suite.repos.ExpenseRepo.SaveExpense(suite.ctx, expense), apperrors.ErrDuplicate)

	// Mutating the caller's slice must not leak into the store.
	expense.SplitUsers[0].Amount = decimal.RequireFromString("99")

	stored, err := suite.repos.ExpenseRepo.FindExpenseByID(suite.ctx, "new")
	suite.Require().NoError(err)
	suite.Equal("2.00", stored.SplitUsers[0].Amount.StringFixed(2))
	suite.Equal("Alice", stored.SplitUsers[0].DisplayName)

	stored.Description = "edited"
	suite.Require().NoError(suite.repos.ExpenseRepo.UpdateExpense(suite.ctx, *stored))
	again, err := suite.repos.ExpenseRepo.FindExpenseByID(suite.ctx, "new")
	suite.Require().NoError(err)
	suite.Equal("edited", again.Description)

	missing := *stored
	missing.ExpenseID = "missing"
	suite.ErrorIs(suite.repos.ExpenseRepo.UpdateExpense(suite.ctx, missing), apperrors.ErrNotFound)

	badGroup := expense
	badGroup.ExpenseID = "bad-group"
	badGroup.GroupID = "nope"
	suite.ErrorIs(suite.repos.ExpenseRepo.SaveExpense(suite.ctx, badGroup), apperrors.ErrValidation)
}

func (suite *StoreTestSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(suite.ctx)
	cancel()
	_, err := suite.repos.GroupRepo.FindGroupByID(ctx, "trip")
	suite.ErrorIs(err, context.Canceled)
}

func TestStore(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func TestWriteSnapshot_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := memory.LoadSnapshot(filepath.Join("testdata", "snapshot.json"))
	require.NoError(t, err)

	added := domain.Expense{
		ExpenseID: "e5",
		GroupID:   "flat",
		Amount:    decimal.RequireFromString("7.00"),
		Currency:  domain.Currency{CurrencyCode: "USD", DecimalDigits: 2},
		Date:      time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		SplitUsers: []domain.SplitUser{
			{User: domain.User{UserID: "alice"}, Paid: true, Owed: true, Amount: decimal.RequireFromString("3.50")},
			{User: domain.User{UserID: "bob"}, Owed: true, Amount: decimal.RequireFromString("3.50")},
		},
	}
	require.NoError(t, memory.NewRepositoryProvider(store).ExpenseRepo.SaveExpense(ctx, added))

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, store.WriteSnapshot(path))

	reloaded, err := memory.LoadSnapshot(path)
	require.NoError(t, err)

	snapshot := reloaded.Snapshot()
	assert.Len(t, snapshot.Currencies, 3)
	assert.Equal(t, "JPY", snapshot.Currencies[0].CurrencyCode)
	assert.Len(t, snapshot.ExchangeRates, 2)
	assert.Len(t, snapshot.Groups, 2)
	require.Len(t, snapshot.Expenses, 5)

	e5 := snapshot.Expenses[4]
	assert.Equal(t, "e5", e5.ExpenseID)
	assert.True(t, e5.Amount.Equal(decimal.RequireFromString("7")))
	assert.True(t, e5.Date.Equal(added.Date))
	require.Len(t, e5.SplitUsers, 2)
	assert.True(t, e5.SplitUsers[1].Amount.Equal(decimal.RequireFromString("3.5")))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary file is left behind")
}

func TestLoadSnapshot_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := memory.LoadSnapshot(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte("{not json"), 0o600))
	_, err = memory.LoadSnapshot(broken)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestNewStore_ReferenceChecks(t *testing.T) {
	usd := models.Currency{CurrencyCode: "USD", DecimalDigits: 2}
	eur := "EUR"

	tests := []struct {
		name     string
		snapshot models.Snapshot
		wantErr  error
	}{
		{
			name:     "duplicate currency",
			snapshot: models.Snapshot{Currencies: []models.Currency{usd, usd}},
			wantErr:  apperrors.ErrDuplicate,
		},
		{
			name:     "rate with unknown currency",
			snapshot: models.Snapshot{Currencies: []models.Currency{usd}, ExchangeRates: []models.ExchangeRate{{FromCurrencyCode: "USD", ToCurrencyCode: "EUR"}}},
			wantErr:  apperrors.ErrValidation,
		},
		{
			name:     "group with unknown base currency",
			snapshot: models.Snapshot{Currencies: []models.Currency{usd}, Groups: []models.Group{{GroupID: "g", BaseCurrencyCode: &eur}}},
			wantErr:  apperrors.ErrValidation,
		},
		{
			name:     "expense in unknown group",
			snapshot: models.Snapshot{Currencies: []models.Currency{usd}, Expenses: []models.Expense{{ExpenseID: "e", GroupID: "g", CurrencyCode: "USD"}}},
			wantErr:  apperrors.ErrValidation,
		},
		{
			name: "expense in unknown currency",
			snapshot: models.Snapshot{
				Currencies: []models.Currency{usd},
				Groups:     []models.Group{{GroupID: "g"}},
				Expenses:   []models.Expense{{ExpenseID: "e", GroupID: "g", CurrencyCode: "EUR"}},
			},
			wantErr: apperrors.ErrValidation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := memory.NewStore(tt.snapshot)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
