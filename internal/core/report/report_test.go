package report_test

import (
	"testing"

	"github.com/SscSPs/tab_buddy/internal/apperrors"
	"github.com/SscSPs/tab_buddy/internal/core/domain"
	"github.com/SscSPs/tab_buddy/internal/core/ledger"
	"github.com/SscSPs/tab_buddy/internal/core/report"
	"github.com/SscSPs/tab_buddy/internal/core/split"
	"github.com/SscSPs/tab_buddy/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	usd = domain.Currency{CurrencyCode: "USD", Symbol: "$", DecimalDigits: 2}
	twd = domain.Currency{CurrencyCode: "TWD", Symbol: "NT$", DecimalDigits: 0}
	chf = domain.Currency{CurrencyCode: "CHF", DecimalDigits: 2}

	alice = domain.User{UserID: "alice", DisplayName: "Alice"}
	bob   = domain.User{UserID: "bob", DisplayName: "Bob"}
	carol = domain.User{UserID: "carol", DisplayName: "Carol"}
)

func equalExpense(t *testing.T, id, amount string, currency domain.Currency, category string, payer domain.User, owed ...domain.User) domain.Expense {
	t.Helper()
	participants := make([]split.Participant, len(owed))
	for i, u := range owed {
		participants[i] = split.Participant{User: u, Owed: true}
	}
	splitUsers, err := split.Calculate(split.Request{Amount: amount, Currency: currency, PayerID: payer.UserID, Participants: participants})
	require.NoError(t, err)
	return domain.Expense{
		ExpenseID:  id,
		Amount:     decimal.RequireFromString(amount),
		Currency:   currency,
		Category:   category,
		SplitUsers: splitUsers,
	}
}

func TestLines(t *testing.T) {
	expenses := []domain.Expense{
		equalExpense(t, "e1", "90.00", usd, "food", alice, alice, bob, carol),
		equalExpense(t, "e2", "10.00", chf, "", bob, alice, bob),
	}

	assert.Equal(t, []string{
		"You owe Bob CHF 5.00",
		"Bob owes You $30.00",
		"Carol owes You $30.00",
	}, report.Lines(ledger.Compute(alice, expenses)))

	assert.Equal(t, []string{
		"Alice owes You CHF 5.00",
		"You owe Alice $30.00",
	}, report.Lines(ledger.Compute(bob, expenses)))
}

func TestDescribe_FallsBackToUserID(t *testing.T) {
	line := domain.DebtLine{Currency: usd, Counterparty: domain.User{UserID: "u-42"}, Amount: decimal.RequireFromString("-1.5")}
	assert.Equal(t, "You owe u-42 $1.50", report.Describe(line))
}

func TestConvertExpense(t *testing.T) {
	expense := equalExpense(t, "e1", "10.00", usd, "food", alice, alice, bob, carol)
	rate := decimal.RequireFromString("31.57")
	expense.BaseRate = &rate

	converted, err := report.ConvertExpense(expense, twd)
	require.NoError(t, err)

	// 10.00 * 31.57 = 315.7, rounded half-up to 316.
	assert.Equal(t, "316", converted.Amount.StringFixed(0))
	assert.Equal(t, "TWD", converted.Currency.CurrencyCode)
	assert.Nil(t, converted.BaseRate)
	require.NoError(t, accounting.ValidateSplitBalance(converted))

	// The source expense is left untouched.
	assert.Equal(t, "USD", expense.Currency.CurrencyCode)
	assert.Equal(t, "3.34", expense.SplitUsers[0].Amount.StringFixed(2))
}

func TestConvertExpense_SameCurrencyUnchanged(t *testing.T) {
	expense := equalExpense(t, "e1", "10.00", usd, "", alice, alice, bob)
	converted, err := report.ConvertExpense(expense, usd)
	require.NoError(t, err)
	assert.True(t, converted.Amount.Equal(expense.Amount))
	assert.Equal(t, "USD", converted.Currency.CurrencyCode)
}

func TestConvertExpense_MissingRate(t *testing.T) {
	expense := equalExpense(t, "e1", "10.00", usd, "", alice, alice, bob)
	_, err := report.ConvertExpense(expense, twd)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	zero := decimal.Zero
	expense.BaseRate = &zero
	_, err = report.ConvertExpense(expense, twd)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestConvertExpense_ZeroTotal(t *testing.T) {
	expense := equalExpense(t, "e1", "0", usd, "", alice, alice, bob)
	rate := decimal.RequireFromString("30")
	expense.BaseRate = &rate

	converted, err := report.ConvertExpense(expense, twd)
	require.NoError(t, err)
	assert.True(t, converted.Amount.IsZero())
	for _, su := range converted.SplitUsers {
		assert.True(t, su.Amount.IsZero())
	}
}

func TestConvertExpenses_UnbalancedRecordIsKept(t *testing.T) {
	rate := decimal.RequireFromString("30")

	noShares := domain.Expense{
		ExpenseID: "bad",
		Amount:    decimal.RequireFromString("12.00"),
		Currency:  usd,
		BaseRate:  &rate,
		SplitUsers: []domain.SplitUser{
			{User: alice, Amount: decimal.Zero},
			{User: bob, Amount: decimal.Zero},
		},
	}
	negativeShare := domain.Expense{
		ExpenseID: "neg",
		Amount:    decimal.RequireFromString("10.00"),
		Currency:  usd,
		BaseRate:  &rate,
		SplitUsers: []domain.SplitUser{
			{User: alice, Paid: true, Owed: true, Amount: decimal.RequireFromString("-2.00")},
			{User: bob, Owed: true, Amount: decimal.RequireFromString("12.00")},
		},
	}
	good := equalExpense(t, "good", "90.00", usd, "", alice, alice, bob, carol)
	good.BaseRate = &rate

	converted, err := report.ConvertExpenses([]domain.Expense{noShares, negativeShare, good}, twd)
	require.NoError(t, err)
	require.Len(t, converted, 3)

	assert.Equal(t, "360", converted[0].Amount.String())
	assert.True(t, converted[0].SplitUsers[0].Amount.IsZero())
	assert.Equal(t, "-60", converted[1].SplitUsers[0].Amount.String())
	assert.Equal(t, "360", converted[1].SplitUsers[1].Amount.String())
	require.NoError(t, accounting.ValidateSplitBalance(converted[2]))

	b := ledger.Compute(bob, converted)
	require.Len(t, b.Warnings, 1)
	assert.ErrorIs(t, b.Warnings[0], apperrors.ErrMalformedExpense)
	// bob owes alice 360 for "neg" and 900 for "good"
	assert.Equal(t, "-1260", b.Debts["TWD"]["alice"].String())
	assert.Equal(t, "3360", b.Totals["TWD"].String())
}

func TestConvertExpenses_KeepsLedgerZeroSum(t *testing.T) {
	rate := decimal.RequireFromString("0.0317")
	expenses := []domain.Expense{
		equalExpense(t, "e1", "1001", twd, "", alice, alice, bob, carol),
		equalExpense(t, "e2", "7.77", usd, "", bob, alice, bob, carol),
	}
	expenses[0].BaseRate = &rate

	converted, err := report.ConvertExpenses(expenses, usd)
	require.NoError(t, err)
	for _, e := range converted {
		require.NoError(t, accounting.ValidateSplitBalance(e))
	}

	summaries, _ := report.MemberSummaries([]domain.User{alice, bob, carol}, converted)
	assert.NoError(t, accounting.ValidateZeroSum(summaries))
}

func TestCategoryBreakdown(t *testing.T) {
	expenses := []domain.Expense{
		equalExpense(t, "e1", "60.00", usd, "food", alice, alice, bob),
		equalExpense(t, "e2", "30.00", usd, "transport", alice, alice, bob),
		equalExpense(t, "e3", "10.00", usd, "", bob, alice, bob),
		equalExpense(t, "e4", "20.00", usd, "food", bob, alice, bob),
		equalExpense(t, "e5", "500", twd, "hotel", alice, alice, bob),
	}

	rows := report.CategoryBreakdown(expenses)
	require.Len(t, rows, 4)

	type row struct {
		currency, category, total, percent string
		count                              int
	}
	got := make([]row, len(rows))
	for i, r := range rows {
		got[i] = row{r.Currency.CurrencyCode, r.Category, r.Total.StringFixed(2), r.Percent.StringFixed(2), r.Count}
	}
	assert.Equal(t, []row{
		{"TWD", "hotel", "500.00", "100.00", 1},
		{"USD", "food", "80.00", "66.67", 2},
		{"USD", "transport", "30.00", "25.00", 1},
		{"USD", report.DefaultCategory, "10.00", "8.33", 1},
	}, got)
}

func TestCategoryBreakdown_Empty(t *testing.T) {
	assert.Empty(t, report.CategoryBreakdown(nil))
}

func TestMemberSummaries(t *testing.T) {
	expenses := []domain.Expense{
		equalExpense(t, "e1", "90.00", usd, "", alice, alice, bob, carol),
	}
	summaries, warnings := report.MemberSummaries([]domain.User{alice, bob, carol}, expenses)
	require.Len(t, summaries, 3)
	assert.Empty(t, warnings)
	assert.Equal(t, "60.00", summaries[0].Net["USD"].StringFixed(2))
	assert.Equal(t, "-30.00", summaries[1].Net["USD"].StringFixed(2))
	assert.Equal(t, "-30.00", summaries[2].Net["USD"].StringFixed(2))
}
