package ledger_test

import (
	"sync"
	"testing"

	"github.com/SscSPs/tab_buddy/internal/apperrors"
	"github.com/SscSPs/tab_buddy/internal/core/domain"
	"github.com/SscSPs/tab_buddy/internal/core/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSheet_MatchesCompute(t *testing.T) {
	expenses := []domain.Expense{
		newExpense(t, "e1", "10.00", usd, alice, alice, bob, carol),
		newExpense(t, "e2", "17.35", usd, bob, alice, bob, carol, dave),
		newExpense(t, "e3", "0.01", usd, carol, alice, dave),
		newExpense(t, "e4", "301", jpy, dave, alice, bob, carol, dave),
		newExpense(t, "e5", "99.99", eur, alice, bob),
	}

	sheet := ledger.NewSheet()
	for _, e := range expenses {
		require.NoError(t, sheet.Add(e))
	}

	for _, viewer := range []domain.User{alice, bob, carol, dave} {
		want := ledger.Compute(viewer, expenses)
		got := sheet.View(viewer.UserID)
		assert.Equal(t, renderLines(want), renderLines(got), "viewer %s", viewer.UserID)
		for code, total := range want.Totals {
			assert.True(t, total.Equal(got.Totals[code]))
		}
	}
}

func TestSheet_RemoveReversesAdd(t *testing.T) {
	first := newExpense(t, "e1", "10.00", usd, alice, alice, bob)
	second := newExpense(t, "e2", "6.00", usd, bob, alice, bob)

	sheet := ledger.NewSheet()
	require.NoError(t, sheet.Add(first))
	require.NoError(t, sheet.Add(second))
	require.NoError(t, sheet.Remove(second))

	view := sheet.View(alice.UserID)
	assert.Equal(t, "5.00", view.Debts["USD"]["bob"].StringFixed(2))
	assert.Equal(t, "10.00", view.Totals["USD"].StringFixed(2))
}

func TestSheet_MalformedCountsTotalsOnly(t *testing.T) {
	expense := newExpense(t, "bad", "12.00", usd, bob, alice, bob)
	for i := range expense.SplitUsers {
		expense.SplitUsers[i].Paid = false
	}

	sheet := ledger.NewSheet()
	err := sheet.Add(expense)
	assert.ErrorIs(t, err, apperrors.ErrMalformedExpense)

	view := sheet.View(alice.UserID)
	assert.Empty(t, view.Lines())
	assert.Equal(t, "12.00", view.Totals["USD"].StringFixed(2))
}

func TestSheet_ConcurrentAdds(t *testing.T) {
	expense := newExpense(t, "e", "2.00", usd, alice, alice, bob)
	sheet := ledger.NewSheet()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = sheet.Add(expense)
			_ = sheet.View(bob.UserID)
		}()
	}
	wg.Wait()

	view := sheet.View(alice.UserID)
	assert.Equal(t, "50.00", view.Debts["USD"]["bob"].StringFixed(2))
	assert.Equal(t, "100.00", view.Totals["USD"].StringFixed(2))
}
