package ledger

import (
	"sync"

	"github.com/SscSPs/tab_buddy/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Sheet is an incrementally maintained balance sheet for a whole group.
//
// It keeps, per currency, how much each debtor owes each creditor across all
// added expenses, so a view for any member is derived without refolding the
// expense list. A View yields the same debts and totals as Compute over the
// same expenses.
type Sheet struct {
	mu         sync.RWMutex
	owed       map[string]map[string]map[string]decimal.Decimal // currency -> debtor -> creditor -> amount
	totals     map[string]decimal.Decimal
	currencies map[string]domain.Currency
	users      map[string]domain.User
}

// NewSheet returns an empty Sheet.
func NewSheet() *Sheet {
	return &Sheet{
		owed:       make(map[string]map[string]map[string]decimal.Decimal),
		totals:     make(map[string]decimal.Decimal),
		currencies: make(map[string]domain.Currency),
		users:      make(map[string]domain.User),
	}
}

// Add records an expense. A malformed expense still counts towards the totals;
// the returned error describes why its debts were skipped.
func (s *Sheet) Add(expense domain.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record(expense, false)
}

// Remove reverses a previous Add of the same expense, e.g. before applying an edit.
func (s *Sheet) Remove(expense domain.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record(expense, true)
}

func (s *Sheet) record(expense domain.Expense, reverse bool) error {
	sign := func(d decimal.Decimal) decimal.Decimal {
		if reverse {
			return d.Neg()
		}
		return d
	}

	code := expense.Currency.CurrencyCode
	s.totals[code] = s.totals[code].Add(sign(expense.Amount))
	s.currencies[code] = expense.Currency
	for _, su := range expense.SplitUsers {
		s.users[su.UserID] = su.User
	}

	payer, ok := expense.Payer()
	if !ok {
		return malformed(expense)
	}
	for _, su := range expense.SplitUsers {
		if !su.Owed || su.UserID == payer.UserID {
			continue
		}
		s.addOwed(code, su.UserID, payer.UserID, sign(su.Amount))
	}
	return nil
}

func (s *Sheet) addOwed(code, debtor, creditor string, amount decimal.Decimal) {
	byDebtor, ok := s.owed[code]
	if !ok {
		byDebtor = make(map[string]map[string]decimal.Decimal)
		s.owed[code] = byDebtor
	}
	byCreditor, ok := byDebtor[debtor]
	if !ok {
		byCreditor = make(map[string]decimal.Decimal)
		byDebtor[debtor] = byCreditor
	}
	byCreditor[creditor] = byCreditor[creditor].Add(amount)
}

// View returns the balances of one member.
func (s *Sheet) View(viewerID string) *domain.Balances {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b := domain.NewBalances(viewerID)
	for code, total := range s.totals {
		b.Totals[code] = total
		b.Currencies[code] = s.currencies[code]
	}

	for code, byDebtor := range s.owed {
		for debtor, byCreditor := range byDebtor {
			for creditor, amount := range byCreditor {
				switch {
				case creditor == viewerID && debtor != viewerID:
					s.addView(b, code, debtor, amount)
				case debtor == viewerID && creditor != viewerID:
					s.addView(b, code, creditor, amount.Neg())
				}
			}
		}
	}
	return b
}

func (s *Sheet) addView(b *domain.Balances, code, counterparty string, amount decimal.Decimal) {
	byUser, ok := b.Debts[code]
	if !ok {
		byUser = make(map[string]decimal.Decimal)
		b.Debts[code] = byUser
	}
	byUser[counterparty] = byUser[counterparty].Add(amount)
	if user, ok := s.users[counterparty]; ok {
		b.Users[counterparty] = user
	} else {
		b.Users[counterparty] = domain.User{UserID: counterparty}
	}
}
