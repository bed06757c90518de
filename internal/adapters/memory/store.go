// Package memory implements the repository ports on an in-memory store seeded
// from a JSON snapshot. Writes stay in memory until WriteSnapshot is called.
package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/SscSPs/tab_buddy/internal/apperrors"
	"github.com/SscSPs/tab_buddy/internal/models"
)

// Store holds the records behind every repository of this package.
type Store struct {
	mu            sync.RWMutex
	currencies    map[string]models.Currency
	exchangeRates map[rateKey]models.ExchangeRate
	users         map[string]models.User
	groups        map[string]models.Group
	expenses      map[string]models.Expense
	expenseOrder  []string // insertion order, for stable listing
}

type rateKey struct {
	from string
	to   string
}

// NewStore builds a store from a snapshot, checking its references.
func NewStore(snapshot models.Snapshot) (*Store, error) {
	s := &Store{
		currencies:    make(map[string]models.Currency, len(snapshot.Currencies)),
		exchangeRates: make(map[rateKey]models.ExchangeRate, len(snapshot.ExchangeRates)),
		users:         make(map[string]models.User, len(snapshot.Users)),
		groups:        make(map[string]models.Group, len(snapshot.Groups)),
		expenses:      make(map[string]models.Expense, len(snapshot.Expenses)),
	}

	for _, c := range snapshot.Currencies {
		if _, ok := s.currencies[c.CurrencyCode]; ok {
			return nil, fmt.Errorf("%w: currency %s", apperrors.ErrDuplicate, c.CurrencyCode)
		}
		if c.DecimalDigits < 0 {
			return nil, fmt.Errorf("%w: currency %s has negative decimal digits", apperrors.ErrValidation, c.CurrencyCode)
		}
		s.currencies[c.CurrencyCode] = c
	}
	for _, r := range snapshot.ExchangeRates {
		if err := s.requireCurrency(r.FromCurrencyCode); err != nil {
			return nil, err
		}
		if err := s.requireCurrency(r.ToCurrencyCode); err != nil {
			return nil, err
		}
		s.exchangeRates[rateKey{from: r.FromCurrencyCode, to: r.ToCurrencyCode}] = r
	}
	for _, u := range snapshot.Users {
		if _, ok := s.users[u.UserID]; ok {
			return nil, fmt.Errorf("%w: user %s", apperrors.ErrDuplicate, u.UserID)
		}
		s.users[u.UserID] = u
	}
	for _, g := range snapshot.Groups {
		if _, ok := s.groups[g.GroupID]; ok {
			return nil, fmt.Errorf("%w: group %s", apperrors.ErrDuplicate, g.GroupID)
		}
		if g.BaseCurrencyCode != nil && *g.BaseCurrencyCode != "" {
			if err := s.requireCurrency(*g.BaseCurrencyCode); err != nil {
				return nil, err
			}
		}
		s.groups[g.GroupID] = g
	}
	for _, e := range snapshot.Expenses {
		if err := s.insertExpense(e); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// LoadSnapshot reads a JSON snapshot file and builds a store from it.
func LoadSnapshot(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: snapshot %s", apperrors.ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}
	var snapshot models.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: snapshot %s is not valid JSON: %s", apperrors.ErrValidation, path, err.Error())
	}
	return NewStore(snapshot)
}

// Snapshot exports the store contents. Reference data is ordered by key and
// expenses by insertion, so exporting an unchanged store is stable.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := models.Snapshot{
		Currencies:    make([]models.Currency, 0, len(s.currencies)),
		ExchangeRates: make([]models.ExchangeRate, 0, len(s.exchangeRates)),
		Users:         make([]models.User, 0, len(s.users)),
		Groups:        make([]models.Group, 0, len(s.groups)),
		Expenses:      make([]models.Expense, 0, len(s.expenseOrder)),
	}
	for _, c := range s.currencies {
		snapshot.Currencies = append(snapshot.Currencies, c)
	}
	sort.Slice(snapshot.Currencies, func(i, j int) bool {
		return snapshot.Currencies[i].CurrencyCode < snapshot.Currencies[j].CurrencyCode
	})
	for _, r := range s.exchangeRates {
		snapshot.ExchangeRates = append(snapshot.ExchangeRates, r)
	}
	sort.Slice(snapshot.ExchangeRates, func(i, j int) bool {
		a, b := snapshot.ExchangeRates[i], snapshot.ExchangeRates[j]
		if a.FromCurrencyCode != b.FromCurrencyCode {
			return a.FromCurrencyCode < b.FromCurrencyCode
		}
		return a.ToCurrencyCode < b.ToCurrencyCode
	})
	for _, u := range s.users {
		snapshot.Users = append(snapshot.Users, u)
	}
	sort.Slice(snapshot.Users, func(i, j int) bool { return snapshot.Users[i].UserID < snapshot.Users[j].UserID })
	for _, g := range s.groups {
		g.MemberIDs = append([]string(nil), g.MemberIDs...)
		snapshot.Groups = append(snapshot.Groups, g)
	}
	sort.Slice(snapshot.Groups, func(i, j int) bool { return snapshot.Groups[i].GroupID < snapshot.Groups[j].GroupID })
	for _, id := range s.expenseOrder {
		snapshot.Expenses = append(snapshot.Expenses, cloneExpense(s.expenses[id]))
	}
	return snapshot
}

// WriteSnapshot writes the store contents to path as indented JSON. The file
// is replaced through a rename, so readers never see a partial document.
func (s *Store) WriteSnapshot(path string) error {
	data, err := json.MarshalIndent(s.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace snapshot %s: %w", path, err)
	}
	return nil
}

func (s *Store) requireCurrency(code string) error {
	if _, ok := s.currencies[code]; !ok {
		return fmt.Errorf("%w: unknown currency %s", apperrors.ErrValidation, code)
	}
	return nil
}

// insertExpense adds a new expense. Callers hold the write lock or own the store.
func (s *Store) insertExpense(e models.Expense) error {
	if e.ExpenseID == "" {
		return fmt.Errorf("%w: expense without ID", apperrors.ErrValidation)
	}
	if _, ok := s.expenses[e.ExpenseID]; ok {
		return fmt.Errorf("%w: expense %s", apperrors.ErrDuplicate, e.ExpenseID)
	}
	if err := s.checkExpenseRefs(e); err != nil {
		return err
	}
	s.expenses[e.ExpenseID] = cloneExpense(e)
	s.expenseOrder = append(s.expenseOrder, e.ExpenseID)
	return nil
}

func (s *Store) checkExpenseRefs(e models.Expense) error {
	if _, ok := s.groups[e.GroupID]; !ok {
		return fmt.Errorf("%w: expense %s references unknown group %s", apperrors.ErrValidation, e.ExpenseID, e.GroupID)
	}
	return s.requireCurrency(e.CurrencyCode)
}

func cloneExpense(e models.Expense) models.Expense {
	e.SplitUsers = append([]models.SplitUser(nil), e.SplitUsers...)
	if e.BaseRate != nil {
		r := *e.BaseRate
		e.BaseRate = &r
	}
	return e
}
