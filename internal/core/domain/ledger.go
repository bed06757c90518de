package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Balances is the result of folding a group's expenses from one viewer's point of view.
//
// Debts[currency][counterparty] is the net amount between the viewer and the
// counterparty: positive means the counterparty owes the viewer, negative means
// the viewer owes the counterparty.
type Balances struct {
	ViewerID   string                                `json:"viewerID"`
	Totals     map[string]decimal.Decimal            `json:"totals"`
	Debts      map[string]map[string]decimal.Decimal `json:"debts"`
	Currencies map[string]Currency                   `json:"currencies"`
	Users      map[string]User                       `json:"users"`
	Warnings   []error                               `json:"-"`
}

// NewBalances returns empty, ready to fill Balances for the viewer.
func NewBalances(viewerID string) *Balances {
	return &Balances{
		ViewerID:   viewerID,
		Totals:     make(map[string]decimal.Decimal),
		Debts:      make(map[string]map[string]decimal.Decimal),
		Currencies: make(map[string]Currency),
		Users:      make(map[string]User),
	}
}

// DebtLine is one non-zero (currency, counterparty, amount) triple of a Balances.
type DebtLine struct {
	Currency     Currency
	Counterparty User
	Amount       decimal.Decimal
}

// ViewerOwes reports whether the viewer is the debtor on this line.
func (l DebtLine) ViewerOwes() bool {
	return l.Amount.IsNegative()
}

// Lines flattens Debts into non-zero lines ordered by currency code, then counterparty ID.
func (b *Balances) Lines() []DebtLine {
	var lines []DebtLine
	for code, byUser := range b.Debts {
		for userID, amount := range byUser {
			if amount.IsZero() {
				continue
			}
			user, ok := b.Users[userID]
			if !ok {
				user = User{UserID: userID}
			}
			lines = append(lines, DebtLine{
				Currency:     b.Currencies[code],
				Counterparty: user,
				Amount:       amount,
			})
		}
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Currency.CurrencyCode != lines[j].Currency.CurrencyCode {
			return lines[i].Currency.CurrencyCode < lines[j].Currency.CurrencyCode
		}
		return lines[i].Counterparty.UserID < lines[j].Counterparty.UserID
	})
	return lines
}

// Net sums the viewer's position per currency. Positive means the viewer is owed overall.
func (b *Balances) Net() map[string]decimal.Decimal {
	net := make(map[string]decimal.Decimal, len(b.Debts))
	for code, byUser := range b.Debts {
		sum := decimal.Zero
		for _, amount := range byUser {
			sum = sum.Add(amount)
		}
		net[code] = sum
	}
	return net
}

// MemberSummary is one member's net position across the whole group.
type MemberSummary struct {
	User User                       `json:"user"`
	Net  map[string]decimal.Decimal `json:"net"` // Positive means the member is owed
}

// GroupSummary holds the net position of every member of a group.
type GroupSummary struct {
	GroupID    string              `json:"groupID"`
	Members    []MemberSummary     `json:"members"`
	Currencies map[string]Currency `json:"currencies"`
	Warnings   []error             `json:"-"`
}

// CategoryTotal is one row of a per-currency category breakdown.
type CategoryTotal struct {
	Currency Currency        `json:"currency"`
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Percent  decimal.Decimal `json:"percent"` // Share of the currency total, 0-100
	Count    int             `json:"count"`
}
