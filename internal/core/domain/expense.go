package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SplitPolicy names the rule used to derive participant shares from the total.
type SplitPolicy string

const (
	SplitEqual      SplitPolicy = "EQUAL"
	SplitPercentage SplitPolicy = "PERCENTAGE"
	SplitExact      SplitPolicy = "EXACT"
)

// SplitUser is a User projected into one expense.
// Amount is the unsigned share owed by this participant; it is zero when Owed is false.
// Signs are derived only when debts are folded.
type SplitUser struct {
	User
	Paid   bool            `json:"paid"`
	Owed   bool            `json:"owed"`
	Amount decimal.Decimal `json:"amount"`
}

// Expense is a recorded, already split group expense.
type Expense struct {
	ExpenseID   string           `json:"expenseID"`
	GroupID     string           `json:"groupID"`
	Description string           `json:"description"`
	Amount      decimal.Decimal  `json:"amount"` // Unsigned total, in Currency units
	Currency    Currency         `json:"currency"`
	Date        time.Time        `json:"date"`
	Category    string           `json:"category"`
	Policy      SplitPolicy      `json:"policy"`
	BaseRate    *decimal.Decimal `json:"baseRate,omitempty"` // Rate to the group base currency, captured at creation
	SplitUsers  []SplitUser      `json:"splitUsers"`
	AuditFields
}

// Payer returns the single participant flagged as paid.
// ok is false when no participant, or more than one, has Paid set.
func (e Expense) Payer() (payer SplitUser, ok bool) {
	count := 0
	for _, su := range e.SplitUsers {
		if su.Paid {
			payer = su
			count++
		}
	}
	if count != 1 {
		return SplitUser{}, false
	}
	return payer, true
}

// OwedUsers returns the participants included in the division, in stored order.
func (e Expense) OwedUsers() []SplitUser {
	owed := make([]SplitUser, 0, len(e.SplitUsers))
	for _, su := range e.SplitUsers {
		if su.Owed {
			owed = append(owed, su)
		}
	}
	return owed
}

// SplitUser returns the participant with the given ID.
func (e Expense) SplitUser(userID string) (SplitUser, bool) {
	for _, su := range e.SplitUsers {
		if su.UserID == userID {
			return su, true
		}
	}
	return SplitUser{}, false
}
