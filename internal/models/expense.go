package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is the stored form of a split expense.
type Expense struct {
	ExpenseID    string           `json:"expenseID"`
	GroupID      string           `json:"groupID"` // FK -> Group.groupID
	Description  string           `json:"description"`
	Amount       decimal.Decimal  `json:"amount"`
	CurrencyCode string           `json:"currencyCode"` // FK -> Currency.currencyCode
	Date         time.Time        `json:"date"`
	Category     string           `json:"category"`
	Policy       string           `json:"policy"`
	BaseRate     *decimal.Decimal `json:"baseRate,omitempty"`
	SplitUsers   []SplitUser      `json:"splitUsers"`
	AuditFields
}

// SplitUser is one participant row of a stored expense.
type SplitUser struct {
	UserID string          `json:"userID"` // FK -> User.userID
	Paid   bool            `json:"paid"`
	Owed   bool            `json:"owed"`
	Amount decimal.Decimal `json:"amount"`
}
