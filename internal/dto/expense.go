package dto

import (
	"time"

	"github.com/SscSPs/tab_buddy/internal/core/domain"
	"github.com/SscSPs/tab_buddy/internal/utils"
)

// ParticipantRequest is one member taking part in an expense.
// Weight is a percentage for PERCENTAGE splits and an amount for EXACT splits.
type ParticipantRequest struct {
	UserID string `json:"userID" validate:"required"`
	Owed   bool   `json:"owed"`
	Weight string `json:"weight,omitempty" validate:"omitempty,decimal"`
}

// SplitPreviewRequest defines the data needed to compute a split without recording it.
type SplitPreviewRequest struct {
	Amount       string               `json:"amount" validate:"required,decimal"`
	CurrencyCode string               `json:"currencyCode" validate:"required,len=3,uppercase"`
	PayerID      string               `json:"payerID" validate:"required"`
	Policy       string               `json:"policy,omitempty" validate:"omitempty,oneof=EQUAL PERCENTAGE EXACT"`
	Participants []ParticipantRequest `json:"participants" validate:"required,min=1,dive"`
}

// ExpenseRequest defines the data needed to create or edit an expense.
// An edit always recomputes the whole split.
type ExpenseRequest struct {
	SplitPreviewRequest
	Description string    `json:"description" validate:"max=255"`
	Category    string    `json:"category" validate:"max=64"`
	Date        time.Time `json:"date"` // Zero means now
}

// SplitUserResponse is one participant row of an expense.
type SplitUserResponse struct {
	UserID      string `json:"userID"`
	DisplayName string `json:"displayName"`
	Paid        bool   `json:"paid"`
	Owed        bool   `json:"owed"`
	Amount      string `json:"amount"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID    string              `json:"expenseID"`
	GroupID      string              `json:"groupID"`
	Description  string              `json:"description"`
	Amount       string              `json:"amount"`
	CurrencyCode string              `json:"currencyCode"`
	Date         time.Time           `json:"date"`
	Category     string              `json:"category"`
	Policy       string              `json:"policy"`
	BaseRate     *string             `json:"baseRate,omitempty"`
	SplitUsers   []SplitUserResponse `json:"splitUsers"`
	CreatedAt    time.Time           `json:"createdAt"`
	CreatedBy    string              `json:"createdBy"`
}

// ExpensePageResponse is one page of a group's expenses.
type ExpensePageResponse struct {
	Expenses  []ExpenseResponse `json:"expenses"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToExpensePageResponse converts a page of domain expenses.
func ToExpensePageResponse(expenses []domain.Expense, nextToken *string) ExpensePageResponse {
	res := ExpensePageResponse{
		Expenses:  make([]ExpenseResponse, len(expenses)),
		NextToken: nextToken,
	}
	for i := range expenses {
		res.Expenses[i] = ToExpenseResponse(&expenses[i])
	}
	return res
}

// ToSplitUserResponses formats split rows with the currency's precision.
func ToSplitUserResponses(splitUsers []domain.SplitUser, currency domain.Currency) []SplitUserResponse {
	res := make([]SplitUserResponse, len(splitUsers))
	for i, su := range splitUsers {
		res[i] = SplitUserResponse{
			UserID:      su.UserID,
			DisplayName: su.DisplayName,
			Paid:        su.Paid,
			Owed:        su.Owed,
			Amount:      utils.FormatWithCurrencyPrecision(su.Amount, currency),
		}
	}
	return res
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	var rate *string
	if e.BaseRate != nil {
		s := e.BaseRate.String()
		rate = &s
	}
	return ExpenseResponse{
		ExpenseID:    e.ExpenseID,
		GroupID:      e.GroupID,
		Description:  e.Description,
		Amount:       utils.FormatWithCurrencyPrecision(e.Amount, e.Currency),
		CurrencyCode: e.Currency.CurrencyCode,
		Date:         e.Date,
		Category:     e.Category,
		Policy:       string(e.Policy),
		BaseRate:     rate,
		SplitUsers:   ToSplitUserResponses(e.SplitUsers, e.Currency),
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
	}
}
