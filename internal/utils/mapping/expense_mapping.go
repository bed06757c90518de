package mapping

import (
	"github.com/SscSPs/tab_buddy/internal/core/domain"
	"github.com/SscSPs/tab_buddy/internal/models"
)

// ToModelExpense converts a domain Expense to a model Expense
func ToModelExpense(d domain.Expense) models.Expense {
	splitUsers := make([]models.SplitUser, len(d.SplitUsers))
	for i, su := range d.SplitUsers {
		splitUsers[i] = models.SplitUser{
			UserID: su.UserID,
			Paid:   su.Paid,
			Owed:   su.Owed,
			Amount: su.Amount,
		}
	}
	return models.Expense{
		ExpenseID:    d.ExpenseID,
		GroupID:      d.GroupID,
		Description:  d.Description,
		Amount:       d.Amount,
		CurrencyCode: d.Currency.CurrencyCode,
		Date:         d.Date,
		Category:     d.Category,
		Policy:       string(d.Policy),
		BaseRate:     d.BaseRate,
		SplitUsers:   splitUsers,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExpense converts a model Expense to a domain Expense.
// The currency is resolved by the caller; participants are resolved from users.
func ToDomainExpense(m models.Expense, currency domain.Currency, users map[string]models.User) domain.Expense {
	splitUsers := make([]domain.SplitUser, len(m.SplitUsers))
	for i, su := range m.SplitUsers {
		splitUsers[i] = domain.SplitUser{
			User:   ResolveUser(users, su.UserID),
			Paid:   su.Paid,
			Owed:   su.Owed,
			Amount: su.Amount,
		}
	}
	return domain.Expense{
		ExpenseID:   m.ExpenseID,
		GroupID:     m.GroupID,
		Description: m.Description,
		Amount:      m.Amount,
		Currency:    currency,
		Date:        m.Date,
		Category:    m.Category,
		Policy:      domain.SplitPolicy(m.Policy),
		BaseRate:    m.BaseRate,
		SplitUsers:  splitUsers,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
