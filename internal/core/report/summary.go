package report

import (
	"github.com/SscSPs/tab_buddy/internal/core/domain"
	"github.com/SscSPs/tab_buddy/internal/core/ledger"
)

// Summarize turns one member's balances into their net position per currency.
func Summarize(member domain.User, b *domain.Balances) domain.MemberSummary {
	return domain.MemberSummary{User: member, Net: b.Net()}
}

// MemberSummaries folds the expenses once per member, in member order. Every
// fold skips the same malformed expenses, so the warnings of the first are returned.
func MemberSummaries(members []domain.User, expenses []domain.Expense) ([]domain.MemberSummary, []error) {
	summaries := make([]domain.MemberSummary, len(members))
	var warnings []error
	for i, m := range members {
		b := ledger.Compute(m, expenses)
		summaries[i] = Summarize(m, b)
		if i == 0 {
			warnings = b.Warnings
		}
	}
	return summaries, warnings
}
