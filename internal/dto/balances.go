package dto

import (
	"sort"

	"github.com/SscSPs/tab_buddy/internal/core/domain"
	"github.com/SscSPs/tab_buddy/internal/core/report"
	"github.com/SscSPs/tab_buddy/internal/utils"
)

// DebtLineResponse is one rendered, non-zero balance between the viewer and a counterparty.
type DebtLineResponse struct {
	CurrencyCode string `json:"currencyCode"`
	UserID       string `json:"userID"`
	DisplayName  string `json:"displayName"`
	Amount       string `json:"amount"` // Signed; negative means the viewer owes
	ViewerOwes   bool   `json:"viewerOwes"`
	Text         string `json:"text"`
}

// TotalResponse is the total spend in one currency.
type TotalResponse struct {
	CurrencyCode string `json:"currencyCode"`
	Amount       string `json:"amount"`
}

// BalancesResponse defines the data returned for a viewer's balances.
type BalancesResponse struct {
	ViewerID string             `json:"viewerID"`
	Lines    []DebtLineResponse `json:"lines"`
	Totals   []TotalResponse    `json:"totals"`
	Warnings []string           `json:"warnings,omitempty"`
}

// ToBalancesResponse converts domain.Balances to BalancesResponse DTO
func ToBalancesResponse(b *domain.Balances) BalancesResponse {
	lines := b.Lines()
	res := BalancesResponse{
		ViewerID: b.ViewerID,
		Lines:    make([]DebtLineResponse, len(lines)),
		Totals:   make([]TotalResponse, 0, len(b.Totals)),
	}
	for i, l := range lines {
		res.Lines[i] = DebtLineResponse{
			CurrencyCode: l.Currency.CurrencyCode,
			UserID:       l.Counterparty.UserID,
			DisplayName:  l.Counterparty.DisplayName,
			Amount:       utils.FormatWithCurrencyPrecision(l.Amount, l.Currency),
			ViewerOwes:   l.ViewerOwes(),
			Text:         report.Describe(l),
		}
	}
	for code, total := range b.Totals {
		res.Totals = append(res.Totals, TotalResponse{
			CurrencyCode: code,
			Amount:       utils.FormatWithCurrencyPrecision(total, b.Currencies[code]),
		})
	}
	sort.Slice(res.Totals, func(i, j int) bool { return res.Totals[i].CurrencyCode < res.Totals[j].CurrencyCode })
	for _, w := range b.Warnings {
		res.Warnings = append(res.Warnings, w.Error())
	}
	return res
}

// MemberSummaryResponse is one member's net position per currency.
type MemberSummaryResponse struct {
	UserID      string            `json:"userID"`
	DisplayName string            `json:"displayName"`
	Net         map[string]string `json:"net"` // Positive means the member is owed
}

// GroupSummaryResponse defines the data returned for a group's member summaries.
type GroupSummaryResponse struct {
	GroupID  string                  `json:"groupID"`
	Members  []MemberSummaryResponse `json:"members"`
	Warnings []string                `json:"warnings,omitempty"`
}

// ToGroupSummaryResponse formats member summaries with each currency's precision.
func ToGroupSummaryResponse(summary *domain.GroupSummary) GroupSummaryResponse {
	res := GroupSummaryResponse{
		GroupID: summary.GroupID,
		Members: make([]MemberSummaryResponse, len(summary.Members)),
	}
	for i, s := range summary.Members {
		net := make(map[string]string, len(s.Net))
		for code, amount := range s.Net {
			net[code] = utils.FormatWithCurrencyPrecision(amount, summary.Currencies[code])
		}
		res.Members[i] = MemberSummaryResponse{UserID: s.User.UserID, DisplayName: s.User.DisplayName, Net: net}
	}
	for _, w := range summary.Warnings {
		res.Warnings = append(res.Warnings, w.Error())
	}
	return res
}

// CategoryTotalResponse is one row of a category breakdown.
type CategoryTotalResponse struct {
	CurrencyCode string `json:"currencyCode"`
	Category     string `json:"category"`
	Total        string `json:"total"`
	Percent      string `json:"percent"`
	Count        int    `json:"count"`
}

// ToCategoryTotalResponses formats category rows with each currency's precision.
func ToCategoryTotalResponses(rows []domain.CategoryTotal) []CategoryTotalResponse {
	res := make([]CategoryTotalResponse, len(rows))
	for i, r := range rows {
		res[i] = CategoryTotalResponse{
			CurrencyCode: r.Currency.CurrencyCode,
			Category:     r.Category,
			Total:        utils.FormatWithCurrencyPrecision(r.Total, r.Currency),
			Percent:      utils.FormatWithPrecision(r.Percent, 2),
			Count:        r.Count,
		}
	}
	return res
}
