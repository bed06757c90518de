package report

import (
	"sort"
	"strings"

	"github.com/SscSPs/tab_buddy/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultCategory is used for expenses recorded without a category.
const DefaultCategory = "other"

var hundred = decimal.NewFromInt(100)

type categoryKey struct {
	currency string
	category string
}

// CategoryBreakdown sums expense totals per currency and category.
// Rows are ordered by currency code, then total descending, then category name.
// Percent is the row's share of its currency total, rounded to two places.
func CategoryBreakdown(expenses []domain.Expense) []domain.CategoryTotal {
	rows := make(map[categoryKey]*domain.CategoryTotal)
	currencyTotals := make(map[string]decimal.Decimal)

	for _, e := range expenses {
		category := strings.TrimSpace(e.Category)
		if category == "" {
			category = DefaultCategory
		}
		key := categoryKey{currency: e.Currency.CurrencyCode, category: category}
		row, ok := rows[key]
		if !ok {
			row = &domain.CategoryTotal{Currency: e.Currency, Category: category}
			rows[key] = row
		}
		row.Total = row.Total.Add(e.Amount)
		row.Count++
		currencyTotals[key.currency] = currencyTotals[key.currency].Add(e.Amount)
	}

	out := make([]domain.CategoryTotal, 0, len(rows))
	for _, row := range rows {
		if sum := currencyTotals[row.Currency.CurrencyCode]; sum.IsPositive() {
			row.Percent = row.Total.Mul(hundred).DivRound(sum, 2)
		}
		out = append(out, *row)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Currency.CurrencyCode != out[j].Currency.CurrencyCode {
			return out[i].Currency.CurrencyCode < out[j].Currency.CurrencyCode
		}
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}
