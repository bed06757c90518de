package cli

import (
	"sort"
	"strconv"
	"strings"

	"github.com/SscSPs/tab_buddy/internal/dto"
	"github.com/samber/lo"
)

// RenderDebtLines renders one colored sentence per debt line: orange when the
// viewer owes, green when the viewer is owed.
func RenderDebtLines(res dto.BalancesResponse) string {
	if len(res.Lines) == 0 {
		return "  " + RenderMuted("All settled up.") + "\n"
	}
	var b strings.Builder
	for _, l := range res.Lines {
		style := owedStyle
		if l.ViewerOwes {
			style = oweStyle
		}
		b.WriteString("  ")
		b.WriteString(style.Render(l.Text))
		b.WriteString("\n")
	}
	return b.String()
}

// SharesTable lists the computed share of every participant.
func SharesTable(currencyCode string, shares []dto.SplitUserResponse) Table {
	return Table{
		Title:   "Shares (" + currencyCode + ")",
		Headers: []string{"Participant", "Paid", "Owed", "Share"},
		Rows: lo.Map(shares, func(s dto.SplitUserResponse, _ int) []string {
			return []string{displayName(s.DisplayName, s.UserID), mark(s.Paid), mark(s.Owed), s.Amount}
		}),
	}
}

// TotalsTable lists the per-currency expense totals of a balances result.
func TotalsTable(res dto.BalancesResponse) Table {
	return Table{
		Title:   "Group totals",
		Headers: []string{"Currency", "Total"},
		Rows: lo.Map(res.Totals, func(t dto.TotalResponse, _ int) []string {
			return []string{t.CurrencyCode, t.Amount}
		}),
	}
}

// MembersTable lists every member's net position, one column per currency.
func MembersTable(res dto.GroupSummaryResponse) Table {
	codes := lo.Uniq(lo.FlatMap(res.Members, func(m dto.MemberSummaryResponse, _ int) []string {
		return lo.Keys(m.Net)
	}))
	sort.Strings(codes)

	rows := make([][]string, len(res.Members))
	for i, m := range res.Members {
		row := []string{displayName(m.DisplayName, m.UserID)}
		for _, code := range codes {
			row = append(row, lo.ValueOr(m.Net, code, "-"))
		}
		rows[i] = row
	}
	return Table{
		Title:   "Members of " + res.GroupID,
		Headers: append([]string{"Member"}, codes...),
		Rows:    rows,
	}
}

// CategoriesTable lists the category breakdown rows.
func CategoriesTable(rows []dto.CategoryTotalResponse) Table {
	return Table{
		Title:   "Categories",
		Headers: []string{"Category", "Currency", "Total", "Share", "Expenses"},
		Rows: lo.Map(rows, func(r dto.CategoryTotalResponse, _ int) []string {
			return []string{r.Category, r.CurrencyCode, r.Total, r.Percent + "%", strconv.Itoa(r.Count)}
		}),
	}
}

func displayName(name, id string) string {
	if name == "" {
		return id
	}
	return name
}

func mark(b bool) string {
	if b {
		return "x"
	}
	return ""
}
