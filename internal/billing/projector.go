package billing

import (
	"sort"
	"strings"

	"financas/internal/core"
)

// VirtualPrefix marks projected, non-persisted entries. Virtual entries
// are display-only: confirming one means creating a real entry with the
// same values and recurring=true through the store, which then becomes
// the new head of its series.
const VirtualPrefix = "VIRTUAL-"

// VirtualID builds the reproducible id of a projected entry. The same
// (description, month) pair always yields the same id, and the prefix
// keeps it from colliding with real ids.
func VirtualID(month core.Month, description string) string {
	return VirtualPrefix + string(month) + "-" + strings.Join(strings.Fields(description), "")
}

// IsVirtualID reports whether an id denotes a projected entry.
func IsVirtualID(id string) bool {
	return strings.HasPrefix(id, VirtualPrefix)
}

// ProjectIncomes synthesizes virtual income entries for one queried month:
// one per recurring series whose head predates the month and that has no
// real entry with the same description inside it. A head with
// recurring=false closes its series, so nothing is projected even when
// earlier entries were recurring.
func ProjectIncomes(incomes []core.Income, month core.Month) []core.Income {
	byDesc := make(map[string]core.Income)
	var order []string
	sorted := append([]core.Income(nil), incomes...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })
	for _, inc := range sorted {
		if _, seen := byDesc[inc.Description]; !seen {
			order = append(order, inc.Description)
		}
		byDesc[inc.Description] = inc
	}

	realInMonth := make(map[string]bool)
	for _, inc := range incomes {
		if inc.Date.Month() == month {
			realInMonth[inc.Description] = true
		}
	}

	var virtuals []core.Income
	for _, desc := range order {
		head := byDesc[desc]
		if !head.Recurring {
			continue
		}
		if month <= head.Date.Month() {
			continue
		}
		if realInMonth[desc] {
			continue
		}
		v := head
		v.ID = VirtualID(month, desc)
		v.Date = month.DateOn(head.Date.Day())
		virtuals = append(virtuals, v)
	}
	return virtuals
}

// ProjectExpenses does the same for recurring non-card expenses. Card
// purchases never project: their future months come from the installment
// scheduler instead.
func ProjectExpenses(expenses []core.Expense, month core.Month) []core.Expense {
	byDesc := make(map[string]core.Expense)
	var order []string
	sorted := make([]core.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.Type != core.CardPurchase {
			sorted = append(sorted, e)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })
	for _, e := range sorted {
		if _, seen := byDesc[e.Description]; !seen {
			order = append(order, e.Description)
		}
		byDesc[e.Description] = e
	}

	realInMonth := make(map[string]bool)
	for _, e := range sorted {
		if e.Date.Month() == month {
			realInMonth[e.Description] = true
		}
	}

	var virtuals []core.Expense
	for _, desc := range order {
		head := byDesc[desc]
		if !head.Recurring {
			continue
		}
		if month <= head.Date.Month() {
			continue
		}
		if realInMonth[desc] {
			continue
		}
		v := head
		v.ID = VirtualID(month, desc)
		v.Date = month.DateOn(head.Date.Day())
		v.IsPaid = false
		virtuals = append(virtuals, v)
	}
	return virtuals
}

// ProjectedMonth is one row of the forward projection table.
type ProjectedMonth struct {
	Month        core.Month
	Incomes      []core.Income  // real entries plus virtual projections
	Expenses     []core.Expense // real non-card entries plus virtual projections
	IncomeTotal  core.Money
	ExpenseTotal core.Money
}

// ProjectionHorizon is how many months forward the projection table runs.
const ProjectionHorizon = 12

// Projection builds the recurring-series table from the month after
// `from` over the full horizon. Real entries already in a month appear
// as-is; missing occurrences of active series appear as virtual entries.
func Projection(snap core.FinanceSnapshot, from core.Month) []ProjectedMonth {
	out := make([]ProjectedMonth, 0, ProjectionHorizon)
	for i := 1; i <= ProjectionHorizon; i++ {
		month := from.Add(i)
		row := ProjectedMonth{Month: month}

		for _, inc := range snap.Incomes {
			if inc.Date.Month() == month {
				row.Incomes = append(row.Incomes, inc)
			}
		}
		row.Incomes = append(row.Incomes, ProjectIncomes(snap.Incomes, month)...)
		for _, inc := range row.Incomes {
			row.IncomeTotal = row.IncomeTotal.Add(inc.Amount)
		}

		for _, e := range snap.Expenses {
			if e.Type != core.CardPurchase && e.Date.Month() == month {
				row.Expenses = append(row.Expenses, e)
			}
		}
		row.Expenses = append(row.Expenses, ProjectExpenses(snap.Expenses, month)...)
		for _, e := range row.Expenses {
			row.ExpenseTotal = row.ExpenseTotal.Add(e.Amount)
		}

		out = append(out, row)
	}
	return out
}
