package billing

import (
	"financas/internal/core"
)

// ThirdPartySplit tracks purchases made on behalf of someone else, both at
// the original-purchase level and at the per-month installment-due level.
type ThirdPartySplit struct {
	TotalPurchases core.Money // sum of original third-party purchase amounts
	DueThisMonth   core.Money // third-party installments due in the month
	DueFuture      core.Money // third-party installments due after it
}

// MonthSummary is the dashboard view of one month.
type MonthSummary struct {
	Month           core.Month
	IncomeTotal     core.Money
	ExpenseTotal    core.Money // statements due in the month + non-card expenses dated in it
	Balance         core.Money
	LimitConfigured bool
	LimitAmount     core.Money
	LimitedTotal    core.Money // portion of ExpenseTotal whose classification counts toward the ceiling
	UsagePercent    float64    // 0 when no limit is configured for the month
	ThirdParty      ThirdPartySplit
	PendingReimb    []Installment
}

// Summarize computes the full monthly view from one snapshot. Pure and
// idempotent: the same snapshot and month always produce the same summary.
func Summarize(snap core.FinanceSnapshot, month core.Month) MonthSummary {
	s := MonthSummary{Month: month}
	rules := snap.Config.ClassificationRules

	for _, inc := range snap.Incomes {
		if inc.Date.Month() == month {
			s.IncomeTotal = s.IncomeTotal.Add(inc.Amount)
		}
	}

	sched := NewScheduler(snap.Cards)
	installments := sched.All(snap.Expenses)
	for _, inst := range installments {
		if inst.Due == month {
			s.ExpenseTotal = s.ExpenseTotal.Add(inst.Amount)
			if core.IncludedInLimit(inst.Description, rules) {
				s.LimitedTotal = s.LimitedTotal.Add(inst.Amount)
			}
		}
		if inst.ThirdParty {
			switch {
			case inst.Due == month:
				s.ThirdParty.DueThisMonth = s.ThirdParty.DueThisMonth.Add(inst.Amount)
			case inst.Due > month:
				s.ThirdParty.DueFuture = s.ThirdParty.DueFuture.Add(inst.Amount)
			}
		}
	}

	for _, e := range snap.Expenses {
		if e.Type != core.CardPurchase && e.Date.Month() == month {
			s.ExpenseTotal = s.ExpenseTotal.Add(e.Amount)
			if core.IncludedInLimit(e.Description, rules) {
				s.LimitedTotal = s.LimitedTotal.Add(e.Amount)
			}
		}
		if e.Type == core.CardPurchase && e.IsThirdParty() {
			s.ThirdParty.TotalPurchases = s.ThirdParty.TotalPurchases.Add(e.Amount)
		}
	}

	s.Balance = core.Money{Cents: s.IncomeTotal.Cents - s.ExpenseTotal.Cents}

	if limit, ok := snap.Config.LimitFor(month); ok {
		s.LimitConfigured = true
		s.LimitAmount = limit
		if limit.Cents > 0 {
			s.UsagePercent = float64(s.LimitedTotal.Cents) / float64(limit.Cents) * 100
		}
	}

	s.PendingReimb = PendingReimbursements(snap, month)
	return s
}

// AvailableMonths is the union of the current month, every expense's
// transaction month and every installment due month, extended twelve
// months forward when any recurring item exists. Ascending order.
func AvailableMonths(snap core.FinanceSnapshot, today core.Month) []core.Month {
	min, max := today, today

	for _, e := range snap.Expenses {
		if m := e.Date.Month(); m != "" {
			if m < min {
				min = m
			}
			if m > max {
				max = m
			}
		}
	}

	sched := NewScheduler(snap.Cards)
	for _, inst := range sched.All(snap.Expenses) {
		if inst.Due < min {
			min = inst.Due
		}
		if inst.Due > max {
			max = inst.Due
		}
	}

	if hasRecurring(snap) {
		if future := today.Add(12); future > max {
			max = future
		}
	}

	return core.MonthRange(min, max)
}

func hasRecurring(snap core.FinanceSnapshot) bool {
	for _, e := range snap.Expenses {
		if e.Recurring {
			return true
		}
	}
	for _, i := range snap.Incomes {
		if i.Recurring {
			return true
		}
	}
	return false
}

// PendingReimbursements returns the third-party installments due in the
// month (every month when month is empty) that no reimbursement income
// references. An installment referenced by any number of reimbursements,
// even an invalid duplicate pair, is never reported as pending.
func PendingReimbursements(snap core.FinanceSnapshot, month core.Month) []Installment {
	reimbursed := make(map[string]bool)
	for _, inc := range snap.Incomes {
		if inc.Type == core.Reimbursement && inc.InstallmentID != "" {
			reimbursed[inc.InstallmentID] = true
		}
	}

	sched := NewScheduler(snap.Cards)
	var out []Installment
	for _, inst := range sched.All(snap.Expenses) {
		if !inst.ThirdParty {
			continue
		}
		if month != "" && inst.Due != month {
			continue
		}
		if reimbursed[inst.ID] {
			continue
		}
		out = append(out, inst)
	}
	return out
}
