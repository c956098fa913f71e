package billing

import (
	"testing"

	"financas/internal/core"
)

func summarySnapshot() core.FinanceSnapshot {
	return core.FinanceSnapshot{
		Cards: []core.CreditCard{
			{ID: "nu", Name: "Nubank", BestPurchaseDay: 5, DueDay: 15},
		},
		Expenses: []core.Expense{
			// due 2024-04, 90.00 total on the nu statement
			{ID: "tv", Description: "tv mercado livre", Amount: core.Money{Cents: 10000}, Date: "2024-03-10",
				Type: core.CardPurchase, CardID: "nu", TotalInstallments: 2},
			{ID: "ten", Description: "tenis", Amount: core.Money{Cents: 4000}, Date: "2024-03-20",
				Type: core.CardPurchase, CardID: "nu"},
			// third-party purchase, 60.00 in 2x, due 2024-04 and 2024-05
			{ID: "pre", Description: "presente", Amount: core.Money{Cents: 6000}, Date: "2024-03-10",
				Type: core.CardPurchase, CardID: "nu", TotalInstallments: 2, PersonName: "Maria"},
			// direct bill inside April, limit-included by rule
			{ID: "mer", Description: "compras mercado", Amount: core.Money{Cents: 20000}, Date: "2024-04-08",
				Type: core.DirectPayment},
		},
		Incomes: []core.Income{
			{ID: "sal", Description: "Salário", Amount: core.Money{Cents: 500000}, Date: "2024-04-05", Type: core.Salary},
			{ID: "re1", Description: "Reembolso Maria", Amount: core.Money{Cents: 3000}, Date: "2024-04-16",
				Type: core.Reimbursement, PersonName: "Maria", InstallmentID: "pre#1"},
		},
		Config: core.FinanceConfig{
			MonthlyLimits: []core.MonthlyLimit{{Month: "2024-04", Amount: core.Money{Cents: 50000}}},
			ClassificationRules: []core.ClassificationRule{
				{Name: "Mercado", Keywords: []string{"mercado"}, IncludedInLimit: true},
			},
		},
	}
}

func TestSummarize(t *testing.T) {
	snap := summarySnapshot()
	s := Summarize(snap, "2024-04")

	if s.IncomeTotal.Cents != 503000 {
		t.Errorf("income total = %d, want 503000", s.IncomeTotal.Cents)
	}
	// Statement due 2024-04: tv#1 5000 + ten#1 4000 + pre#1 3000 = 12000,
	// plus the 20000 direct bill.
	if s.ExpenseTotal.Cents != 32000 {
		t.Errorf("expense total = %d, want 32000", s.ExpenseTotal.Cents)
	}
	if s.Balance.Cents != 471000 {
		t.Errorf("balance = %d, want 471000", s.Balance.Cents)
	}

	// Limit: tv installment (5000, "mercado livre") + direct bill (20000).
	if s.LimitedTotal.Cents != 25000 {
		t.Errorf("limited total = %d, want 25000", s.LimitedTotal.Cents)
	}
	if !s.LimitConfigured || s.UsagePercent != 50.0 {
		t.Errorf("usage = %v (configured=%v), want 50%%", s.UsagePercent, s.LimitConfigured)
	}

	if s.ThirdParty.TotalPurchases.Cents != 6000 {
		t.Errorf("third-party purchases = %d, want 6000", s.ThirdParty.TotalPurchases.Cents)
	}
	if s.ThirdParty.DueThisMonth.Cents != 3000 {
		t.Errorf("third-party due this month = %d, want 3000", s.ThirdParty.DueThisMonth.Cents)
	}
	if s.ThirdParty.DueFuture.Cents != 3000 {
		t.Errorf("third-party due future = %d, want 3000", s.ThirdParty.DueFuture.Cents)
	}

	// pre#1 is reimbursed; nothing else is due in April.
	if len(s.PendingReimb) != 0 {
		t.Errorf("pending reimbursements = %v, want none", s.PendingReimb)
	}
}

func TestSummarizeNoLimit(t *testing.T) {
	snap := summarySnapshot()
	s := Summarize(snap, "2024-05")
	if s.LimitConfigured || s.UsagePercent != 0 {
		t.Errorf("month without limit must report zero usage, got %v", s.UsagePercent)
	}
}

func TestPendingReimbursements(t *testing.T) {
	snap := summarySnapshot()

	// pre#2 due 2024-05 has no reimbursement yet.
	pending := PendingReimbursements(snap, "2024-05")
	if len(pending) != 1 || pending[0].ID != "pre#2" {
		t.Fatalf("pending for 2024-05 = %v, want [pre#2]", pending)
	}

	// All months: still only pre#2.
	all := PendingReimbursements(snap, "")
	if len(all) != 1 || all[0].ID != "pre#2" {
		t.Fatalf("pending overall = %v, want [pre#2]", all)
	}
}

func TestPendingReimbursementsDoubleReference(t *testing.T) {
	snap := summarySnapshot()
	// Invalid state: two incomes referencing the same installment. Must
	// not crash and must not resurface the installment as pending.
	snap.Incomes = append(snap.Incomes, core.Income{
		ID: "re2", Description: "Reembolso duplicado", Amount: core.Money{Cents: 3000},
		Date: "2024-04-20", Type: core.Reimbursement, InstallmentID: "pre#1",
	})
	pending := PendingReimbursements(snap, "2024-04")
	if len(pending) != 0 {
		t.Fatalf("doubly-referenced installment reported pending: %v", pending)
	}
}

func TestAvailableMonths(t *testing.T) {
	snap := summarySnapshot()
	months := AvailableMonths(snap, "2024-04")

	// Expense months start 2024-03; installment dues reach 2024-05.
	if months[0] != "2024-03" {
		t.Errorf("first month = %s, want 2024-03", months[0])
	}
	if last := months[len(months)-1]; last != "2024-05" {
		t.Errorf("last month = %s, want 2024-05", last)
	}

	// A recurring income extends the horizon 12 months out.
	snap.Incomes[0].Recurring = true
	months = AvailableMonths(snap, "2024-04")
	if last := months[len(months)-1]; last != "2025-04" {
		t.Errorf("last month with recurring = %s, want 2025-04", last)
	}
}
