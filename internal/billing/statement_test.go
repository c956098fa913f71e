package billing

import (
	"testing"

	"financas/internal/core"
)

func testSnapshot() core.FinanceSnapshot {
	return core.FinanceSnapshot{
		Cards: []core.CreditCard{
			{ID: "nu", Name: "Nubank", BestPurchaseDay: 5, DueDay: 15},
			{ID: "xp", Name: "XP", BestPurchaseDay: 28, DueDay: 5},
		},
		Expenses: []core.Expense{
			// competence 2024-03, due 2024-04, 2 installments of 50.00
			{ID: "tv", Description: "tv sala", Amount: core.Money{Cents: 10000}, Date: "2024-03-10",
				Type: core.CardPurchase, CardID: "nu", TotalInstallments: 2, IsPaid: true},
			// competence 2024-03, due 2024-04, single 40.00, unpaid
			{ID: "ten", Description: "tenis", Amount: core.Money{Cents: 4000}, Date: "2024-03-20",
				Type: core.CardPurchase, CardID: "nu"},
			// day 28 > closing 27: competence 2024-05, due 2024-06
			{ID: "jar", Description: "jantar", Amount: core.Money{Cents: 8000}, Date: "2024-04-28",
				Type: core.CardPurchase, CardID: "xp"},
			// non-card bill in April
			{ID: "alu", Description: "aluguel", Amount: core.Money{Cents: 150000}, Date: "2024-04-05",
				Type: core.DirectPayment},
		},
	}
}

func TestStatementsGrouping(t *testing.T) {
	snap := testSnapshot()
	statements := Statements(snap)

	// nu: due 2024-04 (tv#1 + ten#1) and 2024-05 (tv#2); xp: due 2024-06.
	if len(statements) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(statements))
	}

	first := statements[0]
	if first.CardID != "nu" || first.DueMonth != "2024-04" {
		t.Fatalf("first statement = %s/%s, want nu/2024-04", first.CardID, first.DueMonth)
	}
	if first.Total.Cents != 9000 {
		t.Errorf("nu 2024-04 total = %d, want 9000", first.Total.Cents)
	}
	if first.Paid {
		t.Error("statement with one unpaid purchase must not be paid")
	}
	if first.DueDate != "2024-04-15" {
		t.Errorf("due date = %s, want 2024-04-15", first.DueDate)
	}

	second := statements[1]
	if second.CardID != "nu" || second.DueMonth != "2024-05" {
		t.Fatalf("second statement = %s/%s, want nu/2024-05", second.CardID, second.DueMonth)
	}
	if !second.Paid {
		t.Error("statement fed only by a paid purchase must be paid")
	}
}

func TestStatementsDeterministicOrder(t *testing.T) {
	snap := testSnapshot()
	a := Statements(snap)
	// Reverse expense order; grouping must not depend on it.
	rev := snap
	rev.Expenses = []core.Expense{snap.Expenses[3], snap.Expenses[2], snap.Expenses[1], snap.Expenses[0]}
	b := Statements(rev)
	if len(a) != len(b) {
		t.Fatalf("statement count differs with input order: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].CardID != b[i].CardID || a[i].DueMonth != b[i].DueMonth || a[i].Total != b[i].Total {
			t.Errorf("statement %d differs with input order", i)
		}
	}
}

func TestStatementsOrphanedCard(t *testing.T) {
	snap := core.FinanceSnapshot{
		Expenses: []core.Expense{
			{ID: "e1", Description: "compra orfã", Amount: core.Money{Cents: 3000}, Date: "2024-03-10",
				Type: core.CardPurchase, CardID: "deleted"},
		},
	}
	statements := Statements(snap)
	if len(statements) != 1 {
		t.Fatalf("orphaned purchase must still produce a statement")
	}
	// Fallback {best=1, due=10}: competence 2024-04, due 2024-05, day 10.
	if statements[0].DueMonth != "2024-05" || statements[0].DueDate != "2024-05-10" {
		t.Errorf("fallback statement due %s on %s", statements[0].DueMonth, statements[0].DueDate)
	}
}

func TestMonthObligations(t *testing.T) {
	snap := testSnapshot()
	obligations := MonthObligations(snap, "2024-04")

	// aluguel (2024-04-05) then fatura Nubank (2024-04-15).
	if len(obligations) != 2 {
		t.Fatalf("expected 2 obligations, got %d", len(obligations))
	}
	if obligations[0].Kind != ObligationBill || obligations[0].Description != "aluguel" {
		t.Errorf("first obligation = %+v, want the rent bill", obligations[0])
	}
	if obligations[1].Kind != ObligationStatement || obligations[1].Description != "Fatura Nubank" {
		t.Errorf("second obligation = %+v, want the Nubank statement", obligations[1])
	}
	if obligations[1].Amount.Cents != 9000 {
		t.Errorf("statement obligation amount = %d, want 9000", obligations[1].Amount.Cents)
	}
}
