package sheets

import (
	"testing"

	"financas/internal/core"
)

func TestExpenseRowMatchesHeader(t *testing.T) {
	e := core.Expense{
		ID:                "exp-1",
		Description:       "Mercado",
		Amount:            core.Money{Cents: 12345},
		Date:              core.Date("2024-03-10"),
		Type:              core.CardPurchase,
		CardID:            "card-1",
		TotalInstallments: 3,
		PersonName:        "Ana",
		IsPaid:            true,
	}

	row := ExpenseRow(e)
	if len(row) != len(ExpenseHeader) {
		t.Fatalf("row has %d cells, header has %d", len(row), len(ExpenseHeader))
	}
	if row[0] != "exp-1" {
		t.Errorf("id cell = %v", row[0])
	}
	if row[3] != 123.45 {
		t.Errorf("amount cell = %v, want 123.45", row[3])
	}
	if row[8] != "Sim" {
		t.Errorf("paid cell = %v, want Sim", row[8])
	}
	if row[9] != "Não" {
		t.Errorf("recurring cell = %v, want Não", row[9])
	}
}

func TestIncomeRowMatchesHeader(t *testing.T) {
	i := core.Income{
		ID:            "inc-1",
		Description:   "Reembolso Ana",
		Amount:        core.Money{Cents: 5000},
		Date:          core.Date("2024-03-15"),
		Type:          core.Reimbursement,
		PersonName:    "Ana",
		InstallmentID: "exp-1#2",
	}

	row := IncomeRow(i)
	if len(row) != len(IncomeHeader) {
		t.Fatalf("row has %d cells, header has %d", len(row), len(IncomeHeader))
	}
	if row[6] != "exp-1#2" {
		t.Errorf("installment cell = %v, want exp-1#2", row[6])
	}
	if row[3] != 50.0 {
		t.Errorf("amount cell = %v, want 50", row[3])
	}
}
