package sheets

import "financas/internal/core"

// ExpenseHeader is the first row of the expenses backup sheet.
var ExpenseHeader = []any{
	"ID", "Data", "Descrição", "Valor", "Tipo", "Cartão",
	"Parcelas", "Pessoa", "Pago", "Recorrente",
}

// IncomeHeader is the first row of the incomes backup sheet.
var IncomeHeader = []any{
	"ID", "Data", "Descrição", "Valor", "Tipo", "Pessoa",
	"Parcela Referente", "Recorrente",
}

// ExpenseRow encodes one expense as a spreadsheet row matching ExpenseHeader.
func ExpenseRow(e core.Expense) []any {
	return []any{
		e.ID,
		string(e.Date),
		e.Description,
		e.Amount.Reais(),
		string(e.Type),
		e.CardID,
		e.TotalInstallments,
		e.PersonName,
		boolCell(e.IsPaid),
		boolCell(e.Recurring),
	}
}

// IncomeRow encodes one income as a spreadsheet row matching IncomeHeader.
func IncomeRow(i core.Income) []any {
	return []any{
		i.ID,
		string(i.Date),
		i.Description,
		i.Amount.Reais(),
		string(i.Type),
		i.PersonName,
		i.InstallmentID,
		boolCell(i.Recurring),
	}
}

func boolCell(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}
