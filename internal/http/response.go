package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"financas/internal/billing"
	"financas/internal/core"
	"financas/internal/log"
	"financas/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			slog.Error("Failed to encode response", log.FieldError, err)
		}
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors to HTTP status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidMonth),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidDay),
		errors.Is(err, core.ErrEmptyDescription),
		errors.Is(err, core.ErrMissingCard),
		errors.Is(err, core.ErrUnknownType):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Request failed",
			log.FieldError, err,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path)
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeBadRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

// moneyView renders an amount both machine- and human-readable.
type moneyView struct {
	Cents     int64  `json:"cents"`
	Formatted string `json:"formatted"`
}

func money(m core.Money) moneyView {
	return moneyView{Cents: m.Cents, Formatted: m.String()}
}

type expenseView struct {
	ID                string    `json:"id"`
	Description       string    `json:"description"`
	Amount            moneyView `json:"amount"`
	Date              string    `json:"date"`
	Type              string    `json:"type"`
	CardID            string    `json:"card_id,omitempty"`
	TotalInstallments int       `json:"total_installments,omitempty"`
	InstallmentValue  moneyView `json:"installment_value"`
	PersonName        string    `json:"person_name,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	IsPaid            bool      `json:"is_paid"`
	Recurring         bool      `json:"recurring"`
	Virtual           bool      `json:"virtual"`
}

func expenseToView(e core.Expense) expenseView {
	return expenseView{
		ID:                e.ID,
		Description:       e.Description,
		Amount:            money(e.Amount),
		Date:              string(e.Date),
		Type:              string(e.Type),
		CardID:            e.CardID,
		TotalInstallments: e.TotalInstallments,
		InstallmentValue:  money(e.InstallmentValue),
		PersonName:        e.PersonName,
		Notes:             e.Notes,
		IsPaid:            e.IsPaid,
		Recurring:         e.Recurring,
		Virtual:           billing.IsVirtualID(e.ID),
	}
}

type incomeView struct {
	ID            string    `json:"id"`
	Description   string    `json:"description"`
	Amount        moneyView `json:"amount"`
	Date          string    `json:"date"`
	Type          string    `json:"type"`
	Recurring     bool      `json:"recurring"`
	PersonName    string    `json:"person_name,omitempty"`
	InstallmentID string    `json:"installment_id,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	Virtual       bool      `json:"virtual"`
}

func incomeToView(i core.Income) incomeView {
	return incomeView{
		ID:            i.ID,
		Description:   i.Description,
		Amount:        money(i.Amount),
		Date:          string(i.Date),
		Type:          string(i.Type),
		Recurring:     i.Recurring,
		PersonName:    i.PersonName,
		InstallmentID: i.InstallmentID,
		Notes:         i.Notes,
		Virtual:       billing.IsVirtualID(i.ID),
	}
}

type cardView struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	BestPurchaseDay int    `json:"best_purchase_day"`
	DueDay          int    `json:"due_day"`
	Color           string `json:"color,omitempty"`
}

func cardToView(c core.CreditCard) cardView {
	return cardView{
		ID:              c.ID,
		Name:            c.Name,
		BestPurchaseDay: c.BestPurchaseDay,
		DueDay:          c.DueDay,
		Color:           c.Color,
	}
}

type installmentView struct {
	ID          string    `json:"id"`
	ExpenseID   string    `json:"expense_id"`
	CardID      string    `json:"card_id"`
	Number      int       `json:"number"`
	Total       int       `json:"total"`
	Amount      moneyView `json:"amount"`
	Competence  string    `json:"competence"`
	Due         string    `json:"due"`
	Description string    `json:"description"`
	PersonName  string    `json:"person_name,omitempty"`
	ThirdParty  bool      `json:"third_party"`
	Paid        bool      `json:"paid"`
}

func installmentToView(inst billing.Installment) installmentView {
	return installmentView{
		ID:          inst.ID,
		ExpenseID:   inst.ExpenseID,
		CardID:      inst.CardID,
		Number:      inst.Number,
		Total:       inst.Total,
		Amount:      money(inst.Amount),
		Competence:  string(inst.Competence),
		Due:         string(inst.Due),
		Description: inst.Description,
		PersonName:  inst.PersonName,
		ThirdParty:  inst.ThirdParty,
		Paid:        inst.Paid,
	}
}

func installmentsToView(insts []billing.Installment) []installmentView {
	views := make([]installmentView, 0, len(insts))
	for _, inst := range insts {
		views = append(views, installmentToView(inst))
	}
	return views
}

type statementView struct {
	CardID       string            `json:"card_id"`
	CardName     string            `json:"card_name"`
	DueMonth     string            `json:"due_month"`
	DueDate      string            `json:"due_date"`
	Total        moneyView         `json:"total"`
	Paid         bool              `json:"paid"`
	Installments []installmentView `json:"installments"`
}

func statementToView(st billing.Statement) statementView {
	return statementView{
		CardID:       st.CardID,
		CardName:     st.CardName,
		DueMonth:     string(st.DueMonth),
		DueDate:      string(st.DueDate),
		Total:        money(st.Total),
		Paid:         st.Paid,
		Installments: installmentsToView(st.Installments),
	}
}

type obligationView struct {
	Kind        string    `json:"kind"`
	ID          string    `json:"id,omitempty"`
	CardID      string    `json:"card_id,omitempty"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Amount      moneyView `json:"amount"`
	Paid        bool      `json:"paid"`
}

func obligationToView(ob billing.Obligation) obligationView {
	return obligationView{
		Kind:        ob.Kind,
		ID:          ob.ID,
		CardID:      ob.CardID,
		Date:        string(ob.Date),
		Description: ob.Description,
		Category:    ob.Category,
		Amount:      money(ob.Amount),
		Paid:        ob.Paid,
	}
}

type summaryView struct {
	Month           string            `json:"month"`
	IncomeTotal     moneyView         `json:"income_total"`
	ExpenseTotal    moneyView         `json:"expense_total"`
	Balance         moneyView         `json:"balance"`
	LimitConfigured bool              `json:"limit_configured"`
	LimitAmount     moneyView         `json:"limit_amount"`
	LimitedTotal    moneyView         `json:"limited_total"`
	UsagePercent    float64           `json:"usage_percent"`
	ThirdParty      thirdPartyView    `json:"third_party"`
	PendingReimb    []installmentView `json:"pending_reimbursements"`
}

type thirdPartyView struct {
	TotalPurchases moneyView `json:"total_purchases"`
	DueThisMonth   moneyView `json:"due_this_month"`
	DueFuture      moneyView `json:"due_future"`
}

func summaryToView(sum billing.MonthSummary) summaryView {
	return summaryView{
		Month:           string(sum.Month),
		IncomeTotal:     money(sum.IncomeTotal),
		ExpenseTotal:    money(sum.ExpenseTotal),
		Balance:         money(sum.Balance),
		LimitConfigured: sum.LimitConfigured,
		LimitAmount:     money(sum.LimitAmount),
		LimitedTotal:    money(sum.LimitedTotal),
		UsagePercent:    sum.UsagePercent,
		ThirdParty: thirdPartyView{
			TotalPurchases: money(sum.ThirdParty.TotalPurchases),
			DueThisMonth:   money(sum.ThirdParty.DueThisMonth),
			DueFuture:      money(sum.ThirdParty.DueFuture),
		},
		PendingReimb: installmentsToView(sum.PendingReimb),
	}
}

type projectedMonthView struct {
	Month        string        `json:"month"`
	Incomes      []incomeView  `json:"incomes"`
	Expenses     []expenseView `json:"expenses"`
	IncomeTotal  moneyView     `json:"income_total"`
	ExpenseTotal moneyView     `json:"expense_total"`
}

func projectedMonthToView(pm billing.ProjectedMonth) projectedMonthView {
	incomes := make([]incomeView, 0, len(pm.Incomes))
	for _, i := range pm.Incomes {
		incomes = append(incomes, incomeToView(i))
	}
	expenses := make([]expenseView, 0, len(pm.Expenses))
	for _, e := range pm.Expenses {
		expenses = append(expenses, expenseToView(e))
	}
	return projectedMonthView{
		Month:        string(pm.Month),
		Incomes:      incomes,
		Expenses:     expenses,
		IncomeTotal:  money(pm.IncomeTotal),
		ExpenseTotal: money(pm.ExpenseTotal),
	}
}
