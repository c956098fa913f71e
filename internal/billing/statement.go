package billing

import (
	"fmt"
	"sort"

	"financas/internal/core"
)

// Statement is the aggregated total of all installments due from one card
// in one due month (the "fatura").
type Statement struct {
	CardID       string
	CardName     string
	DueMonth     core.Month
	DueDate      core.Date
	Total        core.Money
	Paid         bool // true only when every contributing purchase is settled
	Installments []Installment
}

// Obligation kinds in the unified monthly list.
const (
	ObligationBill      = "BILL"      // direct payment or financing, settled on its own date
	ObligationStatement = "STATEMENT" // card statement due in the month
)

// Obligation is one row of the unified monthly list merging non-card
// expenses and card statements.
type Obligation struct {
	Kind        string
	ID          string // expense id for bills, empty for statements
	CardID      string
	Date        core.Date
	Description string
	Category    string
	Amount      core.Money
	Paid        bool
}

// Statements groups every card installment by (card, due month) into
// statement totals, ordered by due month then card id so output is stable
// across calls.
func Statements(snap core.FinanceSnapshot) []Statement {
	sched := NewScheduler(snap.Cards)
	installments := sched.All(snap.Expenses)

	grouped := make(map[string]*Statement)
	var order []string
	for _, inst := range installments {
		key := fmt.Sprintf("%s|%s", inst.CardID, inst.Due)
		st, ok := grouped[key]
		if !ok {
			st = &Statement{
				CardID:   inst.CardID,
				DueMonth: inst.Due,
				Paid:     true,
			}
			if card, found := snap.CardByID(inst.CardID); found {
				st.CardName = card.Name
				st.DueDate = inst.Due.DateOn(card.DueDay)
			} else {
				st.DueDate = inst.Due.DateOn(DefaultCycleDays.DueDay)
			}
			grouped[key] = st
			order = append(order, key)
		}
		st.Total = st.Total.Add(inst.Amount)
		st.Installments = append(st.Installments, inst)
		if !inst.Paid {
			st.Paid = false
		}
	}

	out := make([]Statement, 0, len(order))
	for _, key := range order {
		out = append(out, *grouped[key])
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DueMonth != out[j].DueMonth {
			return out[i].DueMonth < out[j].DueMonth
		}
		return out[i].CardID < out[j].CardID
	})
	return out
}

// StatementsDue returns only the statements due in one month.
func StatementsDue(snap core.FinanceSnapshot, month core.Month) []Statement {
	var out []Statement
	for _, st := range Statements(snap) {
		if st.DueMonth == month {
			out = append(out, st)
		}
	}
	return out
}

// MonthObligations merges non-card expenses dated in the month with the
// card statements due in it, sorted by date.
func MonthObligations(snap core.FinanceSnapshot, month core.Month) []Obligation {
	var out []Obligation

	for _, e := range snap.Expenses {
		if e.Type == core.CardPurchase || e.Date.Month() != month {
			continue
		}
		category := "Pix/Débito"
		if e.Type == core.Financing {
			category = "Financiamento"
		}
		out = append(out, Obligation{
			Kind:        ObligationBill,
			ID:          e.ID,
			Date:        e.Date,
			Description: e.Description,
			Category:    category,
			Amount:      e.Amount,
			Paid:        e.IsPaid,
		})
	}

	for _, st := range StatementsDue(snap, month) {
		name := st.CardName
		if name == "" {
			name = "Cartão"
		}
		out = append(out, Obligation{
			Kind:        ObligationStatement,
			CardID:      st.CardID,
			Date:        st.DueDate,
			Description: "Fatura " + name,
			Category:    "Fatura Cartão",
			Amount:      st.Total,
			Paid:        st.Paid,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
