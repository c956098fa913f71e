// Package billing is the billing-cycle and projection engine: a pure,
// deterministic computation over one immutable snapshot. It converts raw
// expenses, incomes and card configuration into installment schedules,
// monthly statements, summaries and recurring-series projections. Nothing
// here keeps state between calls or touches the store.
package billing

import (
	"fmt"

	"financas/internal/core"
)

// CycleDays carries the two day parameters that shape a card's billing
// cycle. BestPurchaseDay is the first day of a new cycle; the day before
// it is the closing day.
type CycleDays struct {
	BestPurchaseDay int
	DueDay          int
}

// DefaultCycleDays is the explicit fallback applied when a purchase
// references a deleted or unknown card. An orphaned purchase must still
// appear on a statement.
var DefaultCycleDays = CycleDays{BestPurchaseDay: 1, DueDay: 10}

// Installment is one derived slice of a card purchase. It is never
// persisted: the synthetic ID is recomputed deterministically from the
// originating expense on every call.
type Installment struct {
	ID          string
	ExpenseID   string
	CardID      string
	Number      int
	Total       int
	Amount      core.Money
	Competence  core.Month // billing cycle the slice belongs to
	Due         core.Month // always Competence + 1
	Description string
	PersonName  string
	ThirdParty  bool
	Paid        bool // settlement flag of the originating purchase
}

// Scheduler expands card purchases into installments. It resolves cycle
// days per card and applies the fallback policy for missing cards.
type Scheduler struct {
	cycles   map[string]CycleDays
	fallback CycleDays
}

func NewScheduler(cards []core.CreditCard) *Scheduler {
	return NewSchedulerWithFallback(cards, DefaultCycleDays)
}

// NewSchedulerWithFallback builds a scheduler with an explicit policy for
// purchases whose card cannot be resolved.
func NewSchedulerWithFallback(cards []core.CreditCard, fallback CycleDays) *Scheduler {
	cycles := make(map[string]CycleDays, len(cards))
	for _, c := range cards {
		cycles[c.ID] = CycleDays{BestPurchaseDay: c.BestPurchaseDay, DueDay: c.DueDay}
	}
	return &Scheduler{cycles: cycles, fallback: fallback}
}

// CycleFor returns the cycle days for a card id, falling back for
// unresolved cards.
func (s *Scheduler) CycleFor(cardID string) CycleDays {
	if cycle, ok := s.cycles[cardID]; ok {
		return cycle
	}
	return s.fallback
}

// FirstCompetence determines the billing cycle of the first installment
// from the purchase date and the card's cycle shape.
//
// With closing = bestPurchaseDay-1, two shapes exist:
//   - closing and due in the same calendar month (1 <= closing < due):
//     a purchase on or before closing joins the previous month's cycle,
//     a later one joins the current month's.
//   - cycle crossing the month boundary (everything else, including
//     bestPurchaseDay = 1): on or before closing stays in the current
//     month, after closing rolls into the next.
func FirstCompetence(purchaseDate core.Date, cycle CycleDays) core.Month {
	day := purchaseDate.Day()
	month := purchaseDate.Month()
	closing := cycle.BestPurchaseDay - 1

	if closing >= 1 && closing < cycle.DueDay {
		if day <= closing {
			return month.Add(-1)
		}
		return month
	}
	if day <= closing {
		return month
	}
	return month.Add(1)
}

// InstallmentID is the synthetic, reproducible id of one installment.
func InstallmentID(expenseID string, number int) string {
	return fmt.Sprintf("%s#%d", expenseID, number)
}

// ForExpense expands one card purchase into its installment sequence.
// Non-card expenses yield nothing. A missing or degenerate installment
// count is treated as 1, never as an error.
func (s *Scheduler) ForExpense(e core.Expense) []Installment {
	if e.Type != core.CardPurchase {
		return nil
	}

	cycle := s.CycleFor(e.CardID)
	first := FirstCompetence(e.Date, cycle)

	qty := e.TotalInstallments
	if qty <= 0 {
		qty = 1
	}
	value := e.InstallmentValue
	if value.IsZero() {
		value = e.Amount.DivideRound(qty)
	}

	installments := make([]Installment, 0, qty)
	for i := 0; i < qty; i++ {
		competence := first.Add(i)
		installments = append(installments, Installment{
			ID:          InstallmentID(e.ID, i+1),
			ExpenseID:   e.ID,
			CardID:      e.CardID,
			Number:      i + 1,
			Total:       qty,
			Amount:      value,
			Competence:  competence,
			Due:         competence.Add(1),
			Description: e.Description,
			PersonName:  e.PersonName,
			ThirdParty:  e.IsThirdParty(),
			Paid:        e.IsPaid,
		})
	}
	return installments
}

// All expands every card purchase in input order. Expansion of one
// expense never depends on another, so the result is stable regardless
// of processing order.
func (s *Scheduler) All(expenses []core.Expense) []Installment {
	var out []Installment
	for _, e := range expenses {
		out = append(out, s.ForExpense(e)...)
	}
	return out
}
