package core

import (
	"errors"
	"strings"
)

// Expense types. CardPurchase requires a CardID and is billed through the
// installment scheduler; the other two are settled on their own date.
const (
	CardPurchase  ExpenseType = "CARD_PURCHASE"
	DirectPayment ExpenseType = "DIRECT_PAYMENT"
	Financing     ExpenseType = "FINANCING"
)

// Income types. Reimbursement incomes may reference a specific installment
// of a third-party card purchase.
const (
	Salary        IncomeType = "SALARY"
	RecurringPay  IncomeType = "RECURRING"
	OneOff        IncomeType = "ONE_OFF"
	Reimbursement IncomeType = "REIMBURSEMENT"
)

type (
	ExpenseType string
	IncomeType  string

	Money struct {
		Cents int64
	}

	Expense struct {
		ID                string
		Description       string
		Amount            Money
		Date              Date
		Type              ExpenseType
		CardID            string
		TotalInstallments int
		InstallmentValue  Money // zero means "split Amount evenly"
		PersonName        string
		Notes             string
		IsPaid            bool
		Recurring         bool
	}

	Income struct {
		ID            string
		Description   string
		Amount        Money
		Date          Date
		Type          IncomeType
		Recurring     bool
		PersonName    string
		InstallmentID string // reimbursed installment, at most one income per installment
		Notes         string
	}

	CreditCard struct {
		ID              string
		Name            string
		BestPurchaseDay int // first day of a new billing cycle (1-31)
		DueDay          int // statement due date (1-31)
		Color           string
	}

	ClassificationRule struct {
		Name            string
		Color           string
		Keywords        []string
		IncludedInLimit bool
	}

	MonthlyLimit struct {
		Month  Month
		Amount Money
	}

	FinanceConfig struct {
		MonthlyLimits       []MonthlyLimit
		ClassificationRules []ClassificationRule
	}

	// FinanceSnapshot is the immutable input of every engine computation.
	// The engine never mutates it; all writes go through the store ports
	// followed by a fresh snapshot fetch.
	FinanceSnapshot struct {
		Expenses []Expense
		Incomes  []Income
		Cards    []CreditCard
		Config   FinanceConfig
	}
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidDay       = errors.New("invalid day of month")
	ErrEmptyDescription = errors.New("empty description")
	ErrMissingCard      = errors.New("card purchase without card id")
	ErrUnknownType      = errors.New("unknown type")
)

// IsThirdParty reports whether the purchase was made on behalf of someone
// else and is therefore tracked for reimbursement.
func (e Expense) IsThirdParty() bool {
	return strings.TrimSpace(e.PersonName) != ""
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	switch e.Type {
	case CardPurchase, DirectPayment, Financing:
	default:
		return ErrUnknownType
	}
	if e.Type == CardPurchase && strings.TrimSpace(e.CardID) == "" {
		return ErrMissingCard
	}
	if e.TotalInstallments < 0 {
		return errors.New("negative installment count")
	}
	return nil
}

func (i Income) Validate() error {
	if err := i.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(i.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(i.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := i.Amount.Validate(); err != nil {
		return err
	}
	switch i.Type {
	case Salary, RecurringPay, OneOff, Reimbursement:
	default:
		return ErrUnknownType
	}
	return nil
}

func (c CreditCard) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyDescription
	}
	if c.BestPurchaseDay < 1 || c.BestPurchaseDay > 31 {
		return ErrInvalidDay
	}
	if c.DueDay < 1 || c.DueDay > 31 {
		return ErrInvalidDay
	}
	return nil
}

func (r ClassificationRule) Validate() error {
	if len(strings.TrimSpace(r.Name)) == 0 {
		return ErrEmptyDescription
	}
	if len(r.Keywords) == 0 {
		return errors.New("rule without keywords")
	}
	return nil
}

func (l MonthlyLimit) Validate() error {
	if err := l.Month.Validate(); err != nil {
		return err
	}
	return l.Amount.Validate()
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// IsZero reports whether the amount is unset (used for optional fields
// like Expense.InstallmentValue).
func (m Money) IsZero() bool {
	return m.Cents == 0
}

// LimitFor returns the configured ceiling for a month, if any.
func (c FinanceConfig) LimitFor(m Month) (Money, bool) {
	for _, l := range c.MonthlyLimits {
		if l.Month == m {
			return l.Amount, true
		}
	}
	return Money{}, false
}

// CardByID resolves a card from the snapshot. The second return value is
// false for deleted or never-existing cards; callers fall back to the
// default billing cycle so orphaned purchases still appear on a statement.
func (s FinanceSnapshot) CardByID(id string) (CreditCard, bool) {
	for _, c := range s.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return CreditCard{}, false
}
