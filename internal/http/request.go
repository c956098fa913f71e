package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"financas/internal/core"
)

const maxBodySize = 1 << 20 // 1 MiB

// decodeJSON decodes a request body into dst, rejecting unknown fields
// and oversized payloads.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// monthParam reads ?month=YYYY-MM, defaulting to the current month.
func monthParam(r *http.Request) (core.Month, error) {
	v := strings.TrimSpace(r.URL.Query().Get("month"))
	if v == "" {
		return core.MonthOf(time.Now()), nil
	}
	month := core.Month(v)
	if err := month.Validate(); err != nil {
		return "", err
	}
	return month, nil
}

type expenseRequest struct {
	Description       string `json:"description"`
	Amount            string `json:"amount"`
	Date              string `json:"date"`
	Type              string `json:"type"`
	CardID            string `json:"card_id"`
	TotalInstallments int    `json:"total_installments"`
	InstallmentValue  string `json:"installment_value"`
	PersonName        string `json:"person_name"`
	Notes             string `json:"notes"`
	IsPaid            bool   `json:"is_paid"`
	Recurring         bool   `json:"recurring"`
}

func (req expenseRequest) toDomain(id string) (core.Expense, error) {
	amount, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		return core.Expense{}, fmt.Errorf("amount: %w", err)
	}
	var installmentValue core.Money
	if strings.TrimSpace(req.InstallmentValue) != "" {
		cents, err := core.ParseDecimalToCents(req.InstallmentValue)
		if err != nil {
			return core.Expense{}, fmt.Errorf("installment_value: %w", err)
		}
		installmentValue = core.Money{Cents: cents}
	}

	e := core.Expense{
		ID:                id,
		Description:       strings.TrimSpace(req.Description),
		Amount:            core.Money{Cents: amount},
		Date:              core.Date(strings.TrimSpace(req.Date)),
		Type:              core.ExpenseType(req.Type),
		CardID:            strings.TrimSpace(req.CardID),
		TotalInstallments: req.TotalInstallments,
		InstallmentValue:  installmentValue,
		PersonName:        strings.TrimSpace(req.PersonName),
		Notes:             strings.TrimSpace(req.Notes),
		IsPaid:            req.IsPaid,
		Recurring:         req.Recurring,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	return e, nil
}

type incomeRequest struct {
	Description   string `json:"description"`
	Amount        string `json:"amount"`
	Date          string `json:"date"`
	Type          string `json:"type"`
	Recurring     bool   `json:"recurring"`
	PersonName    string `json:"person_name"`
	InstallmentID string `json:"installment_id"`
	Notes         string `json:"notes"`
}

func (req incomeRequest) toDomain(id string) (core.Income, error) {
	amount, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		return core.Income{}, fmt.Errorf("amount: %w", err)
	}

	i := core.Income{
		ID:            id,
		Description:   strings.TrimSpace(req.Description),
		Amount:        core.Money{Cents: amount},
		Date:          core.Date(strings.TrimSpace(req.Date)),
		Type:          core.IncomeType(req.Type),
		Recurring:     req.Recurring,
		PersonName:    strings.TrimSpace(req.PersonName),
		InstallmentID: strings.TrimSpace(req.InstallmentID),
		Notes:         strings.TrimSpace(req.Notes),
	}
	if err := i.Validate(); err != nil {
		return core.Income{}, err
	}
	return i, nil
}

type cardRequest struct {
	Name            string `json:"name"`
	BestPurchaseDay int    `json:"best_purchase_day"`
	DueDay          int    `json:"due_day"`
	Color           string `json:"color"`
}

func (req cardRequest) toDomain(id string) (core.CreditCard, error) {
	c := core.CreditCard{
		ID:              id,
		Name:            strings.TrimSpace(req.Name),
		BestPurchaseDay: req.BestPurchaseDay,
		DueDay:          req.DueDay,
		Color:           strings.TrimSpace(req.Color),
	}
	if err := c.Validate(); err != nil {
		return core.CreditCard{}, err
	}
	return c, nil
}

type configRequest struct {
	ClassificationRules []classificationRuleRequest `json:"classification_rules"`
	MonthlyLimits       []monthlyLimitRequest       `json:"monthly_limits"`
}

type classificationRuleRequest struct {
	Name            string   `json:"name"`
	Color           string   `json:"color"`
	Keywords        []string `json:"keywords"`
	IncludedInLimit bool     `json:"included_in_limit"`
}

type monthlyLimitRequest struct {
	Month  string `json:"month"`
	Amount string `json:"amount"`
}

func (req configRequest) toDomain() (core.FinanceConfig, error) {
	var cfg core.FinanceConfig

	for _, rule := range req.ClassificationRules {
		name := strings.TrimSpace(rule.Name)
		if name == "" {
			return cfg, fmt.Errorf("classification rule: %w", core.ErrEmptyDescription)
		}
		cfg.ClassificationRules = append(cfg.ClassificationRules, core.ClassificationRule{
			Name:            name,
			Color:           strings.TrimSpace(rule.Color),
			Keywords:        rule.Keywords,
			IncludedInLimit: rule.IncludedInLimit,
		})
	}

	for _, limit := range req.MonthlyLimits {
		month := core.Month(strings.TrimSpace(limit.Month))
		if err := month.Validate(); err != nil {
			return cfg, fmt.Errorf("monthly limit month %q: %w", limit.Month, err)
		}
		cents, err := core.ParseDecimalToCents(limit.Amount)
		if err != nil {
			return cfg, fmt.Errorf("monthly limit amount %q: %w", limit.Amount, err)
		}
		cfg.MonthlyLimits = append(cfg.MonthlyLimits, core.MonthlyLimit{
			Month:  month,
			Amount: core.Money{Cents: cents},
		})
	}

	return cfg, nil
}
