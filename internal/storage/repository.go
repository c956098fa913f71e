// Package storage is the SQLite store backend.
package storage

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"financas/internal/core"
	"financas/internal/store"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// newID generates a random 16-hex-char entity id.
func newID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "id-fallback"
	}
	return hex.EncodeToString(b)
}

// Snapshot assembles the full finance aggregate in one pass. Rows come
// back date-ordered so downstream output is stable.
func (r *SQLiteRepository) Snapshot(ctx context.Context) (core.FinanceSnapshot, error) {
	var snap core.FinanceSnapshot

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, description, amount_cents, date, type, card_id,
		       total_installments, installment_value_cents, person_name,
		       notes, is_paid, recurring
		FROM expenses ORDER BY date, id`)
	if err != nil {
		return snap, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e core.Expense
		var paid, recurring int
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount.Cents, &e.Date, &e.Type,
			&e.CardID, &e.TotalInstallments, &e.InstallmentValue.Cents,
			&e.PersonName, &e.Notes, &paid, &recurring); err != nil {
			return snap, fmt.Errorf("scan expense: %w", err)
		}
		e.IsPaid = paid != 0
		e.Recurring = recurring != 0
		snap.Expenses = append(snap.Expenses, e)
	}
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("iterate expenses: %w", err)
	}

	incRows, err := r.db.QueryContext(ctx, `
		SELECT id, description, amount_cents, date, type, recurring,
		       person_name, installment_id, notes
		FROM incomes ORDER BY date, id`)
	if err != nil {
		return snap, fmt.Errorf("query incomes: %w", err)
	}
	defer incRows.Close()
	for incRows.Next() {
		var i core.Income
		var recurring int
		if err := incRows.Scan(&i.ID, &i.Description, &i.Amount.Cents, &i.Date, &i.Type,
			&recurring, &i.PersonName, &i.InstallmentID, &i.Notes); err != nil {
			return snap, fmt.Errorf("scan income: %w", err)
		}
		i.Recurring = recurring != 0
		snap.Incomes = append(snap.Incomes, i)
	}
	if err := incRows.Err(); err != nil {
		return snap, fmt.Errorf("iterate incomes: %w", err)
	}

	cardRows, err := r.db.QueryContext(ctx, `
		SELECT id, name, best_purchase_day, due_day, color
		FROM cards ORDER BY name, id`)
	if err != nil {
		return snap, fmt.Errorf("query cards: %w", err)
	}
	defer cardRows.Close()
	for cardRows.Next() {
		var c core.CreditCard
		if err := cardRows.Scan(&c.ID, &c.Name, &c.BestPurchaseDay, &c.DueDay, &c.Color); err != nil {
			return snap, fmt.Errorf("scan card: %w", err)
		}
		snap.Cards = append(snap.Cards, c)
	}
	if err := cardRows.Err(); err != nil {
		return snap, fmt.Errorf("iterate cards: %w", err)
	}

	cfg, err := r.loadConfig(ctx)
	if err != nil {
		return snap, err
	}
	snap.Config = cfg
	return snap, nil
}

func (r *SQLiteRepository) loadConfig(ctx context.Context) (core.FinanceConfig, error) {
	var cfg core.FinanceConfig

	ruleRows, err := r.db.QueryContext(ctx, `
		SELECT name, color, keywords, included_in_limit
		FROM classification_rules ORDER BY position`)
	if err != nil {
		return cfg, fmt.Errorf("query classification rules: %w", err)
	}
	defer ruleRows.Close()
	for ruleRows.Next() {
		var rule core.ClassificationRule
		var keywords string
		var included int
		if err := ruleRows.Scan(&rule.Name, &rule.Color, &keywords, &included); err != nil {
			return cfg, fmt.Errorf("scan classification rule: %w", err)
		}
		rule.IncludedInLimit = included != 0
		for _, kw := range strings.Split(keywords, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				rule.Keywords = append(rule.Keywords, kw)
			}
		}
		cfg.ClassificationRules = append(cfg.ClassificationRules, rule)
	}
	if err := ruleRows.Err(); err != nil {
		return cfg, fmt.Errorf("iterate classification rules: %w", err)
	}

	limitRows, err := r.db.QueryContext(ctx, `
		SELECT month, amount_cents FROM monthly_limits ORDER BY month`)
	if err != nil {
		return cfg, fmt.Errorf("query monthly limits: %w", err)
	}
	defer limitRows.Close()
	for limitRows.Next() {
		var l core.MonthlyLimit
		if err := limitRows.Scan(&l.Month, &l.Amount.Cents); err != nil {
			return cfg, fmt.Errorf("scan monthly limit: %w", err)
		}
		cfg.MonthlyLimits = append(cfg.MonthlyLimits, l)
	}
	if err := limitRows.Err(); err != nil {
		return cfg, fmt.Errorf("iterate monthly limits: %w", err)
	}
	return cfg, nil
}

func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	e.ID = newID()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (id, description, amount_cents, date, type, card_id,
		                      total_installments, installment_value_cents,
		                      person_name, notes, is_paid, recurring)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Description, e.Amount.Cents, e.Date, e.Type, e.CardID,
		e.TotalInstallments, e.InstallmentValue.Cents, e.PersonName, e.Notes,
		boolInt(e.IsPaid), boolInt(e.Recurring))
	if err != nil {
		return "", fmt.Errorf("insert expense: %w", err)
	}
	slog.InfoContext(ctx, "Expense saved",
		"id", e.ID, "description", e.Description, "amount_cents", e.Amount.Cents)
	return e.ID, nil
}

func (r *SQLiteRepository) UpdateExpense(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE expenses SET description = ?, amount_cents = ?, date = ?, type = ?,
		       card_id = ?, total_installments = ?, installment_value_cents = ?,
		       person_name = ?, notes = ?, is_paid = ?, recurring = ?
		WHERE id = ?`,
		e.Description, e.Amount.Cents, e.Date, e.Type, e.CardID,
		e.TotalInstallments, e.InstallmentValue.Cents, e.PersonName, e.Notes,
		boolInt(e.IsPaid), boolInt(e.Recurring), e.ID)
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	return checkAffected(res)
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return checkAffected(res)
}

func (r *SQLiteRepository) CreateIncome(ctx context.Context, i core.Income) (string, error) {
	if err := i.Validate(); err != nil {
		return "", err
	}
	i.ID = newID()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO incomes (id, description, amount_cents, date, type, recurring,
		                     person_name, installment_id, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		i.ID, i.Description, i.Amount.Cents, i.Date, i.Type,
		boolInt(i.Recurring), i.PersonName, i.InstallmentID, i.Notes)
	if err != nil {
		return "", fmt.Errorf("insert income: %w", err)
	}
	slog.InfoContext(ctx, "Income saved",
		"id", i.ID, "description", i.Description, "amount_cents", i.Amount.Cents)
	return i.ID, nil
}

func (r *SQLiteRepository) UpdateIncome(ctx context.Context, i core.Income) error {
	if err := i.Validate(); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE incomes SET description = ?, amount_cents = ?, date = ?, type = ?,
		       recurring = ?, person_name = ?, installment_id = ?, notes = ?
		WHERE id = ?`,
		i.Description, i.Amount.Cents, i.Date, i.Type,
		boolInt(i.Recurring), i.PersonName, i.InstallmentID, i.Notes, i.ID)
	if err != nil {
		return fmt.Errorf("update income: %w", err)
	}
	return checkAffected(res)
}

func (r *SQLiteRepository) DeleteIncome(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM incomes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete income: %w", err)
	}
	return checkAffected(res)
}

func (r *SQLiteRepository) CreateCard(ctx context.Context, c core.CreditCard) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	c.ID = newID()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cards (id, name, best_purchase_day, due_day, color)
		VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.BestPurchaseDay, c.DueDay, c.Color)
	if err != nil {
		return "", fmt.Errorf("insert card: %w", err)
	}
	return c.ID, nil
}

func (r *SQLiteRepository) UpdateCard(ctx context.Context, c core.CreditCard) error {
	if err := c.Validate(); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE cards SET name = ?, best_purchase_day = ?, due_day = ?, color = ?
		WHERE id = ?`,
		c.Name, c.BestPurchaseDay, c.DueDay, c.Color, c.ID)
	if err != nil {
		return fmt.Errorf("update card: %w", err)
	}
	return checkAffected(res)
}

// DeleteCard removes the card only; its purchases stay and bill through
// the scheduler's fallback cycle.
func (r *SQLiteRepository) DeleteCard(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	return checkAffected(res)
}

// UpdateConfig replaces the whole configuration transactionally.
func (r *SQLiteRepository) UpdateConfig(ctx context.Context, cfg core.FinanceConfig) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin config update: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM classification_rules`); err != nil {
		return fmt.Errorf("clear classification rules: %w", err)
	}
	for pos, rule := range cfg.ClassificationRules {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO classification_rules (position, name, color, keywords, included_in_limit)
			VALUES (?, ?, ?, ?, ?)`,
			pos, rule.Name, rule.Color, strings.Join(rule.Keywords, ","),
			boolInt(rule.IncludedInLimit)); err != nil {
			return fmt.Errorf("insert classification rule %q: %w", rule.Name, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM monthly_limits`); err != nil {
		return fmt.Errorf("clear monthly limits: %w", err)
	}
	for _, l := range cfg.MonthlyLimits {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO monthly_limits (month, amount_cents) VALUES (?, ?)`,
			l.Month, l.Amount.Cents); err != nil {
			return fmt.Errorf("insert monthly limit %s: %w", l.Month, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit config update: %w", err)
	}
	slog.InfoContext(ctx, "Config replaced",
		"rules", len(cfg.ClassificationRules), "limits", len(cfg.MonthlyLimits))
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
