// Package store defines the ports between the billing engine's shell and
// whatever persists the finance data. The engine itself only ever sees a
// FinanceSnapshot value; every mutation goes through these interfaces and
// is followed by a fresh snapshot fetch.
package store

import (
	"context"
	"errors"

	"financas/internal/core"
)

// ErrNotFound is returned by update and delete operations when the id
// does not reference a stored entity.
var ErrNotFound = errors.New("not found")

type (
	// SnapshotReader produces the immutable aggregate the engine
	// computes over.
	SnapshotReader interface {
		Snapshot(ctx context.Context) (core.FinanceSnapshot, error)
	}

	ExpenseStore interface {
		CreateExpense(ctx context.Context, e core.Expense) (id string, err error)
		UpdateExpense(ctx context.Context, e core.Expense) error
		DeleteExpense(ctx context.Context, id string) error
	}

	IncomeStore interface {
		CreateIncome(ctx context.Context, i core.Income) (id string, err error)
		UpdateIncome(ctx context.Context, i core.Income) error
		DeleteIncome(ctx context.Context, id string) error
	}

	CardStore interface {
		CreateCard(ctx context.Context, c core.CreditCard) (id string, err error)
		UpdateCard(ctx context.Context, c core.CreditCard) error
		DeleteCard(ctx context.Context, id string) error
	}

	// ConfigStore replaces the whole configuration (classification rules
	// and monthly limits) in one call.
	ConfigStore interface {
		UpdateConfig(ctx context.Context, cfg core.FinanceConfig) error
	}
)
