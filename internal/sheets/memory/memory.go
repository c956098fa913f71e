// Package memory is an in-process Mirror used in tests and local runs
// without Google credentials.
package memory

import (
	"context"
	"sync"

	"financas/internal/core"
	"financas/internal/sheets"
)

type Mirror struct {
	mu    sync.Mutex
	last  core.FinanceSnapshot
	calls int
}

var _ sheets.Mirror = (*Mirror)(nil)

func New() *Mirror { return &Mirror{} }

func (m *Mirror) MirrorSnapshot(_ context.Context, snap core.FinanceSnapshot) (sheets.BackupStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = snap
	m.calls++
	return sheets.BackupStats{
		ExpenseRows: len(snap.Expenses),
		IncomeRows:  len(snap.Incomes),
	}, nil
}

// Last returns the most recently mirrored snapshot.
func (m *Mirror) Last() core.FinanceSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// Calls returns how many mirror passes ran.
func (m *Mirror) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
