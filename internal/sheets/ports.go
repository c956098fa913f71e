// Package sheets defines the outbound backup port. The worker mirrors the
// whole finance dataset to a spreadsheet; the engine never reads it back,
// the sheet is a human-readable offsite copy.
package sheets

import (
	"context"

	"financas/internal/core"
)

// BackupStats reports what one mirror pass wrote.
type BackupStats struct {
	ExpenseRows int
	IncomeRows  int
}

// Mirror replaces the backup destination's contents with the snapshot.
// Implementations must be idempotent: mirroring the same snapshot twice
// leaves the destination unchanged.
type Mirror interface {
	MirrorSnapshot(ctx context.Context, snap core.FinanceSnapshot) (BackupStats, error)
}
