package worker

import (
	"context"
	"testing"
	"time"

	"financas/internal/amqp"
	"financas/internal/core"
	sheetsmem "financas/internal/sheets/memory"
	storemem "financas/internal/store/memory"
)

func TestMirrorOnce(t *testing.T) {
	st := storemem.New()
	st.Seed(core.FinanceSnapshot{
		Expenses: []core.Expense{
			{ID: "e1", Description: "Mercado", Amount: core.Money{Cents: 10000},
				Date: core.Date("2024-03-10"), Type: core.DirectPayment},
		},
		Incomes: []core.Income{
			{ID: "i1", Description: "Salário", Amount: core.Money{Cents: 500000},
				Date: core.Date("2024-03-05"), Type: core.Salary},
		},
	})
	mirror := sheetsmem.New()
	w := NewBackupWorker(st, mirror, nil, time.Hour)

	if err := w.MirrorOnce(context.Background()); err != nil {
		t.Fatalf("MirrorOnce() error = %v", err)
	}
	if mirror.Calls() != 1 {
		t.Errorf("mirror calls = %d, want 1", mirror.Calls())
	}
	last := mirror.Last()
	if len(last.Expenses) != 1 || len(last.Incomes) != 1 {
		t.Errorf("mirrored %d expenses and %d incomes, want 1 and 1",
			len(last.Expenses), len(last.Incomes))
	}
}

func TestHandleSyncMessageCoalesces(t *testing.T) {
	w := NewBackupWorker(storemem.New(), sheetsmem.New(), nil, time.Hour)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		msg := amqp.NewEntitySyncMessage(amqp.EntityExpense, "e1", amqp.ActionUpdated)
		if err := w.HandleSyncMessage(ctx, msg); err != nil {
			t.Fatalf("HandleSyncMessage() error = %v", err)
		}
	}

	// Five messages collapse into a single pending kick.
	select {
	case <-w.kick:
	default:
		t.Fatal("expected a pending kick")
	}
	select {
	case <-w.kick:
		t.Fatal("expected kicks to be coalesced")
	default:
	}
}

func TestRunMirrorsOnStartupAndStopsOnCancel(t *testing.T) {
	mirror := sheetsmem.New()
	w := NewBackupWorker(storemem.New(), mirror, nil, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for mirror.Calls() == 0 {
		select {
		case <-deadline:
			t.Fatal("startup mirror never ran")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not stop after cancel")
	}
}
