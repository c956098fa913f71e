package memory

import (
	"context"
	"errors"
	"testing"

	"financas/internal/core"
	"financas/internal/store"
)

func TestExpenseLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()

	id, err := s.CreateExpense(ctx, core.Expense{
		Description: "mercado", Amount: core.Money{Cents: 1000},
		Date: "2024-03-10", Type: core.DirectPayment,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	snap, _ := s.Snapshot(ctx)
	if len(snap.Expenses) != 1 || snap.Expenses[0].ID != id {
		t.Fatalf("snapshot = %+v", snap.Expenses)
	}

	upd := snap.Expenses[0]
	upd.IsPaid = true
	if err := s.UpdateExpense(ctx, upd); err != nil {
		t.Fatalf("update: %v", err)
	}
	snap, _ = s.Snapshot(ctx)
	if !snap.Expenses[0].IsPaid {
		t.Error("update not applied")
	}

	if err := s.DeleteExpense(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	snap, _ = s.Snapshot(ctx)
	if len(snap.Expenses) != 0 {
		t.Error("delete not applied")
	}
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	s := New()
	if err := s.DeleteExpense(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := s.UpdateIncome(ctx, core.Income{
		ID: "missing", Description: "x", Amount: core.Money{Cents: 1},
		Date: "2024-01-01", Type: core.OneOff,
	}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateValidates(t *testing.T) {
	ctx := context.Background()
	s := New()
	if _, err := s.CreateExpense(ctx, core.Expense{}); err == nil {
		t.Error("invalid expense accepted")
	}
	if _, err := s.CreateCard(ctx, core.CreditCard{Name: "x", BestPurchaseDay: 40, DueDay: 10}); err == nil {
		t.Error("invalid card accepted")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	s := New()
	if _, err := s.CreateCard(ctx, core.CreditCard{Name: "Nubank", BestPurchaseDay: 5, DueDay: 15}); err != nil {
		t.Fatal(err)
	}
	snap, _ := s.Snapshot(ctx)
	snap.Cards[0].Name = "mutated"
	again, _ := s.Snapshot(ctx)
	if again.Cards[0].Name != "Nubank" {
		t.Error("snapshot mutation leaked into the store")
	}
}

func TestCardDeleteKeepsPurchases(t *testing.T) {
	ctx := context.Background()
	s := New()
	cardID, _ := s.CreateCard(ctx, core.CreditCard{Name: "Nubank", BestPurchaseDay: 5, DueDay: 15})
	if _, err := s.CreateExpense(ctx, core.Expense{
		Description: "tv", Amount: core.Money{Cents: 10000},
		Date: "2024-03-10", Type: core.CardPurchase, CardID: cardID,
	}); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteCard(ctx, cardID); err != nil {
		t.Fatal(err)
	}
	snap, _ := s.Snapshot(ctx)
	if len(snap.Expenses) != 1 {
		t.Error("card deletion must not cascade to purchases")
	}
}
