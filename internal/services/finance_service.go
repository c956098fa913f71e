// Package services orchestrates writes across the store and the backup
// message queue.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"financas/internal/amqp"
	"financas/internal/core"
	"financas/internal/log"
	"financas/internal/store"
)

// Store is the full persistence surface the service needs.
type Store interface {
	store.SnapshotReader
	store.ExpenseStore
	store.IncomeStore
	store.CardStore
	store.ConfigStore
}

// Publisher notifies the backup worker about entity changes.
type Publisher interface {
	PublishEntitySync(ctx context.Context, entity, id, action string) error
}

// FinanceService writes to the store first and then publishes a sync
// message. Publish failures are logged, never surfaced: the local write
// already succeeded and the worker's periodic mirror covers lost messages.
type FinanceService struct {
	store     Store
	publisher Publisher
}

func NewFinanceService(st Store, publisher Publisher) *FinanceService {
	return &FinanceService{store: st, publisher: publisher}
}

func (s *FinanceService) Snapshot(ctx context.Context) (core.FinanceSnapshot, error) {
	return s.store.Snapshot(ctx)
}

func (s *FinanceService) CreateExpense(ctx context.Context, e core.Expense) (string, error) {
	id, err := s.store.CreateExpense(ctx, e)
	if err != nil {
		return "", fmt.Errorf("create expense: %w", err)
	}
	s.publish(ctx, amqp.EntityExpense, id, amqp.ActionCreated)
	return id, nil
}

func (s *FinanceService) UpdateExpense(ctx context.Context, e core.Expense) error {
	if err := s.store.UpdateExpense(ctx, e); err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	s.publish(ctx, amqp.EntityExpense, e.ID, amqp.ActionUpdated)
	return nil
}

func (s *FinanceService) DeleteExpense(ctx context.Context, id string) error {
	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	s.publish(ctx, amqp.EntityExpense, id, amqp.ActionDeleted)
	return nil
}

func (s *FinanceService) CreateIncome(ctx context.Context, i core.Income) (string, error) {
	id, err := s.store.CreateIncome(ctx, i)
	if err != nil {
		return "", fmt.Errorf("create income: %w", err)
	}
	s.publish(ctx, amqp.EntityIncome, id, amqp.ActionCreated)
	return id, nil
}

func (s *FinanceService) UpdateIncome(ctx context.Context, i core.Income) error {
	if err := s.store.UpdateIncome(ctx, i); err != nil {
		return fmt.Errorf("update income: %w", err)
	}
	s.publish(ctx, amqp.EntityIncome, i.ID, amqp.ActionUpdated)
	return nil
}

func (s *FinanceService) DeleteIncome(ctx context.Context, id string) error {
	if err := s.store.DeleteIncome(ctx, id); err != nil {
		return fmt.Errorf("delete income: %w", err)
	}
	s.publish(ctx, amqp.EntityIncome, id, amqp.ActionDeleted)
	return nil
}

func (s *FinanceService) CreateCard(ctx context.Context, c core.CreditCard) (string, error) {
	id, err := s.store.CreateCard(ctx, c)
	if err != nil {
		return "", fmt.Errorf("create card: %w", err)
	}
	s.publish(ctx, amqp.EntityCard, id, amqp.ActionCreated)
	return id, nil
}

func (s *FinanceService) UpdateCard(ctx context.Context, c core.CreditCard) error {
	if err := s.store.UpdateCard(ctx, c); err != nil {
		return fmt.Errorf("update card: %w", err)
	}
	s.publish(ctx, amqp.EntityCard, c.ID, amqp.ActionUpdated)
	return nil
}

func (s *FinanceService) DeleteCard(ctx context.Context, id string) error {
	if err := s.store.DeleteCard(ctx, id); err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	s.publish(ctx, amqp.EntityCard, id, amqp.ActionDeleted)
	return nil
}

func (s *FinanceService) UpdateConfig(ctx context.Context, cfg core.FinanceConfig) error {
	if err := s.store.UpdateConfig(ctx, cfg); err != nil {
		return fmt.Errorf("update config: %w", err)
	}
	return nil
}

func (s *FinanceService) publish(ctx context.Context, entity, id, action string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishEntitySync(ctx, entity, id, action); err != nil {
		slog.ErrorContext(ctx, "Failed to publish entity sync",
			log.FieldError, err,
			log.FieldEntity, entity,
			"id", id,
			"action", action)
	}
}

// Close releases the store and publisher connections.
func (s *FinanceService) Close() error {
	var errs []error

	if closer, ok := s.store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}
	if closer, ok := s.publisher.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close finance service: %v", errs)
	}
	return nil
}
