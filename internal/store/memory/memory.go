// Package memory is the in-memory store backend, used as the default
// data backend and as the fake behind handler and service tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"financas/internal/core"
	"financas/internal/store"
)

type Store struct {
	mu       sync.Mutex
	seq      int
	expenses []core.Expense
	incomes  []core.Income
	cards    []core.CreditCard
	config   core.FinanceConfig
}

func New() *Store {
	return &Store{}
}

// Seed replaces the whole content, for tests and local bootstrapping.
func (s *Store) Seed(snap core.FinanceSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append([]core.Expense(nil), snap.Expenses...)
	s.incomes = append([]core.Income(nil), snap.Incomes...)
	s.cards = append([]core.CreditCard(nil), snap.Cards...)
	s.config = snap.Config
}

// Snapshot returns a copy of the current state; mutating the result never
// affects the store.
func (s *Store) Snapshot(_ context.Context) (core.FinanceSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.FinanceSnapshot{
		Expenses: append([]core.Expense(nil), s.expenses...),
		Incomes:  append([]core.Income(nil), s.incomes...),
		Cards:    append([]core.CreditCard(nil), s.cards...),
		Config:   s.config,
	}, nil
}

func (s *Store) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *Store) CreateExpense(_ context.Context, e core.Expense) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextID("exp")
	s.expenses = append(s.expenses, e)
	return e.ID, nil
}

func (s *Store) UpdateExpense(_ context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.expenses {
		if s.expenses[i].ID == e.ID {
			s.expenses[i] = e
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteExpense(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.expenses {
		if s.expenses[i].ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) CreateIncome(_ context.Context, in core.Income) (string, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	in.ID = s.nextID("inc")
	s.incomes = append(s.incomes, in)
	return in.ID, nil
}

func (s *Store) UpdateIncome(_ context.Context, in core.Income) error {
	if err := in.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.incomes {
		if s.incomes[i].ID == in.ID {
			s.incomes[i] = in
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteIncome(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.incomes {
		if s.incomes[i].ID == id {
			s.incomes = append(s.incomes[:i], s.incomes[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) CreateCard(_ context.Context, c core.CreditCard) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.nextID("card")
	s.cards = append(s.cards, c)
	return c.ID, nil
}

func (s *Store) UpdateCard(_ context.Context, c core.CreditCard) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cards {
		if s.cards[i].ID == c.ID {
			s.cards[i] = c
			return nil
		}
	}
	return store.ErrNotFound
}

// DeleteCard removes the card but keeps its purchases: they become
// orphaned and bill through the scheduler's fallback cycle.
func (s *Store) DeleteCard(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cards {
		if s.cards[i].ID == id {
			s.cards = append(s.cards[:i], s.cards[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) UpdateConfig(_ context.Context, cfg core.FinanceConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
	return nil
}
