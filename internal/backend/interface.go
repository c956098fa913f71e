// Package backend selects and wires the persistence backend at startup.
package backend

import (
	"context"

	"financas/internal/services"
	"financas/internal/store"
)

// Store is the unified persistence surface a backend provides.
type Store interface {
	store.SnapshotReader
	store.ExpenseStore
	store.IncomeStore
	store.CardStore
	store.ConfigStore
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result carries the created store, the optional sync publisher and a
// cleanup function. Publisher is nil when AMQP is not configured.
type Result struct {
	Store     Store
	Publisher services.Publisher
	Cleanup   CleanupFunc
}

// Factory creates backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, cfg Config) (*Result, error)
}

// Type names a persistence backend.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

func (t Type) String() string { return string(t) }

func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Types returns all valid backend types.
func Types() []Type {
	return []Type{SQLiteBackend, MemoryBackend}
}
