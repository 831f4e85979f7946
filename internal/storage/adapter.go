// Package storage persists the canonical collections as two named blobs in
// a durable key-value store. The store layer only sees the Adapter
// interface; the SQLite implementation is the durable backend, the memory
// implementation serves tests and ephemeral runs.
package storage

import (
	"context"
	"errors"

	"fintrack/internal/core"
)

// Blob keys. Each collection is serialized independently.
const (
	KeyTransactions = "transactions"
	KeyBudgets      = "budgets"
)

// ErrCorruptBlob marks a stored blob that failed to deserialize. Corruption
// is recovered locally: the adapter logs it and hands back an empty
// collection, so callers never see this error as fatal.
var ErrCorruptBlob = errors.New("corrupt stored blob")

// Adapter reads and writes the two persisted collections.
type Adapter interface {
	// SaveAll writes both blobs atomically: either both collections land
	// on disk or neither does, so a failed persist never leaves the
	// stored state half-updated.
	SaveAll(ctx context.Context, ts []core.Transaction, bs []core.BudgetItem) error

	LoadTransactions(ctx context.Context) ([]core.Transaction, error)
	LoadBudgets(ctx context.Context) ([]core.BudgetItem, error)

	// Reset erases both persisted blobs. Irreversible.
	Reset(ctx context.Context) error

	Close() error
}
