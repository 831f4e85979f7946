// Package store owns the canonical in-memory transaction and budget
// collections. Every mutation validates its input, persists the full
// collection through the storage adapter and synchronously recomputes the
// derived budget Spent values, so readers never observe a stale
// reconciliation.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
	"fintrack/internal/metrics"
	"fintrack/internal/storage"
)

var (
	// ErrNotFound marks an update or delete whose target id is absent.
	// Callers treat it as non-fatal.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateCategory marks an attempt to add a second budget for a
	// category that already has one.
	ErrDuplicateCategory = errors.New("budget already exists for category")
)

// Store is constructed once at process start and passed by reference to all
// consumers. There is no implicit singleton.
type Store struct {
	mu      sync.Mutex
	adapter storage.Adapter
	logger  *applog.Logger

	transactions []core.Transaction
	budgets      []core.BudgetItem

	// version increments on every effective mutation; the HTTP layer keys
	// derived-view caches on it.
	version uint64
}

func New(adapter storage.Adapter, logger *applog.Logger) *Store {
	return &Store{
		adapter: adapter,
		logger:  logger.WithComponent(applog.ComponentStore),
	}
}

// Load populates the collections from the adapter and reconciles budgets
// against whatever was loaded. Corrupt blobs surface as empty collections.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts, err := s.adapter.LoadTransactions(ctx)
	if err != nil {
		return err
	}
	bs, err := s.adapter.LoadBudgets(ctx)
	if err != nil {
		return err
	}

	s.transactions = ts
	s.budgets = metrics.ReconcileBudgets(bs, ts)
	s.version++

	s.logger.InfoContext(ctx, "Collections loaded",
		applog.FieldOperation, applog.OpLoad,
		"transactions", len(ts),
		"budgets", len(bs))
	return nil
}

// Transactions returns a snapshot copy of the transaction collection.
func (s *Store) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Budgets returns a snapshot copy of the budget collection, Spent included.
func (s *Store) Budgets() []core.BudgetItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.BudgetItem, len(s.budgets))
	copy(out, s.budgets)
	return out
}

// Version returns the mutation counter used for cache keying.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// AddTransaction validates and appends a transaction, assigning an id when
// the caller supplied none. The form layer validates first; the store
// re-checks so a bypass cannot corrupt invariants.
func (s *Store) AddTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = append(s.transactions, t)
	if err := s.persistLocked(ctx); err != nil {
		// Roll back the in-memory append so memory and disk stay aligned.
		s.transactions = s.transactions[:len(s.transactions)-1]
		return core.Transaction{}, err
	}

	s.logger.InfoContext(ctx, "Transaction added",
		applog.FieldOperation, applog.OpCreate,
		applog.FieldTxID, t.ID,
		applog.FieldAmountCents, t.Amount.Cents,
		applog.FieldCategory, t.Category)
	return t, nil
}

// UpdateTransaction replaces the entry whose id matches. Returns ErrNotFound
// when no entry matches.
func (s *Store) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, existing := range s.transactions {
		if existing.ID == t.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	prev := s.transactions[idx]
	s.transactions[idx] = t
	if err := s.persistLocked(ctx); err != nil {
		s.transactions[idx] = prev
		return err
	}

	s.logger.InfoContext(ctx, "Transaction updated",
		applog.FieldOperation, applog.OpUpdate,
		applog.FieldTxID, t.ID)
	return nil
}

// DeleteTransaction removes the matching entry. Deleting an absent id is a
// no-op: nothing persists and the version does not change.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, existing := range s.transactions {
		if existing.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	removed := s.transactions[idx]
	s.transactions = append(s.transactions[:idx], s.transactions[idx+1:]...)
	if err := s.persistLocked(ctx); err != nil {
		s.transactions = append(s.transactions[:idx], append([]core.Transaction{removed}, s.transactions[idx:]...)...)
		return err
	}

	s.logger.InfoContext(ctx, "Transaction deleted",
		applog.FieldOperation, applog.OpDelete,
		applog.FieldTxID, id)
	return nil
}

// AddBudget creates a budget with Spent derived immediately. At most one
// budget may exist per category; violations leave the existing budget
// unchanged.
func (s *Store) AddBudget(ctx context.Context, b core.BudgetItem) (core.BudgetItem, error) {
	if err := b.Validate(); err != nil {
		return core.BudgetItem{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.budgets {
		if existing.Category == b.Category {
			return core.BudgetItem{}, ErrDuplicateCategory
		}
	}

	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.Spent = core.Money{}

	s.budgets = append(s.budgets, b)
	if err := s.persistLocked(ctx); err != nil {
		s.budgets = s.budgets[:len(s.budgets)-1]
		return core.BudgetItem{}, err
	}

	// persistLocked reconciled Spent; return the reconciled copy.
	added := s.budgets[len(s.budgets)-1]
	s.logger.InfoContext(ctx, "Budget added",
		applog.FieldOperation, applog.OpCreate,
		applog.FieldBudgetID, added.ID,
		applog.FieldCategory, string(added.Category),
		applog.FieldAmountCents, added.Amount.Cents)
	return added, nil
}

// UpdateBudget replaces the entry whose id matches. Category edits are not
// re-validated for uniqueness against concurrent edits; last write wins.
// Spent is recomputed regardless of what the caller supplied.
func (s *Store) UpdateBudget(ctx context.Context, b core.BudgetItem) error {
	if err := b.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, existing := range s.budgets {
		if existing.ID == b.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	prev := s.budgets[idx]
	s.budgets[idx] = b
	if err := s.persistLocked(ctx); err != nil {
		s.budgets[idx] = prev
		return err
	}

	s.logger.InfoContext(ctx, "Budget updated",
		applog.FieldOperation, applog.OpUpdate,
		applog.FieldBudgetID, b.ID,
		applog.FieldCategory, string(b.Category))
	return nil
}

// DeleteBudget removes the matching entry; absent ids are a no-op.
func (s *Store) DeleteBudget(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, existing := range s.budgets {
		if existing.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	removed := s.budgets[idx]
	s.budgets = append(s.budgets[:idx], s.budgets[idx+1:]...)
	if err := s.persistLocked(ctx); err != nil {
		s.budgets = append(s.budgets[:idx], append([]core.BudgetItem{removed}, s.budgets[idx:]...)...)
		return err
	}

	s.logger.InfoContext(ctx, "Budget deleted",
		applog.FieldOperation, applog.OpDelete,
		applog.FieldBudgetID, id)
	return nil
}

// ResetAll clears both collections and erases the persisted blobs.
// Irreversible.
func (s *Store) ResetAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.adapter.Reset(ctx); err != nil {
		return err
	}
	s.transactions = nil
	s.budgets = nil
	s.version++

	s.logger.WarnContext(ctx, "All data erased",
		applog.FieldOperation, applog.OpReset)
	return nil
}

// persistLocked reconciles budgets against the current transactions and
// writes both collections in one atomic adapter call. Callers hold the
// mutex, so the reconciliation always observes the state immediately after
// the triggering mutation. On failure the budgets slice is restored to its
// pre-reconciliation state; callers undo their own slice edit, leaving
// memory and disk identical to before the mutation.
func (s *Store) persistLocked(ctx context.Context) error {
	prev := s.budgets
	s.budgets = metrics.ReconcileBudgets(s.budgets, s.transactions)

	if err := s.adapter.SaveAll(ctx, s.transactions, s.budgets); err != nil {
		s.budgets = prev
		return err
	}
	s.version++
	return nil
}
