package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
	"fintrack/internal/storage"
)

func newTestStore(t *testing.T) (*Store, *storage.MemoryStore) {
	t.Helper()
	adapter := storage.NewMemoryStore()
	logger := applog.New(applog.Config{
		Handler: slog.NewTextHandler(io.Discard, nil),
	})
	return New(adapter, logger), adapter
}

func validTx(desc, category string, cents int64) core.Transaction {
	return core.Transaction{
		Amount:      core.Money{Cents: cents},
		Description: desc,
		Date:        core.NewDate(2025, 5, 10),
		Category:    category,
	}
}

func TestAddTransactionAssignsIDAndPersists(t *testing.T) {
	ctx := context.Background()
	s, adapter := newTestStore(t)

	added, err := s.AddTransaction(ctx, validTx("lunch out", "food", 1500))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.ID == "" {
		t.Fatalf("expected an assigned id")
	}

	persisted, err := adapter.LoadTransactions(ctx)
	if err != nil || len(persisted) != 1 {
		t.Fatalf("expected one persisted transaction, got %d (err=%v)", len(persisted), err)
	}
	if persisted[0].ID != added.ID {
		t.Fatalf("persisted id %q, want %q", persisted[0].ID, added.ID)
	}
}

func TestAddTransactionRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	cases := []struct {
		name string
		tx   core.Transaction
		want error
	}{
		{"non-positive amount", validTxWith(func(tx *core.Transaction) { tx.Amount.Cents = 0 }), core.ErrInvalidAmount},
		{"short description", validTxWith(func(tx *core.Transaction) { tx.Description = "ab" }), core.ErrShortDescription},
		{"zero date", validTxWith(func(tx *core.Transaction) { tx.Date = core.Date{} }), core.ErrInvalidDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.AddTransaction(ctx, tc.tx); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
	if len(s.Transactions()) != 0 {
		t.Fatalf("rejected input must not land in the collection")
	}
}

func validTxWith(mutate func(*core.Transaction)) core.Transaction {
	tx := validTx("valid expense", "food", 100)
	mutate(&tx)
	return tx
}

func TestUpdateTransaction(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	added, err := s.AddTransaction(ctx, validTx("old desc", "food", 100))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	updated := added
	updated.Description = "new desc"
	updated.Amount = core.Money{Cents: 250}
	if err := s.UpdateTransaction(ctx, updated); err != nil {
		t.Fatalf("update: %v", err)
	}

	got := s.Transactions()
	if len(got) != 1 || got[0].Description != "new desc" || got[0].Amount.Cents != 250 {
		t.Fatalf("unexpected collection: %+v", got)
	}

	missing := updated
	missing.ID = "does-not-exist"
	if err := s.UpdateTransaction(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestDeleteTransactionIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	added, _ := s.AddTransaction(ctx, validTx("to delete", "rent", 100))
	before := s.Version()

	if err := s.DeleteTransaction(ctx, "no-such-id"); err != nil {
		t.Fatalf("deleting absent id must be a no-op, got %v", err)
	}
	if len(s.Transactions()) != 1 {
		t.Fatalf("no-op delete altered the collection")
	}
	if s.Version() != before {
		t.Fatalf("no-op delete bumped the version")
	}

	if err := s.DeleteTransaction(ctx, added.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(s.Transactions()) != 0 {
		t.Fatalf("expected empty collection after delete")
	}
}

func TestBudgetSpentTracksTransactionMutations(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	budget, err := s.AddBudget(ctx, core.BudgetItem{Category: core.CategoryFood, Amount: core.Money{Cents: 10000}})
	if err != nil {
		t.Fatalf("add budget: %v", err)
	}
	if budget.Spent.Cents != 0 {
		t.Fatalf("new budget spent = %d, want 0", budget.Spent.Cents)
	}

	tx1, _ := s.AddTransaction(ctx, validTx("groceries run", "food", 7000))
	if _, err := s.AddTransaction(ctx, validTx("more groceries", "food", 5000)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.AddTransaction(ctx, validTx("unrelated rent", "rent", 90000)); err != nil {
		t.Fatalf("add: %v", err)
	}

	got := s.Budgets()
	if len(got) != 1 || got[0].Spent.Cents != 12000 {
		t.Fatalf("spent = %d, want 12000", got[0].Spent.Cents)
	}

	// Deleting a matching transaction shrinks spent immediately.
	if err := s.DeleteTransaction(ctx, tx1.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got = s.Budgets()
	if got[0].Spent.Cents != 5000 {
		t.Fatalf("spent after delete = %d, want 5000", got[0].Spent.Cents)
	}
}

// flakyAdapter lets tests make persistence fail on demand.
type flakyAdapter struct {
	*storage.MemoryStore
	failSaves bool
}

func (f *flakyAdapter) SaveAll(ctx context.Context, ts []core.Transaction, bs []core.BudgetItem) error {
	if f.failSaves {
		return errors.New("disk full")
	}
	return f.MemoryStore.SaveAll(ctx, ts, bs)
}

func TestPersistFailureLeavesMemoryAndDiskAligned(t *testing.T) {
	ctx := context.Background()
	adapter := &flakyAdapter{MemoryStore: storage.NewMemoryStore()}
	logger := applog.New(applog.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
	s := New(adapter, logger)

	if _, err := s.AddBudget(ctx, core.BudgetItem{Category: core.CategoryFood, Amount: core.Money{Cents: 10000}}); err != nil {
		t.Fatalf("add budget: %v", err)
	}
	first, err := s.AddTransaction(ctx, validTx("groceries run", "food", 3000))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	before := s.Version()

	adapter.failSaves = true

	if _, err := s.AddTransaction(ctx, validTx("rejected expense", "food", 9000)); err == nil {
		t.Fatal("expected persist failure to surface")
	}
	if got := s.Transactions(); len(got) != 1 || got[0].ID != first.ID {
		t.Fatalf("rejected mutation altered the collection: %+v", got)
	}
	// Spent must reflect the surviving state, not the abandoned one.
	if got := s.Budgets(); got[0].Spent.Cents != 3000 {
		t.Fatalf("spent = %d after rollback, want 3000", got[0].Spent.Cents)
	}
	if s.Version() != before {
		t.Fatalf("failed persist bumped the version")
	}

	if err := s.DeleteTransaction(ctx, first.ID); err == nil {
		t.Fatal("expected persist failure to surface")
	}
	if got := s.Budgets(); got[0].Spent.Cents != 3000 {
		t.Fatalf("spent = %d after rolled-back delete, want 3000", got[0].Spent.Cents)
	}

	// The persisted blobs never saw the failed mutations.
	adapter.failSaves = false
	persisted, err := adapter.LoadTransactions(ctx)
	if err != nil || len(persisted) != 1 || persisted[0].ID != first.ID {
		t.Fatalf("disk diverged from memory: %+v (err=%v)", persisted, err)
	}
	budgets, err := adapter.LoadBudgets(ctx)
	if err != nil || len(budgets) != 1 || budgets[0].Spent.Cents != 3000 {
		t.Fatalf("persisted budgets diverged: %+v (err=%v)", budgets, err)
	}
}

func TestAddBudgetRejectsDuplicateCategory(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	original, err := s.AddBudget(ctx, core.BudgetItem{Category: core.CategoryFood, Amount: core.Money{Cents: 10000}})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	_, err = s.AddBudget(ctx, core.BudgetItem{Category: core.CategoryFood, Amount: core.Money{Cents: 999}})
	if !errors.Is(err, ErrDuplicateCategory) {
		t.Fatalf("got %v, want ErrDuplicateCategory", err)
	}

	got := s.Budgets()
	if len(got) != 1 || got[0].ID != original.ID || got[0].Amount.Cents != 10000 {
		t.Fatalf("existing budget must stay unchanged, got %+v", got)
	}
}

func TestAddBudgetRejectsInvalidCategory(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	_, err := s.AddBudget(ctx, core.BudgetItem{Category: "groceries", Amount: core.Money{Cents: 100}})
	if !errors.Is(err, core.ErrInvalidCategory) {
		t.Fatalf("got %v, want ErrInvalidCategory", err)
	}
}

func TestUpdateBudgetLastWriteWins(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	b, _ := s.AddBudget(ctx, core.BudgetItem{Category: core.CategoryFood, Amount: core.Money{Cents: 10000}})
	if _, err := s.AddTransaction(ctx, validTx("utility bill", "utilities", 4200)); err != nil {
		t.Fatalf("add: %v", err)
	}

	b.Category = core.CategoryUtilities
	b.Amount = core.Money{Cents: 5000}
	if err := s.UpdateBudget(ctx, b); err != nil {
		t.Fatalf("update: %v", err)
	}

	got := s.Budgets()
	if got[0].Category != core.CategoryUtilities || got[0].Spent.Cents != 4200 {
		t.Fatalf("expected recomputed spent for new category, got %+v", got[0])
	}
}

func TestResetAll(t *testing.T) {
	ctx := context.Background()
	s, adapter := newTestStore(t)

	if _, err := s.AddTransaction(ctx, validTx("soon gone", "food", 100)); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := s.AddBudget(ctx, core.BudgetItem{Category: core.CategoryFood, Amount: core.Money{Cents: 100}}); err != nil {
		t.Fatalf("add budget: %v", err)
	}

	if err := s.ResetAll(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(s.Transactions()) != 0 || len(s.Budgets()) != 0 {
		t.Fatalf("collections must be empty after reset")
	}
	ts, err := adapter.LoadTransactions(ctx)
	if err != nil || len(ts) != 0 {
		t.Fatalf("persisted blob must be erased, got %d (err=%v)", len(ts), err)
	}
}

func TestLoadReconcilesPersistedState(t *testing.T) {
	ctx := context.Background()
	adapter := storage.NewMemoryStore()
	logger := applog.New(applog.Config{Handler: slog.NewTextHandler(io.Discard, nil)})

	seed := New(adapter, logger)
	if _, err := seed.AddTransaction(ctx, validTx("persisted expense", "food", 3000)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := seed.AddBudget(ctx, core.BudgetItem{Category: core.CategoryFood, Amount: core.Money{Cents: 10000}}); err != nil {
		t.Fatalf("seed budget: %v", err)
	}

	fresh := New(adapter, logger)
	if err := fresh.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	got := fresh.Budgets()
	if len(got) != 1 || got[0].Spent.Cents != 3000 {
		t.Fatalf("expected reconciled spent 3000, got %+v", got)
	}
}
