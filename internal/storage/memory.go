package storage

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"fintrack/internal/core"
)

// MemoryStore is an Adapter holding blobs in a map. It round-trips through
// the same codec as the SQLite backend so serialization behavior is
// identical; only durability differs.
type MemoryStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (m *MemoryStore) SaveAll(ctx context.Context, ts []core.Transaction, bs []core.BudgetItem) error {
	tData, err := encodeTransactions(ts)
	if err != nil {
		return err
	}
	bData, err := encodeBudgets(bs)
	if err != nil {
		return err
	}

	// Both blobs replace under one lock acquisition.
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[KeyTransactions] = tData
	m.blobs[KeyBudgets] = bData
	return nil
}

func (m *MemoryStore) LoadTransactions(ctx context.Context) ([]core.Transaction, error) {
	ts, err := decodeTransactions(m.get(KeyTransactions))
	if errors.Is(err, ErrCorruptBlob) {
		slog.WarnContext(ctx, "Discarding corrupt transactions blob", "error", err)
		return nil, nil
	}
	return ts, err
}

func (m *MemoryStore) LoadBudgets(ctx context.Context) ([]core.BudgetItem, error) {
	bs, err := decodeBudgets(m.get(KeyBudgets))
	if errors.Is(err, ErrCorruptBlob) {
		slog.WarnContext(ctx, "Discarding corrupt budgets blob", "error", err)
		return nil, nil
	}
	return bs, err
}

func (m *MemoryStore) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, KeyTransactions)
	delete(m.blobs, KeyBudgets)
	return nil
}

func (m *MemoryStore) Close() error { return nil }

// SeedBlob writes raw bytes under a key, bypassing the codec. Used by tests
// to simulate corrupt or legacy stored content.
func (m *MemoryStore) SeedBlob(key string, value []byte) {
	m.set(key, value)
}

func (m *MemoryStore) set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = value
}

func (m *MemoryStore) get(key string) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blobs[key]
}
