package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps each collection as one row in a key-value blob table.
// Writes replace the whole blob; the collections are small and every
// mutation persists synchronously.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveAll writes both blobs inside one transaction so a failure between the
// two writes cannot leave the stored collections out of step.
func (s *SQLiteStore) SaveAll(ctx context.Context, ts []core.Transaction, bs []core.BudgetItem) error {
	tData, err := encodeTransactions(ts)
	if err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}
	bData, err := encodeBudgets(bs)
	if err != nil {
		return fmt.Errorf("encode budgets: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if err := setBlob(ctx, tx, KeyTransactions, tData); err != nil {
		return err
	}
	if err := setBlob(ctx, tx, KeyBudgets, bData); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadTransactions(ctx context.Context) ([]core.Transaction, error) {
	data, err := s.getBlob(ctx, KeyTransactions)
	if err != nil {
		return nil, err
	}
	ts, err := decodeTransactions(data)
	if errors.Is(err, ErrCorruptBlob) {
		// Discard and start over; corruption is non-fatal.
		slog.WarnContext(ctx, "Discarding corrupt transactions blob", "error", err)
		return nil, nil
	}
	return ts, err
}

func (s *SQLiteStore) LoadBudgets(ctx context.Context) ([]core.BudgetItem, error) {
	data, err := s.getBlob(ctx, KeyBudgets)
	if err != nil {
		return nil, err
	}
	bs, err := decodeBudgets(data)
	if errors.Is(err, ErrCorruptBlob) {
		slog.WarnContext(ctx, "Discarding corrupt budgets blob", "error", err)
		return nil, nil
	}
	return bs, err
}

func (s *SQLiteStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM blobs WHERE key IN (?, ?)`, KeyTransactions, KeyBudgets); err != nil {
		return fmt.Errorf("erase blobs: %w", err)
	}
	slog.InfoContext(ctx, "Persisted blobs erased")
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func setBlob(ctx context.Context, db execer, key string, value []byte) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	if err != nil {
		return fmt.Errorf("write blob %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) getBlob(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM blobs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", key, err)
	}
	return value, nil
}
