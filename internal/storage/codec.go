package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"fintrack/internal/core"
)

// dateLayout is the persisted date form. Day granularity, timezone-naive.
const dateLayout = "2006-01-02"

type transactionRecord struct {
	ID          string `json:"id"`
	AmountCents int64  `json:"amount_cents"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Category    string `json:"category,omitempty"`
}

type budgetRecord struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	AmountCents int64  `json:"amount_cents"`
	SpentCents  int64  `json:"spent_cents"`
}

func encodeTransactions(ts []core.Transaction) ([]byte, error) {
	records := make([]transactionRecord, len(ts))
	for i, t := range ts {
		records[i] = transactionRecord{
			ID:          t.ID,
			AmountCents: t.Amount.Cents,
			Description: t.Description,
			Date:        t.Date.Format(dateLayout),
			Category:    t.Category,
		}
	}
	return json.Marshal(records)
}

func decodeTransactions(data []byte) ([]core.Transaction, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var records []transactionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptBlob, err)
	}
	ts := make([]core.Transaction, len(records))
	for i, r := range records {
		day, err := time.Parse(dateLayout, r.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: bad date %q", ErrCorruptBlob, r.Date)
		}
		ts[i] = core.Transaction{
			ID:          r.ID,
			Amount:      core.Money{Cents: r.AmountCents},
			Description: r.Description,
			Date:        core.DateOf(day),
			Category:    r.Category,
		}
	}
	return ts, nil
}

func encodeBudgets(bs []core.BudgetItem) ([]byte, error) {
	records := make([]budgetRecord, len(bs))
	for i, b := range bs {
		records[i] = budgetRecord{
			ID:          b.ID,
			Category:    string(b.Category),
			AmountCents: b.Amount.Cents,
			SpentCents:  b.Spent.Cents,
		}
	}
	return json.Marshal(records)
}

func decodeBudgets(data []byte) ([]core.BudgetItem, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var records []budgetRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptBlob, err)
	}
	bs := make([]core.BudgetItem, len(records))
	for i, r := range records {
		bs[i] = core.BudgetItem{
			ID:       r.ID,
			Category: core.Category(r.Category),
			Amount:   core.Money{Cents: r.AmountCents},
			Spent:    core.Money{Cents: r.SpentCents},
		}
	}
	return bs, nil
}
