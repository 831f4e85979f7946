// Package export renders the collections as CSV for download. It backs the
// export hook exposed to the presentation layer.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"fintrack/internal/core"
)

// WriteTransactionsCSV writes one header row plus one row per transaction.
// Dates use the persisted ISO form; amounts are decimal strings.
func WriteTransactionsCSV(w io.Writer, transactions []core.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "date", "description", "category", "amount"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, t := range transactions {
		record := []string{
			t.ID,
			t.Date.Format("2006-01-02"),
			t.Description,
			string(core.NormalizeCategory(t.Category)),
			t.Amount.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write transaction %s: %w", t.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteBudgetsCSV writes one header row plus one row per budget, including
// the derived spent figure and capped percentage.
func WriteBudgetsCSV(w io.Writer, budgets []core.BudgetItem) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "category", "amount", "spent", "percent"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, b := range budgets {
		percent := int64(0)
		if b.Amount.Cents > 0 {
			percent = (b.Spent.Cents*100 + b.Amount.Cents/2) / b.Amount.Cents
			if percent > 100 {
				percent = 100
			}
		}
		record := []string{
			b.ID,
			string(b.Category),
			b.Amount.String(),
			b.Spent.String(),
			strconv.FormatInt(percent, 10),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write budget %s: %w", b.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
