package export

import (
	"strings"
	"testing"

	"fintrack/internal/core"
)

func TestWriteTransactionsCSV(t *testing.T) {
	ts := []core.Transaction{
		{
			ID:          "t1",
			Amount:      core.Money{Cents: 1234},
			Description: "weekly groceries",
			Date:        core.NewDate(2025, 6, 1),
			Category:    "food",
		},
		{
			ID:          "t2",
			Amount:      core.Money{Cents: 55},
			Description: "parking, downtown",
			Date:        core.NewDate(2025, 6, 3),
		},
	}

	var sb strings.Builder
	if err := WriteTransactionsCSV(&sb, ts); err != nil {
		t.Fatalf("write: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[0] != "id,date,description,category,amount" {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if lines[1] != "t1,2025-06-01,weekly groceries,food,12.34" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
	// Missing category exports as "other"; the comma is quoted.
	if lines[2] != `t2,2025-06-03,"parking, downtown",other,0.55` {
		t.Fatalf("unexpected row: %q", lines[2])
	}
}

func TestWriteBudgetsCSV(t *testing.T) {
	bs := []core.BudgetItem{
		{ID: "b1", Category: core.CategoryFood, Amount: core.Money{Cents: 10000}, Spent: core.Money{Cents: 12000}},
		{ID: "b2", Category: core.CategoryRent, Amount: core.Money{Cents: 90000}, Spent: core.Money{Cents: 45000}},
	}

	var sb strings.Builder
	if err := WriteBudgetsCSV(&sb, bs); err != nil {
		t.Fatalf("write: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[1] != "b1,food,100.00,120.00,100" {
		t.Fatalf("unexpected row: %q", lines[1])
	}
	if lines[2] != "b2,rent,900.00,450.00,50" {
		t.Fatalf("unexpected row: %q", lines[2])
	}
}
